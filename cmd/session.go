package cmd

import (
	"fmt"
	"io"

	internalApp "github.com/haierkeys/portfolio-dash/internal/app"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/logger"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session 一次命令执行所需的依赖
type session struct {
	cfg     *internalApp.AppConfig
	cfgPath string
	logger  *zap.Logger
	app     *internalApp.App
	out     io.Writer
	prompt  *prompter
}

// openSession 加载配置、日志和应用容器
func openSession(cmd *cobra.Command) (*session, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, realpath, err := internalApp.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lang := flags.lang
	if lang == "" {
		lang = cfg.Dashboard.Language
	}
	if err := code.SetGlobalDefaultLang(lang); err != nil {
		bootstrapLogger.Warn("unsupported language, using en", zap.String("lang", lang))
	}

	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := internalApp.OpenDatabase(cfg, lg)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}

	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	a, err := internalApp.NewApp(cfg, lg, db, internalApp.WithAlerter(p))
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	lg.Debug("config loaded", zap.String("path", realpath))

	return &session{
		cfg:     cfg,
		cfgPath: realpath,
		logger:  lg,
		app:     a,
		out:     cmd.OutOrStdout(),
		prompt:  p,
	}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.logger.Warn("close app", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// render 输出 Markdown，默认经 glamour 渲染
func (s *session) render(md string) error {
	out := md
	if !flags.plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return errors.Wrap(err, "init renderer")
		}
		if out, err = r.Render(md); err != nil {
			return errors.Wrap(err, "render")
		}
	}
	_, err := fmt.Fprint(s.out, out)
	return err
}

// withSession 包装需要应用容器的命令
func withSession(fn func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.prompt.settle(fn(cmd, s, args))
	}
}
