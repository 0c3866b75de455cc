package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	internalApp "github.com/haierkeys/portfolio-dash/internal/app"
	"github.com/haierkeys/portfolio-dash/internal/devserver"
	"github.com/haierkeys/portfolio-dash/internal/routers"
	pkgapp "github.com/haierkeys/portfolio-dash/pkg/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 5 * time.Second

// checkSecurityConfig 使用默认密钥时输出警告
func checkSecurityConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	for _, key := range defaultSecretKeys {
		if cfg.DevServer.SecretKey != key {
			continue
		}
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, strings.Repeat("=", 60))
		fmt.Fprintln(os.Stderr, "⚠️  SECURITY WARNING: Using default secret key!")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Please modify 'devserver.secret-key' in config.yaml")
		fmt.Fprintln(os.Stderr, strings.Repeat("=", 60))
		fmt.Fprintln(os.Stderr)
		lg.Warn("Using default secret key - please change devserver.secret-key in config.yaml")
		return
	}
}

func newTokenManager(cfg *internalApp.AppConfig) pkgapp.TokenManager {
	return pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.DevServer.SecretKey,
		Expiry:    cfg.GetTokenExpiry(),
	})
}

func init() {
	devserverCmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory backend implementing the dashboard API",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			cfg := s.cfg
			checkSecurityConfig(cfg, s.logger)

			tokens := newTokenManager(cfg)
			router := routers.NewRouter(routers.Config{
				RunMode:        cfg.DevServer.RunMode,
				RateLimit:      cfg.DevServer.RateLimit,
				RateBurst:      cfg.DevServer.RateBurst,
				ContextTimeout: time.Duration(cfg.DevServer.WriteTimeout) * time.Second,
				Version:        s.app.Version(),
			}, routers.Deps{
				Backend: devserver.NewBackend(cfg.DevServer.SeedNotifications, s.logger),
				Tokens:  tokens,
				Logger:  s.logger,
			})

			srv := &http.Server{
				Addr:           cfg.DevServer.Listen,
				Handler:        router,
				ReadTimeout:    time.Duration(cfg.DevServer.ReadTimeout) * time.Second,
				WriteTimeout:   time.Duration(cfg.DevServer.WriteTimeout) * time.Second,
				MaxHeaderBytes: 1 << 20,
			}

			p := s.app.Prefs.Profile(cmd.Context())
			token, err := tokens.Generate("dev", p.Name, p.Email)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Dev server listening on %s\nToken: %s\n", cfg.DevServer.Listen, token)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				s.logger.Info("devserver started", zap.String("listen", cfg.DevServer.Listen))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("devserver shutdown: %w", err)
			}
			return nil
		}),
	}

	var uid, name, email string
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Print a session token accepted by the dev server",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			token, err := newTokenManager(s.cfg).Generate(uid, name, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, token)
			return nil
		}),
	}
	tokenCmd.Flags().StringVar(&uid, "uid", "dev", "user id (token subject)")
	tokenCmd.Flags().StringVar(&name, "name", "", "nickname claim")
	tokenCmd.Flags().StringVar(&email, "email", "", "email claim")

	devserverCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(devserverCmd)
}
