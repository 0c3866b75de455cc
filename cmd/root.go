package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globalFlags 全局命令行参数
type globalFlags struct {
	dir    string // 工作目录
	config string // 指定要使用的配置文件路径
	lang   string // 提示语言，覆盖配置
	plain  bool   // 输出原始 Markdown
}

var (
	configDefault string
	flags         = new(globalFlags)
)

var rootCmd = &cobra.Command{
	Use:           "portfolio-dash",
	Short:         "Portfolio Dash: exchange connections, notifications and preferences",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "d", "", "run dir")
	pf.StringVarP(&flags.config, "config", "c", "", "config file")
	pf.StringVar(&flags.lang, "lang", "", "message language: en or zh_cn")
	pf.BoolVar(&flags.plain, "plain", false, "print markdown without terminal styling")
}

// Execute 执行根命令，c 为内置的默认配置
func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errAlerted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
