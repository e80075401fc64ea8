// Package cli は staffctl のコマンド群です。
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/config"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/logging"
)

// CLI は staffctl の出力先と共通フラグを保持します。
type CLI struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	mode    string
	logger  *zap.Logger
}

// New は CLI を生成します。
func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut, logger: zap.NewNop()}
}

// RootCommand はサブコマンドを登録したルートコマンドを返します。
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "staffctl",
		Short:         "Query staffing vacancies from a snapshot file or a running service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !staffing.VacancyMode(c.mode).Valid() {
				return fmt.Errorf("--mode: %w", staffing.ErrInvalidVacancyMode)
			}

			level := "warn"
			if c.verbose {
				level = "debug"
			}
			logger, err := logging.New(config.LogConfig{Level: level, Development: true})
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
	}

	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.mode, "mode", string(staffing.VacancyModeTotal), "how stored vacancy numbers are read: total or remaining")

	root.AddCommand(c.countCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// Execute はルートコマンドを実行します。
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
