// Package cli implements the wavecx command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wavecx/wavecx-go/pkg/clientip"
	"github.com/wavecx/wavecx-go/pkg/logger"
	"github.com/wavecx/wavecx-go/pkg/requestid"
)

// Version is set at build time.
var Version = "dev"

type globalFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "wavecx",
		Short: "WaveCX targeted content tooling",
		Long: `wavecx runs a local mock of the targeted-content API, replays event
scenarios against the SDK provider and computes user id verification codes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(newServeCmd(g))
	root.AddCommand(newSimulateCmd(g))
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithOutput(w),
		logger.WithLevel(logger.ParseLevel(g.logLevel)),
		logger.WithFormat(logger.ParseFormat(g.logFormat)),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wavecx version %s\n", Version)
		},
	}
}
