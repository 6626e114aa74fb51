package terminal

import (
	"io"
	"os"

	"github.com/de-tools/report-desk/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-desk/pkg/runtime/terminal/export"
	"github.com/de-tools/report-desk/pkg/services/config"
	storesubmission "github.com/de-tools/report-desk/pkg/store/duckdb/submission"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry config.Registry
	archive  storesubmission.Store
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry config.Registry
	Archive  storesubmission.Store
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		archive:  opts.Archive,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportdesk",
		Short: "Report generation request tool",
	}

	cmd.AddCommand(commands.NewSubmitCmd(cli.registry, cli.archive, cli.reporter))
	cmd.AddCommand(commands.NewHistoryCmd(cli.archive, cli.reporter))
	cmd.AddCommand(commands.NewTypesCmd())

	return cmd
}
