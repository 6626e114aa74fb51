package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/report-desk/pkg/runtime/terminal/export"
	storesubmission "github.com/de-tools/report-desk/pkg/store/duckdb/submission"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	limit    int
	archive  storesubmission.Store
	reporter *export.Reporter
}

func NewHistoryCmd(archive storesubmission.Store, reporter *export.Reporter) *cobra.Command {
	hc := &HistoryCmd{archive: archive, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent archived submissions",
		RunE:  hc.run,
	}

	cmd.Flags().IntVar(&hc.limit, "limit", 20, "Maximum number of submissions to list")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if hc.limit <= 0 {
		return fmt.Errorf("limit must be a positive integer")
	}

	subs, err := hc.archive.ListRecent(ctx, hc.limit)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	return hc.reporter.HandleArchive(subs)
}
