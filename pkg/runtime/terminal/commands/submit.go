package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/runtime/terminal/export"
	"github.com/de-tools/report-desk/pkg/services/config"
	"github.com/de-tools/report-desk/pkg/services/history"
	"github.com/de-tools/report-desk/pkg/services/request"
	"github.com/de-tools/report-desk/pkg/services/submission"
	storesubmission "github.com/de-tools/report-desk/pkg/store/duckdb/submission"
	"github.com/de-tools/report-desk/pkg/transport"
	"github.com/spf13/cobra"
)

type SubmitCmd struct {
	profile    string
	reportType string
	year       int
	client     string
	registry   config.Registry
	archive    storesubmission.Store
	reporter   *export.Reporter
}

func NewSubmitCmd(registry config.Registry, archive storesubmission.Store, reporter *export.Reporter) *cobra.Command {
	sc := &SubmitCmd{registry: registry, archive: archive, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a report generation request",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "default", "Destination profile to submit through")
	cmd.Flags().StringVar(&sc.reportType, "type", "", "Report type (e.g., P&L)")
	cmd.Flags().IntVar(&sc.year, "year", time.Now().Year(), "Reporting year (2000 or later)")
	cmd.Flags().StringVar(&sc.client, "client", "", "Client name")

	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func (sc *SubmitCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if sc.year < domain.MinReportingYear {
		return fmt.Errorf("reporting year must be %d or later", domain.MinReportingYear)
	}

	dest, err := sc.registry.GetDestination(ctx, sc.profile)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", sc.profile, err)
	}

	coordinator := submission.NewCoordinator(
		request.NewBuilder(),
		NewSubmitter(dest),
		history.NewStore(),
		submission.WithArchive(sc.archive),
	)

	req, result, err := coordinator.Submit(ctx, domain.FormValues{
		Type:       domain.ReportType(sc.reportType),
		Year:       sc.year,
		ClientName: sc.client,
	})
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	return sc.reporter.HandleResult(req, result)
}

// NewSubmitter builds the transport for a resolved destination profile.
func NewSubmitter(dest *config.Destination) transport.Submitter {
	if dest.Mode == domain.ProfileTypeHTTP {
		return transport.NewHTTPClient(dest.Endpoint)
	}
	return transport.NewSimulator(transport.WithLatency(dest.Latency))
}
