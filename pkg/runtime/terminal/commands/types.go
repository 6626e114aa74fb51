package commands

import (
	"fmt"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/spf13/cobra"
)

func NewTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported report types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range domain.ReportTypes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
