package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/models/store"
)

type TableConfig struct {
	RequestIDWidth int
	TypeWidth      int
	YearWidth      int
	ClientWidth    int
	ReportIDWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		RequestIDWidth: 28,
		TypeWidth:      14,
		YearWidth:      6,
		ClientWidth:    28,
		ReportIDWidth:  28,
	}
}

// Reporter renders submission results and archive listings as console text.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type submissionView struct {
	Request domain.ReportRequest
	Result  domain.SubmissionResult
}

func (c *Reporter) HandleResult(req domain.ReportRequest, result domain.SubmissionResult) error {
	tmpl := `
Report submitted

  Request ID:   {{.Request.RequestID}}
  Report:       {{.Request.Type}} ({{.Request.Year}})
  Client:       {{.Request.ClientName}}
  Report ID:    {{.Result.ReportID}}
  Download URL: {{.Result.DownloadURL}}
  Generated At: {{.Result.GeneratedAt.UTC.Format "2006-01-02T15:04:05Z07:00"}}
`
	t, err := template.New("submission").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, submissionView{Request: req, Result: result})
}

func (c *Reporter) HandleArchive(subs []store.Submission) error {
	if len(subs) == 0 {
		_, err := fmt.Fprintln(c.writer, "No archived submissions.")
		return err
	}

	separator := fmt.Sprintf("+%s+%s+%s+%s+%s+",
		strings.Repeat("-", c.config.RequestIDWidth+2),
		strings.Repeat("-", c.config.TypeWidth+2),
		strings.Repeat("-", c.config.YearWidth+2),
		strings.Repeat("-", c.config.ClientWidth+2),
		strings.Repeat("-", c.config.ReportIDWidth+2))

	row := func(requestID, reportType, year, client, reportID string) string {
		return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s | %-*s |",
			c.config.RequestIDWidth, requestID,
			c.config.TypeWidth, reportType,
			c.config.YearWidth, year,
			c.config.ClientWidth, client,
			c.config.ReportIDWidth, reportID)
	}

	lines := []string{
		separator,
		row("Request ID", "Type", "Year", "Client", "Report ID"),
		separator,
	}
	for _, sub := range subs {
		lines = append(lines, row(
			sub.RequestID,
			sub.ReportType,
			fmt.Sprintf("%d", sub.Year),
			sub.ClientName,
			sub.ReportID,
		))
	}
	lines = append(lines, separator,
		fmt.Sprintf("%d submissions, newest first (as of %s)", len(subs), time.Now().UTC().Format("2006-01-02 15:04")))

	_, err := fmt.Fprintln(c.writer, strings.Join(lines, "\n"))
	return err
}
