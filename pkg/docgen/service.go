package docgen

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ErrDocumentNotFound is returned when a report id has no generated file.
var ErrDocumentNotFound = errors.New("document not found")

// Service is the development stand-in for the remote document generation
// backend. It renders each accepted report request into an OpenXML workbook
// on local disk and hands out signed download links for it.
type Service struct {
	outputDir string
	baseURL   string
	signer    *downloadSigner
	now       func() time.Time
	newSuffix func() string
}

type Option func(*Service)

func WithOutputDirectory(dir string) Option {
	return func(s *Service) {
		if strings.TrimSpace(dir) != "" {
			s.outputDir = filepath.Clean(dir)
		}
	}
}

func WithDownloadTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.signer = newDownloadSigner(ttl)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(baseURL string, opts ...Option) *Service {
	s := &Service{
		outputDir: filepath.Join(os.TempDir(), "report-desk-documents"),
		baseURL:   strings.TrimRight(baseURL, "/"),
		now:       time.Now,
		newSuffix: func() string { return strings.SplitN(uuid.NewString(), "-", 2)[0] },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.signer == nil {
		s.signer = newDownloadSigner(15 * time.Minute)
	}
	return s
}

// Generate writes the workbook for a validated report request and returns the
// submission result the caller relays to the form.
func (s *Service) Generate(ctx context.Context, req domain.ReportRequest) (domain.SubmissionResult, error) {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("ensure output directory: %w", err)
	}

	now := s.now()
	reportID := fmt.Sprintf("RPT-%d-%s", now.UnixMilli(), s.newSuffix())

	path := filepath.Join(s.outputDir, reportID+".xlsx")
	if err := writeWorkbook(path, req, reportID, now); err != nil {
		return domain.SubmissionResult{}, err
	}

	token := s.signer.Sign(reportID, now)
	values := url.Values{}
	values.Set("token", token)
	download := fmt.Sprintf("%s/api/v1/documents/files/%s?%s", s.baseURL, reportID, values.Encode())

	logger.Info().
		Str("request_id", req.RequestID).
		Str("report_id", reportID).
		Str("path", path).
		Msg("document generated")

	return domain.SubmissionResult{
		ReportID:    reportID,
		DownloadURL: download,
		GeneratedAt: now,
	}, nil
}

// ValidateToken checks a download token against the report id it was signed for.
func (s *Service) ValidateToken(reportID, token string) error {
	return s.signer.Verify(reportID, token, s.now())
}

// OpenDocument opens a generated workbook for streaming to the client.
func (s *Service) OpenDocument(reportID string) (*os.File, error) {
	if reportID == "" || reportID != filepath.Base(reportID) {
		return nil, ErrDocumentNotFound
	}
	file, err := os.Open(filepath.Join(s.outputDir, reportID+".xlsx"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("open document: %w", err)
	}
	return file, nil
}

func writeWorkbook(path string, req domain.ReportRequest, reportID string, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Report", string(req.Type)},
		{"Reporting Year", req.Year},
		{"Client", req.ClientName},
		{"Request ID", req.RequestID},
		{"Requested At", req.Timestamp.UTC().Format(time.RFC3339)},
		{"Report ID", reportID},
		{"Generated At", generatedAt.UTC().Format(time.RFC3339)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 42); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
