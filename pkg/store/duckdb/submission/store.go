package submission

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/report-desk/pkg/models/store"
	"github.com/de-tools/report-desk/pkg/store/duckdb"
)

// Store is the append-only archive of successful submissions. It is separate
// from the bounded in-memory history: the window forgets, the archive does not.
type Store interface {
	Add(ctx context.Context, sub store.Submission) error
	ListRecent(ctx context.Context, limit int) ([]store.Submission, error)
}

type submissionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &submissionStore{db: db}, nil
}

func (s *submissionStore) Add(ctx context.Context, sub store.Submission) error {
	query := `
		INSERT INTO report_submissions (
			request_id, report_type, reporting_year, client_name,
			submitted_at, report_id, download_url, generated_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?
		)`

	tx := duckdb.GetTransaction(ctx)
	var err error
	if tx == nil {
		_, err = s.db.ExecContext(ctx, query,
			sub.RequestID,
			sub.ReportType,
			sub.Year,
			sub.ClientName,
			sub.SubmittedAt,
			sub.ReportID,
			sub.DownloadURL,
			sub.GeneratedAt,
		)
	} else {
		_, err = tx.ExecContext(ctx, query,
			sub.RequestID,
			sub.ReportType,
			sub.Year,
			sub.ClientName,
			sub.SubmittedAt,
			sub.ReportID,
			sub.DownloadURL,
			sub.GeneratedAt,
		)
	}

	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *submissionStore) ListRecent(ctx context.Context, limit int) ([]store.Submission, error) {
	if limit <= 0 {
		return []store.Submission{}, nil
	}

	query := `
		SELECT request_id, report_type, reporting_year, client_name,
		       submitted_at, report_id, download_url, generated_at
		FROM report_submissions
		ORDER BY submitted_at DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()
	return scanSubmissionRows(rows)
}

func scanSubmissionRows(rows *sql.Rows) ([]store.Submission, error) {
	subs := make([]store.Submission, 0)
	for rows.Next() {
		var (
			requestID, reportType, clientName, reportID string
			year                                        int
			downloadURL                                 sql.NullString
			submittedAt                                 time.Time
			generatedAt                                 sql.NullTime
		)
		if err := rows.Scan(&requestID, &reportType, &year, &clientName, &submittedAt, &reportID, &downloadURL, &generatedAt); err != nil {
			return nil, err
		}
		sub := store.Submission{
			RequestID:   requestID,
			ReportType:  reportType,
			Year:        year,
			ClientName:  clientName,
			SubmittedAt: submittedAt,
			ReportID:    reportID,
		}
		if downloadURL.Valid {
			sub.DownloadURL = downloadURL.String
		}
		if generatedAt.Valid {
			sub.GeneratedAt = generatedAt.Time
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
