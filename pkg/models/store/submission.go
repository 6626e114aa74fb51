package store

import "time"

// Submission is one archived row of a successfully generated report.
type Submission struct {
	RequestID   string
	ReportType  string
	Year        int
	ClientName  string
	SubmittedAt time.Time
	ReportID    string
	DownloadURL string
	GeneratedAt time.Time
}
