package domain

import "time"

// ReportType enumerates the report kinds the document service can produce.
type ReportType string

const (
	ReportTypeProfitLoss   ReportType = "P&L"
	ReportTypeBalanceSheet ReportType = "BalanceSheet"
	ReportTypeCashFlow     ReportType = "CashFlow"
)

// ReportTypes returns the fixed enumeration in presentation order.
func ReportTypes() []ReportType {
	return []ReportType{ReportTypeProfitLoss, ReportTypeBalanceSheet, ReportTypeCashFlow}
}

// MinReportingYear is the floor enforced by the year input; there is no ceiling.
const MinReportingYear = 2000

// ReportRequest is a validated report generation intent. Instances are only
// created by the request builder once every user-supplied field has passed
// validation; they are never mutated afterwards.
type ReportRequest struct {
	Type       ReportType
	Year       int
	ClientName string
	Timestamp  time.Time
	RequestID  string
}

// SubmissionResult is what the document service returns for an accepted request.
type SubmissionResult struct {
	ReportID    string
	DownloadURL string
	GeneratedAt time.Time
}

// HistoryEntry is the display projection of a past ReportRequest kept for replay.
type HistoryEntry struct {
	Type       ReportType
	Year       int
	ClientName string
	Timestamp  time.Time
	RequestID  string
}

// FormValues carries the three user-editable fields used to repopulate the form.
type FormValues struct {
	Type       ReportType
	Year       int
	ClientName string
}

// EntryFromRequest projects a request into its history representation.
func EntryFromRequest(req ReportRequest) HistoryEntry {
	return HistoryEntry{
		Type:       req.Type,
		Year:       req.Year,
		ClientName: req.ClientName,
		Timestamp:  req.Timestamp,
		RequestID:  req.RequestID,
	}
}
