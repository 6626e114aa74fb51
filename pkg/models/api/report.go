package api

// SubmitReport is the inbound body for POST /reports. The reporting year is
// kept by the UI stepper between the floor and no ceiling; the handler
// re-checks the floor because the API has no stepper in front of it.
type SubmitReport struct {
	ReportType    string `json:"reportType"`
	ReportingYear int    `json:"reportingYear"`
	ClientName    string `json:"clientName"`
}

// ReportRequest is the payload posted to the document generation endpoint.
type ReportRequest struct {
	ReportType    string `json:"reportType"`
	ReportingYear int    `json:"reportingYear"`
	ClientName    string `json:"clientName"`
	Timestamp     string `json:"timestamp"`
	RequestID     string `json:"requestId"`
}

// GenerateResponse is the document service's answer to a ReportRequest.
type GenerateResponse struct {
	Success     bool   `json:"success"`
	ReportID    string `json:"reportId"`
	DownloadURL string `json:"downloadUrl"`
	GeneratedAt string `json:"generatedAt"`
}

// SubmissionResult is returned to the caller after a successful round trip.
type SubmissionResult struct {
	ReportType    string `json:"reportType"`
	ReportingYear int    `json:"reportingYear"`
	ClientName    string `json:"clientName"`
	Timestamp     string `json:"timestamp"`
	RequestID     string `json:"requestId"`
	ReportID      string `json:"reportId"`
	DownloadURL   string `json:"downloadUrl"`
	GeneratedAt   string `json:"generatedAt"`
}

// HistoryEntry mirrors one slot of the bounded request history.
type HistoryEntry struct {
	ReportType    string `json:"reportType"`
	ReportingYear int    `json:"reportingYear"`
	ClientName    string `json:"clientName"`
	Timestamp     string `json:"timestamp"`
	RequestID     string `json:"requestId"`
}

// ReplayValues are the form fields reproduced from a history entry.
type ReplayValues struct {
	ReportType    string `json:"reportType"`
	ReportingYear int    `json:"reportingYear"`
	ClientName    string `json:"clientName"`
}

// Error is the uniform error body for all endpoints.
type Error struct {
	Error string `json:"error"`
}
