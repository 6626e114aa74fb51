package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
)

const defaultTimeout = 30 * time.Second

// HTTPClient posts report requests to a remote document generation endpoint.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

type HTTPOption func(*HTTPClient)

func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

func NewHTTPClient(endpoint string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Submit(ctx context.Context, req domain.ReportRequest) (domain.SubmissionResult, error) {
	payload := api.ReportRequest{
		ReportType:    string(req.Type),
		ReportingYear: req.Year,
		ClientName:    req.ClientName,
		Timestamp:     req.Timestamp.UTC().Format(time.RFC3339),
		RequestID:     req.RequestID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.SubmissionResult{}, &Error{Op: "encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SubmissionResult{}, &Error{Op: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.SubmissionResult{}, &Error{Op: "submit request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.SubmissionResult{}, &Error{
			Op:  "submit request",
			Err: fmt.Errorf("document service returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg)),
		}
	}

	var generated api.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return domain.SubmissionResult{}, &Error{Op: "decode response", Err: err}
	}
	if !generated.Success {
		return domain.SubmissionResult{}, &Error{
			Op:  "submit request",
			Err: fmt.Errorf("document service rejected request %s", req.RequestID),
		}
	}

	generatedAt, err := time.Parse(time.RFC3339, generated.GeneratedAt)
	if err != nil {
		return domain.SubmissionResult{}, &Error{Op: "decode response", Err: fmt.Errorf("parse generatedAt: %w", err)}
	}

	return domain.SubmissionResult{
		ReportID:    generated.ReportID,
		DownloadURL: generated.DownloadURL,
		GeneratedAt: generatedAt,
	}, nil
}
