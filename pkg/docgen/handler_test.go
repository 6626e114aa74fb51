package docgen

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDocumentServer(t *testing.T) (*httptest.Server, *Service) {
	service := NewService("http://localhost:9090", WithOutputDirectory(t.TempDir()))
	logger := zerolog.New(zerolog.NewTestWriter(t))
	server := httptest.NewServer(ConfigureRouter(service, logger))
	t.Cleanup(server.Close)
	return server, service
}

func TestGenerateDocument(t *testing.T) {
	validPayload := api.ReportRequest{
		ReportType:    "P&L",
		ReportingYear: 2025,
		ClientName:    "Acme Corporation",
		Timestamp:     "2025-03-14T09:26:53Z",
		RequestID:     "REQ-1741944413000-a1b2c3d4",
	}

	tests := []struct {
		name           string
		mutate         func(*api.ReportRequest)
		expectedStatus int
	}{
		{
			name:           "valid request",
			mutate:         func(p *api.ReportRequest) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing request id",
			mutate:         func(p *api.ReportRequest) { p.RequestID = "" },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing report type",
			mutate:         func(p *api.ReportRequest) { p.ReportType = "" },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing client name",
			mutate:         func(p *api.ReportRequest) { p.ClientName = "  " },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "year below floor",
			mutate:         func(p *api.ReportRequest) { p.ReportingYear = 1999 },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad timestamp",
			mutate:         func(p *api.ReportRequest) { p.Timestamp = "yesterday" },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := setupDocumentServer(t)

			payload := validPayload
			tt.mutate(&payload)
			body, err := json.Marshal(payload)
			require.NoError(t, err)

			resp, err := http.Post(server.URL+"/api/v1/documents", "application/json", bytes.NewReader(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var generated api.GenerateResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&generated))
				assert.True(t, generated.Success)
				assert.NotEmpty(t, generated.ReportID)
				assert.NotEmpty(t, generated.DownloadURL)

				_, err := time.Parse(time.RFC3339, generated.GeneratedAt)
				assert.NoError(t, err)
			}
		})
	}
}

func TestDownloadDocument(t *testing.T) {
	server, service := setupDocumentServer(t)

	payload, err := json.Marshal(api.ReportRequest{
		ReportType:    "BalanceSheet",
		ReportingYear: 2024,
		ClientName:    "Globex",
		Timestamp:     "2025-03-14T09:26:53Z",
		RequestID:     "REQ-1-aaaaaaaa",
	})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/v1/documents", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	var generated api.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&generated))
	resp.Body.Close()
	require.True(t, generated.Success)

	t.Run("signed link streams the workbook", func(t *testing.T) {
		// The advertised URL carries the configured base; rebase it onto the
		// test server before following it.
		link, err := url.Parse(generated.DownloadURL)
		require.NoError(t, err)

		resp, err := http.Get(server.URL + link.Path + "?" + link.RawQuery)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, workbookContentType, resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("missing token is forbidden", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/documents/files/" + generated.ReportID)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("token bound to another report is forbidden", func(t *testing.T) {
		token := service.signer.Sign("RPT-other", time.Now())
		resp, err := http.Get(server.URL + "/api/v1/documents/files/" + generated.ReportID + "?token=" + token)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("valid token for a missing document is a 404", func(t *testing.T) {
		token := service.signer.Sign("RPT-missing", time.Now())
		resp, err := http.Get(server.URL + "/api/v1/documents/files/RPT-missing?token=" + token)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
