package docgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	reportdeskmiddleware "github.com/de-tools/report-desk/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ConfigureRouter wires the document service routes the report submitter
// posts to.
func ConfigureRouter(service *Service, logger zerolog.Logger) *chi.Mux {
	handler := NewHandler(service)

	router := chi.NewRouter()
	router.Use(reportdeskmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/documents", handler.GenerateDocument)
		r.Get("/documents/files/{reportId}", handler.DownloadDocument)
	})

	return router
}

func (h *Handler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	var payload api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}

	if strings.TrimSpace(payload.RequestID) == "" {
		writeError(w, http.StatusBadRequest, "requestId is required")
		return
	}
	if strings.TrimSpace(payload.ReportType) == "" {
		writeError(w, http.StatusBadRequest, "reportType is required")
		return
	}
	if strings.TrimSpace(payload.ClientName) == "" {
		writeError(w, http.StatusBadRequest, "clientName is required")
		return
	}
	if payload.ReportingYear < domain.MinReportingYear {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reportingYear must be %d or later", domain.MinReportingYear))
		return
	}
	timestamp, err := time.Parse(time.RFC3339, payload.Timestamp)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid timestamp: %v", err))
		return
	}

	req := domain.ReportRequest{
		Type:       domain.ReportType(payload.ReportType),
		Year:       payload.ReportingYear,
		ClientName: payload.ClientName,
		Timestamp:  timestamp,
		RequestID:  payload.RequestID,
	}

	result, err := h.service.Generate(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("request_id", req.RequestID).
			Msg("failed to generate document")
		writeError(w, http.StatusInternalServerError, "document generation failed")
		return
	}

	writeJSON(w, http.StatusOK, api.GenerateResponse{
		Success:     true,
		ReportID:    result.ReportID,
		DownloadURL: result.DownloadURL,
		GeneratedAt: result.GeneratedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	token := r.URL.Query().Get("token")

	if err := h.service.ValidateToken(reportID, token); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	file, err := h.service.OpenDocument(reportID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("report_id", reportID).
			Msg("failed to open document")
		writeError(w, http.StatusInternalServerError, "document unavailable")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "document unavailable")
		return
	}

	w.Header().Set("Content-Type", workbookContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportID+".xlsx"))
	http.ServeContent(w, r, reportID+".xlsx", info.ModTime(), file)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Error: message})
}
