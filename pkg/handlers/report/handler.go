package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/report-desk/pkg/models/api"
	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/services/history"
	"github.com/de-tools/report-desk/pkg/services/request"
	"github.com/de-tools/report-desk/pkg/services/submission"
	storesubmission "github.com/de-tools/report-desk/pkg/store/duckdb/submission"
	"github.com/de-tools/report-desk/pkg/transport"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultArchiveLimit = 20

// Submitter runs one validated submission end to end.
type Submitter interface {
	Submit(ctx context.Context, form domain.FormValues) (domain.ReportRequest, domain.SubmissionResult, error)
}

// History is the bounded request history consumed by the handler.
type History interface {
	List() []domain.HistoryEntry
	Clear()
	Find(requestID string) (domain.HistoryEntry, bool)
}

type Handler struct {
	submitter Submitter
	history   History
	archive   storesubmission.Store
}

func NewHandler(submitter Submitter, hist History, archive storesubmission.Store) *Handler {
	return &Handler{
		submitter: submitter,
		history:   hist,
		archive:   archive,
	}
}

func (h *Handler) ListReportTypes(w http.ResponseWriter, r *http.Request) {
	types := domain.ReportTypes()
	response := make([]string, 0, len(types))
	for _, t := range types {
		response = append(response, string(t))
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	var payload api.SubmitReport
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}

	// The browser form bounds the year with a stepper; the API re-checks the
	// floor before the builder ever sees the value.
	if payload.ReportingYear < domain.MinReportingYear {
		writeError(ctx, w, http.StatusBadRequest,
			fmt.Sprintf("reportingYear must be %d or later", domain.MinReportingYear))
		return
	}

	form := domain.FormValues{
		Type:       domain.ReportType(payload.ReportType),
		Year:       payload.ReportingYear,
		ClientName: payload.ClientName,
	}

	req, result, err := h.submitter.Submit(ctx, form)
	if err != nil {
		h.writeSubmitError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.SubmissionResult{
		ReportType:    string(req.Type),
		ReportingYear: req.Year,
		ClientName:    req.ClientName,
		Timestamp:     req.Timestamp.UTC().Format(time.RFC3339),
		RequestID:     req.RequestID,
		ReportID:      result.ReportID,
		DownloadURL:   result.DownloadURL,
		GeneratedAt:   result.GeneratedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writeSubmitError(ctx context.Context, w http.ResponseWriter, err error) {
	var validation *request.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(ctx, w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, submission.ErrBusy):
		writeError(ctx, w, http.StatusConflict, err.Error())
	case transport.IsTransport(err):
		zerolog.Ctx(ctx).Error().Err(err).Msg("report submission failed")
		writeError(ctx, w, http.StatusBadGateway, "report generation failed, please try again")
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("report submission failed")
		writeError(ctx, w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries := h.history.List()
	response := make([]api.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toAPIHistoryEntry(entry))
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.history.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReplayEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chi.URLParam(r, "requestId")

	entry, ok := h.history.Find(requestID)
	if !ok {
		writeError(ctx, w, http.StatusNotFound, "history entry not found")
		return
	}

	values := history.Replay(entry)
	writeJSON(ctx, w, http.StatusOK, api.ReplayValues{
		ReportType:    string(values.Type),
		ReportingYear: values.Year,
		ClientName:    values.ClientName,
	})
}

func (h *Handler) ListArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultArchiveLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	subs, err := h.archive.ListRecent(ctx, limit)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list archived submissions")
		writeError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	response := make([]api.SubmissionResult, 0, len(subs))
	for _, sub := range subs {
		response = append(response, api.SubmissionResult{
			ReportType:    sub.ReportType,
			ReportingYear: sub.Year,
			ClientName:    sub.ClientName,
			Timestamp:     sub.SubmittedAt.UTC().Format(time.RFC3339),
			RequestID:     sub.RequestID,
			ReportID:      sub.ReportID,
			DownloadURL:   sub.DownloadURL,
			GeneratedAt:   sub.GeneratedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func toAPIHistoryEntry(entry domain.HistoryEntry) api.HistoryEntry {
	return api.HistoryEntry{
		ReportType:    string(entry.Type),
		ReportingYear: entry.Year,
		ClientName:    entry.ClientName,
		Timestamp:     entry.Timestamp.UTC().Format(time.RFC3339),
		RequestID:     entry.RequestID,
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, api.Error{Error: message})
}
