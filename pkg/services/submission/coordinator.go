package submission

import (
	"context"
	"errors"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/models/store"
	"github.com/de-tools/report-desk/pkg/services/history"
	"github.com/de-tools/report-desk/pkg/services/request"
	"github.com/de-tools/report-desk/pkg/transport"
	"github.com/rs/zerolog"
)

// ErrBusy is returned while another submission is still in flight. The form
// trigger used to be disabled for the duration; at the service boundary the
// second caller is rejected instead.
var ErrBusy = errors.New("a submission is already in flight")

// Archive persists successful submissions beyond the bounded history window.
type Archive interface {
	Add(ctx context.Context, sub store.Submission) error
}

// Coordinator drives one submission end to end: build, submit, record.
// History is mutated exclusively after a successful round trip; validation
// and transport failures leave it untouched.
type Coordinator struct {
	builder   *request.Builder
	submitter transport.Submitter
	history   *history.Store
	archive   Archive

	inflight chan struct{}
}

type Option func(*Coordinator)

// WithArchive enables durable submission bookkeeping. Archive failures are
// logged, not surfaced: the document was generated and the user keeps it.
func WithArchive(archive Archive) Option {
	return func(c *Coordinator) {
		c.archive = archive
	}
}

func NewCoordinator(builder *request.Builder, submitter transport.Submitter, hist *history.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		builder:   builder,
		submitter: submitter,
		history:   hist,
		inflight:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates the form values and runs the remote call. There is no
// retry and no cancellation once the call is issued.
func (c *Coordinator) Submit(ctx context.Context, form domain.FormValues) (domain.ReportRequest, domain.SubmissionResult, error) {
	select {
	case c.inflight <- struct{}{}:
		defer func() { <-c.inflight }()
	default:
		return domain.ReportRequest{}, domain.SubmissionResult{}, ErrBusy
	}

	req, err := c.builder.Build(form.Type, form.Year, form.ClientName)
	if err != nil {
		return domain.ReportRequest{}, domain.SubmissionResult{}, err
	}

	result, err := c.submitter.Submit(ctx, req)
	if err != nil {
		return domain.ReportRequest{}, domain.SubmissionResult{}, err
	}

	c.history.Record(req)

	if c.archive != nil {
		sub := store.Submission{
			RequestID:   req.RequestID,
			ReportType:  string(req.Type),
			Year:        req.Year,
			ClientName:  req.ClientName,
			SubmittedAt: req.Timestamp,
			ReportID:    result.ReportID,
			DownloadURL: result.DownloadURL,
			GeneratedAt: result.GeneratedAt,
		}
		if archiveErr := c.archive.Add(ctx, sub); archiveErr != nil {
			zerolog.Ctx(ctx).Warn().
				Err(archiveErr).
				Str("request_id", req.RequestID).
				Msg("failed to archive submission")
		}
	}

	return req, result, nil
}
