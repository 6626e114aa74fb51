package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/google/uuid"
)

// Simulator stands in for the remote document service during development and
// tests: it waits for the configured latency and fabricates a result. The
// failure hook lets tests exercise the transport error path.
type Simulator struct {
	latency time.Duration
	now     func() time.Time
	fail    func(req domain.ReportRequest) error
}

type SimulatorOption func(*Simulator)

func WithLatency(latency time.Duration) SimulatorOption {
	return func(s *Simulator) {
		if latency >= 0 {
			s.latency = latency
		}
	}
}

func WithSimulatedClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFailure makes the simulator return a transport error whenever fail
// returns a non-nil error for the request.
func WithFailure(fail func(req domain.ReportRequest) error) SimulatorOption {
	return func(s *Simulator) {
		s.fail = fail
	}
}

func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		latency: 150 * time.Millisecond,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Submit(ctx context.Context, req domain.ReportRequest) (domain.SubmissionResult, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.SubmissionResult{}, &Error{Op: "submit request", Err: ctx.Err()}
		case <-timer.C:
		}
	}

	if s.fail != nil {
		if err := s.fail(req); err != nil {
			return domain.SubmissionResult{}, &Error{Op: "submit request", Err: err}
		}
	}

	now := s.now()
	reportID := fmt.Sprintf("RPT-%d-%s", now.UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0])
	return domain.SubmissionResult{
		ReportID:    reportID,
		DownloadURL: fmt.Sprintf("https://documents.invalid/reports/%s.docx", reportID),
		GeneratedAt: now,
	}, nil
}
