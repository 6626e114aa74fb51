package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/google/uuid"
)

// ValidationError is a user-correctable input failure. It is surfaced as a
// message and never treated as a fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MinClientNameLen is the minimum client name length after trimming.
const MinClientNameLen = 2

// Builder validates the three form fields and produces immutable report
// requests. The clock and the id suffix source are injectable so tests can
// pin request ids and timestamps.
type Builder struct {
	now       func() time.Time
	newSuffix func() string
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func WithSuffixSource(source func() string) Option {
	return func(b *Builder) {
		if source != nil {
			b.newSuffix = source
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		now:       time.Now,
		newSuffix: defaultSuffix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the inputs in order, short-circuiting on the first failure.
// The selection control only ever offers valid report types, so the type check
// is a presence check; the client name is trimmed before both checks. On
// success no partially valid request exists: the returned value carries a
// fresh request id and timestamp.
func (b *Builder) Build(selected domain.ReportType, year int, rawClientName string) (domain.ReportRequest, error) {
	if selected == "" {
		return domain.ReportRequest{}, &ValidationError{Field: "reportType", Message: "report type required"}
	}

	name := strings.TrimSpace(rawClientName)
	if name == "" {
		return domain.ReportRequest{}, &ValidationError{Field: "clientName", Message: "client name required"}
	}
	if len(name) < MinClientNameLen {
		return domain.ReportRequest{}, &ValidationError{Field: "clientName", Message: "client name too short"}
	}

	now := b.now()
	return domain.ReportRequest{
		Type:       selected,
		Year:       year,
		ClientName: name,
		Timestamp:  now,
		RequestID:  fmt.Sprintf("REQ-%d-%s", now.UnixMilli(), b.newSuffix()),
	}, nil
}

// defaultSuffix takes the first uuid group, which is enough entropy to keep
// ids distinct within one epoch millisecond.
func defaultSuffix() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
