package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/report-desk/pkg/models/domain"
)

// Submitter is the boundary to the document generation collaborator. A
// submission runs to completion or failure once issued; retry and timeout
// policy live behind this interface, not in the caller.
type Submitter interface {
	Submit(ctx context.Context, req domain.ReportRequest) (domain.SubmissionResult, error)
}

// Error marks a transport-level failure. Callers surface it as a generic
// retry prompt and must not record history for the attempt.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err originated at the transport boundary.
func IsTransport(err error) bool {
	var te *Error
	return errors.As(err, &te)
}
