// Package oc adapts the module's error taxonomy to opencensus span status
// codes. Spans are only opened around the infrequent hardware-touching
// operations (registration and root deregistration).
package oc

import (
	"context"
	"errors"

	"go.opencensus.io/trace"

	"github.com/rdmakit/memreg/pkg/memory"
)

// SetSpanStatus sets the span status from err. A nil err leaves the status
// code at OK.
func SetSpanStatus(span *trace.Span, err error) {
	status := trace.Status{}
	if err != nil {
		status.Code = toStatusCode(err)
		status.Message = err.Error()
	}
	span.SetStatus(status)
}

func toStatusCode(err error) int32 {
	switch {
	case checkErrors(err, context.Canceled):
		return trace.StatusCodeCancelled
	case checkErrors(err, context.DeadlineExceeded):
		return trace.StatusCodeDeadlineExceeded
	case checkErrors(err, memory.ErrInvalidRange):
		return trace.StatusCodeInvalidArgument
	case checkErrors(err, memory.ErrOverlap):
		return trace.StatusCodeAlreadyExists
	case checkErrors(err, memory.ErrOutOfSpace):
		return trace.StatusCodeResourceExhausted
	case checkErrors(err, memory.ErrNotAllocated):
		return trace.StatusCodeNotFound
	case checkErrors(err, memory.ErrAlreadyClosed):
		return trace.StatusCodeFailedPrecondition
	default:
		return trace.StatusCodeUnknown
	}
}

func checkErrors(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
