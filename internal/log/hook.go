package log

import (
	"time"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"

	"github.com/rdmakit/memreg/internal/logfields"
)

// Hook intercepts and formats a [logrus.Entry] before it is logged.
type Hook struct {
	// TimeFormat specifies the format for [time.Time] variables.
	// An empty string disables formatting.
	//
	// Default is [github.com/containerd/log.RFC3339NanoFixed].
	TimeFormat string

	// DurationAsSeconds converts [time.Duration] fields to a float64
	// second count.
	//
	// Default is true.
	DurationAsSeconds bool

	// AddSpanContext adds [logfields.TraceID] and [logfields.SpanID]
	// fields to the entry from the span context stored in
	// [logrus.Entry.Context], if it exists.
	AddSpanContext bool
}

var _ logrus.Hook = &Hook{}

func NewHook() *Hook {
	return &Hook{
		TimeFormat:        log.RFC3339NanoFixed,
		DurationAsSeconds: true,
		AddSpanContext:    true,
	}
}

func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *Hook) Fire(e *logrus.Entry) (err error) {
	h.encode(e)
	h.addSpanContext(e)

	return nil
}

// encode normalizes time.Time and time.Duration fields according to the
// settings in [Hook].
func (h *Hook) encode(e *logrus.Entry) {
	d := e.Data

	formatTime := h.TimeFormat != ""
	if !(formatTime || h.DurationAsSeconds) {
		return
	}

	for k, v := range d {
		switch vv := v.(type) {
		case time.Time:
			if formatTime {
				d[k] = vv.Format(h.TimeFormat)
			}
		case time.Duration:
			if h.DurationAsSeconds {
				d[k] = vv.Seconds()
			}
		}
	}
}

func (h *Hook) addSpanContext(e *logrus.Entry) {
	if !h.AddSpanContext {
		return
	}
	ctx := e.Context
	if ctx == nil {
		return
	}
	span := trace.FromContext(ctx)
	if span == nil {
		return
	}
	sctx := span.SpanContext()
	e.Data[logfields.TraceID] = sctx.TraceID.String()
	e.Data[logfields.SpanID] = sctx.SpanID.String()
}
