// Package log provides context-scoped logrus entries plus a hook that
// normalizes entry fields and stamps them with the active trace span.
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type entryContextKeyType int

const _entryContextKey entryContextKeyType = iota

// L is the default, blank logging entry. It is the base that G returns when
// the context carries no entry of its own.
var L = logrus.NewEntry(logrus.StandardLogger())

// G returns the logging entry stored in the context, or L if there is none.
// The returned entry has its Context set so hooks can read span data.
func G(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(_entryContextKey).(*logrus.Entry); ok {
		return e.WithContext(ctx)
	}
	return L.WithContext(ctx)
}

// S returns the context's entry with additional fields applied.
func S(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return G(ctx).WithFields(fields)
}

// WithContext returns a context carrying the entry, and the entry itself
// updated to reference that context.
func WithContext(ctx context.Context, e *logrus.Entry) (context.Context, *logrus.Entry) {
	ctx = context.WithValue(ctx, _entryContextKey, e)
	return ctx, e.WithContext(ctx)
}
