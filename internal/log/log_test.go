package log

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func Test_G_ReturnsScopedEntry(t *testing.T) {
	ctx := context.Background()
	if e := G(ctx); e == nil {
		t.Fatal("G returned nil for a bare context")
	}

	ctx, entry := WithContext(ctx, L.WithField("region", "root"))
	got := G(ctx)
	if got.Data["region"] != "root" {
		t.Fatalf("scoped field lost: %v", got.Data)
	}
	if entry.Context != ctx {
		t.Fatal("returned entry does not reference the new context")
	}
}

func Test_S_MergesFields(t *testing.T) {
	ctx, _ := WithContext(context.Background(), L.WithField("region", "root"))
	e := S(ctx, logrus.Fields{"length": 128})
	if e.Data["region"] != "root" {
		t.Fatalf("scoped field lost: %v", e.Data)
	}
	if e.Data["length"] != 128 {
		t.Fatalf("extra field not applied: %v", e.Data)
	}
}

func Test_Hook_NormalizesFields(t *testing.T) {
	h := NewHook()
	e := logrus.NewEntry(logrus.StandardLogger())
	e.Data["elapsed"] = 1500 * time.Millisecond
	e.Data["at"] = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := h.Fire(e); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got, ok := e.Data["elapsed"].(float64); !ok || got != 1.5 {
		t.Fatalf("duration not converted to seconds: %v", e.Data["elapsed"])
	}
	if _, ok := e.Data["at"].(string); !ok {
		t.Fatalf("time not formatted: %v", e.Data["at"])
	}
}
