package usecase

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, raw string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("parse time %q: %v", raw, err)
	}
	return v
}
