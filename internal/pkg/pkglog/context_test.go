package pkglog

import (
	"context"
	"testing"
)

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "" {
		t.Fatalf("expected empty correlation id, got %q", got)
	}
	if got := GetSessionID(ctx); got != "" {
		t.Fatalf("expected empty session id, got %q", got)
	}

	ctx = SetSessionID(SetCorrelationID(ctx, "cid-123"), "sess-1")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("expected cid-123, got %q", got)
	}
	if got := GetSessionID(ctx); got != "sess-1" {
		t.Fatalf("expected sess-1, got %q", got)
	}
}

func TestSetSessionIDIgnoresEmpty(t *testing.T) {
	ctx := SetSessionID(context.Background(), "sess-1")
	if got := GetSessionID(SetSessionID(ctx, "")); got != "sess-1" {
		t.Fatalf("expected empty id to keep sess-1, got %q", got)
	}
}
