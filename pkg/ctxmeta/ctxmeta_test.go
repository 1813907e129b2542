package ctxmeta

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	got, ok := RequestIDFromContext(ctx)
	if !ok || got != "req-1" {
		t.Fatalf("want req-1, got (%q, %v)", got, ok)
	}
}

func TestRequestID_EmptyIsNoop(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Fatalf("empty request id must not be stored")
	}
}

func TestRequestID_MissingContext(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Fatalf("fresh context must have no request id")
	}
}

func TestIdempotencyKey_RoundTrip(t *testing.T) {
	ctx := WithIdempotencyKey(context.Background(), "key-1")

	got, ok := IdempotencyKeyFromContext(ctx)
	if !ok || got != "key-1" {
		t.Fatalf("want key-1, got (%q, %v)", got, ok)
	}
}

func TestIdempotencyKey_Missing(t *testing.T) {
	if _, ok := IdempotencyKeyFromContext(context.Background()); ok {
		t.Fatalf("fresh context must have no idempotency key")
	}
}
