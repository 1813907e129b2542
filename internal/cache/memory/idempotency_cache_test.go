package memory

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIdempotencyCache_RoundTrip(t *testing.T) {
	c := NewIdempotencyCache(time.Hour, time.Hour)
	ctx := context.Background()

	body := []byte(`{"success":true}`)
	c.Set(ctx, "k1", 201, body, 0)

	status, got, ok := c.Get(ctx, "k1")
	if !ok || status != 201 || !bytes.Equal(got, body) {
		t.Fatalf("want (201, %s), got (%d, %s, %v)", body, status, got, ok)
	}
}

func TestIdempotencyCache_ErrorsCachedToo(t *testing.T) {
	c := NewIdempotencyCache(time.Hour, time.Hour)
	ctx := context.Background()

	body := []byte(`{"message":"boom"}`)
	c.Set(ctx, "err", 500, body, 0)

	status, got, ok := c.Get(ctx, "err")
	if !ok || status != 500 || !bytes.Equal(got, body) {
		t.Fatalf("error responses must replay verbatim: (%d, %s, %v)", status, got, ok)
	}
}

func TestIdempotencyCache_BodyIsolated(t *testing.T) {
	c := NewIdempotencyCache(time.Hour, time.Hour)
	ctx := context.Background()

	src := []byte("abc")
	c.Set(ctx, "k", 200, src, 0)
	src[0] = 'X' // внешний буфер мутируют после Set

	_, got, _ := c.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored body must be isolated from caller buffers: %q", got)
	}

	got[0] = 'Y' // и возвращённый — после Get
	_, again, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned body must be a copy: %q", again)
	}
}

func TestIdempotencyCache_TTLExpiry(t *testing.T) {
	c := NewIdempotencyCache(time.Hour, time.Hour)
	ctx := context.Background()

	base := time.UnixMilli(0)
	c.now = func() time.Time { return base }
	c.Set(ctx, "k", 200, []byte("x"), time.Minute)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be evicted on Get")
	}
}

func TestIdempotencyCache_Sweep(t *testing.T) {
	c := NewIdempotencyCache(time.Hour, time.Hour)
	ctx := context.Background()

	base := time.UnixMilli(0)
	c.now = func() time.Time { return base }
	c.Set(ctx, "old", 200, []byte("x"), time.Minute)
	c.Set(ctx, "fresh", 200, []byte("y"), time.Hour)

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	c.removeExpired()

	if c.Len() != 1 {
		t.Fatalf("sweep must drop only expired entries, len=%d", c.Len())
	}
}
