package memcache

import (
	"context"
	"testing"
	"time"
)

func TestKey_ParamOrderInvariant(t *testing.T) {
	a := Key("rates", map[string]any{"hotelId": "lp1", "adults": 2, "checkIn": "2026-01-10"})
	b := Key("rates", map[string]any{"checkIn": "2026-01-10", "adults": 2, "hotelId": "lp1"})
	if a != b {
		t.Fatalf("keys differ under param order: %q vs %q", a, b)
	}
}

func TestKey_DistinguishesParams(t *testing.T) {
	a := Key("rates", map[string]any{"adults": 2})
	b := Key("rates", map[string]any{"adults": 3})
	if a == b {
		t.Fatalf("different params produced the same key %q", a)
	}
	if Key("search", nil) == Key("availability", nil) {
		t.Fatal("prefix must distinguish keys")
	}
}

func TestCache_SetGet(t *testing.T) {
	c := New()
	ctx := context.Background()

	type payload struct{ Name string }
	if err := c.Set(ctx, "k", payload{Name: "Reethi Beach"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.Name != "Reethi Beach" {
		t.Fatalf("unexpected value: %+v", got)
	}

	ok, _ = c.Get(ctx, "missing", &got)
	if ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestCache_ExpiryEvictsOnRead(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "k", "v", time.Minute)

	var v string
	if ok, _ := c.Get(ctx, "k", &v); !ok {
		t.Fatal("entry should be live before TTL")
	}

	// exactly at the TTL boundary the entry is still valid
	now = now.Add(time.Minute)
	if ok, _ := c.Get(ctx, "k", &v); !ok {
		t.Fatal("entry should be live at the TTL boundary")
	}

	now = now.Add(time.Nanosecond)
	if ok, _ := c.Get(ctx, "k", &v); ok {
		t.Fatal("entry should be expired past the TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not evicted, len=%d", c.Len())
	}
	if ok, _ := c.Get(ctx, "k", &v); ok {
		t.Fatal("second read after expiry must also miss")
	}
}

func TestCache_DefaultTTL(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "k", 1, 0) // no TTL given

	now = now.Add(DefaultTTL + time.Second)
	var v int
	if ok, _ := c.Get(ctx, "k", &v); ok {
		t.Fatal("default TTL should have expired the entry")
	}
}

func TestCache_Sweep(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "short", 1, time.Second)
	_ = c.Set(ctx, "long", 2, time.Hour)

	now = now.Add(time.Minute)
	if n := c.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept entry, got %d", n)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", c.Len())
	}
}

func TestCache_Clear(t *testing.T) {
	c := New()
	ctx := context.Background()
	_ = c.Set(ctx, "a", 1, time.Minute)
	_ = c.Set(ctx, "b", 2, time.Minute)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("clear left %d entries", c.Len())
	}
}

func TestCache_ValueIsSnapshot(t *testing.T) {
	c := New()
	ctx := context.Background()

	src := []string{"pool", "spa"}
	_ = c.Set(ctx, "k", src, time.Minute)
	src[0] = "mutated"

	var got []string
	if ok, _ := c.Get(ctx, "k", &got); !ok {
		t.Fatal("expected hit")
	}
	if got[0] != "pool" {
		t.Fatalf("cached value aliased caller slice: %v", got)
	}
}
