package cache_test

import (
	"testing"
	"time"

	"github.com/paddock-dev/paddock/pkg/cache"
)

func TestSetGetRoundtrip(t *testing.T) {
	cache.UseMemory()

	type payload struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	if err := cache.Set("horse:1", payload{Name: "Thunder", Price: 3500}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if !cache.Get("horse:1", &got) {
		t.Fatal("expected cache hit")
	}
	if got.Name != "Thunder" || got.Price != 3500 {
		t.Errorf("unexpected value: %+v", got)
	}
}

func TestHasAndDel(t *testing.T) {
	cache.UseMemory()

	if cache.Has("missing") {
		t.Error("expected miss for unknown key")
	}

	if err := cache.Set("revoked:abc", true, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !cache.Has("revoked:abc") {
		t.Error("expected hit after set")
	}

	if err := cache.Del("revoked:abc"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if cache.Has("revoked:abc") {
		t.Error("expected miss after delete")
	}
}

func TestTTLExpiry(t *testing.T) {
	cache.UseMemory()

	if err := cache.Set("short", "lived", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !cache.Has("short") {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if cache.Has("short") {
		t.Error("expected miss after expiry")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	cache.UseMemory()

	if err := cache.Set("forever", 1, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if !cache.Has("forever") {
		t.Error("expected zero-TTL entry to persist")
	}
}
