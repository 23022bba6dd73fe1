package cache

import (
	"testing"
	"time"

	"github.com/use-agent/smsgrab/models"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("https://receive-sms-online.info/sms?phone=1&key=abc")
	b := Key("https://receive-sms-online.info/sms?phone=1&key=abc")
	c := Key("https://receive-sms-online.info/sms?phone=2&key=abc")

	if a != b {
		t.Errorf("same URL produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different URLs produced the same key: %s", a)
	}
}

func TestGetSet(t *testing.T) {
	c := New(10)
	resp := &models.ScrapeResponse{Success: true}
	key := Key("https://receive-sms-online.info/sms?phone=1&key=abc")

	if _, ok := c.Get(key, 60_000); ok {
		t.Fatal("got a hit from an empty cache")
	}

	c.Set(key, resp)

	got, ok := c.Get(key, 60_000)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got != resp {
		t.Error("cache returned a different response than was stored")
	}
}

func TestGet_MaxAgeZeroSkipsLookup(t *testing.T) {
	c := New(10)
	key := Key("url")
	c.Set(key, &models.ScrapeResponse{Success: true})

	if _, ok := c.Get(key, 0); ok {
		t.Error("maxAge 0 must bypass the cache")
	}
	if _, ok := c.Get(key, -1); ok {
		t.Error("negative maxAge must bypass the cache")
	}
}

func TestGet_Expiry(t *testing.T) {
	c := New(10)
	key := Key("url")
	c.Set(key, &models.ScrapeResponse{Success: true})

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(key, 10); ok {
		t.Error("entry older than maxAge must miss")
	}
	if _, ok := c.Get(key, 60_000); !ok {
		t.Error("entry younger than maxAge must hit")
	}
}

func TestSet_EvictsAtCapacity(t *testing.T) {
	c := New(2)
	c.Set("a", &models.ScrapeResponse{})
	c.Set("b", &models.ScrapeResponse{})
	c.Set("c", &models.ScrapeResponse{})

	c.mu.RLock()
	n := len(c.store)
	c.mu.RUnlock()
	if n != 2 {
		t.Errorf("cache holds %d entries after eviction, want 2", n)
	}
}
