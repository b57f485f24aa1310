package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/wordcloud/internal/model"
)

func TestKey(t *testing.T) {
	a := Key("cat cat dog")
	b := Key("cat cat dog")
	c := Key("cat dog")

	if a != b {
		t.Error("expected identical text to produce identical keys")
	}
	if a == c {
		t.Error("expected different text to produce different keys")
	}
	if !strings.HasPrefix(a, "wordcloud:v1:") {
		t.Errorf("unexpected key prefix: %s", a)
	}
}

func TestNew_Disabled(t *testing.T) {
	if c := New(model.CacheConfig{Enabled: false}); c != nil {
		t.Errorf("expected nil cache when disabled, got %T", c)
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	freq := model.Frequencies{"cat": 3}

	if err := c.Set("k", freq, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	freq["cat"] = 99

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got["cat"] != 3 {
		t.Errorf("cache stored a shared map: got %d", got["cat"])
	}

	got["dog"] = 1
	again, _ := c.Get("k")
	if _, leaked := again["dog"]; leaked {
		t.Error("mutating a returned mapping changed the cache")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", model.Frequencies{"a": 1}, 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)
	freq := model.Frequencies{"café": 2, "x_1": 1}

	if err := c.Set(Key("text"), freq, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(Key("text"))
	if !ok {
		t.Fatal("expected disk hit")
	}
	if !reflect.DeepEqual(got, freq) {
		t.Errorf("got %v, want %v", got, freq)
	}

	if err := c.Delete(Key("text")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get(Key("text")); ok {
		t.Error("expected miss after delete")
	}
	if err := c.Delete(Key("text")); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestDiskCache_ExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", model.Frequencies{"a": 1}, -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expected expired entry file to be removed, stat err = %v", err)
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("expected corrupt entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	freq := model.Frequencies{"cat": 3, "dog": 1}

	// Populate disk through one cache, read through a fresh one
	first := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := first.Set("k", freq, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, ok := second.Get("k")
	if !ok {
		t.Fatal("expected hit from disk layer")
	}
	if !reflect.DeepEqual(got, freq) {
		t.Errorf("got %v, want %v", got, freq)
	}

	mem := second.memory.(*MemoryCache)
	if mem.Len() != 1 {
		t.Errorf("expected disk hit promoted to memory, memory has %d entries", mem.Len())
	}

	if err := second.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := second.Get("k"); ok {
		t.Error("expected miss after clear")
	}
}
