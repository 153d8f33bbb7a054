package cache

import (
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	a := Key("wikipedia|5|eiffel tower height")
	b := Key("wikipedia|5|eiffel tower height")
	c := Key("wikipedia|5|eiffel tower")

	if a != b {
		t.Error("Expected identical keys for identical input")
	}
	if a == c {
		t.Error("Expected different keys for different input")
	}
	if len(a) <= len("veracity:v1:") {
		t.Errorf("Expected prefixed digest, got %q", a)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with value v, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(Key("q"), []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	layered := &LayeredCache{
		memory: NewMemoryCache(time.Minute, time.Minute),
		disk:   disk,
	}

	val, found := layered.Get(Key("q"))
	if !found || string(val) != "payload" {
		t.Fatalf("Expected disk hit, got %q found=%v", val, found)
	}

	// Now present in the memory layer too
	if _, found := layered.memory.Get(Key("q")); !found {
		t.Error("Expected value promoted to memory layer")
	}
}

func TestDiskCache_ExpiredEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to be a miss")
	}
}
