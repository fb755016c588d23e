package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "chart:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "chart:abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "chart:missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for missing key, want miss")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("deleted key should be a miss")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("NullCache should never hit")
	}
}

func TestDefaultKeyer_ChartKey(t *testing.T) {
	k := NewDefaultKeyer()

	opts := ChartKeyOpts{
		HouseSystem: "equal",
		Ayanamsa:    "lahiri",
		DashaDepth:  3,
		JulianDay:   2448425.5693,
		Latitude:    10.80,
		Longitude:   76.97,
	}

	key1 := k.ChartKey(opts)
	key2 := k.ChartKey(opts)
	if key1 != key2 {
		t.Error("ChartKey should be deterministic for identical options")
	}

	opts.DashaDepth = 2
	if k.ChartKey(opts) == key1 {
		t.Error("ChartKey should differ when options differ")
	}
}

func TestDefaultKeyer_EphemerisKey(t *testing.T) {
	k := NewDefaultKeyer()

	key := k.EphemerisKey("Jupiter", 2451545.0)
	if key == k.EphemerisKey("Saturn", 2451545.0) {
		t.Error("EphemerisKey should differ per body")
	}
	if key == k.EphemerisKey("Jupiter", 2451546.0) {
		t.Error("EphemerisKey should differ per instant")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:42:")

	opts := ChartKeyOpts{HouseSystem: "equal", Ayanamsa: "lahiri"}
	got := scoped.ChartKey(opts)
	want := "tenant:42:" + inner.ChartKey(opts)
	if got != want {
		t.Errorf("ChartKey() = %q, want %q", got, want)
	}
}
