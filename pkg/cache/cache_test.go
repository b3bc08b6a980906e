package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit=%v err=%v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get(k) = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete still hits")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still hits")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("NullCache stored data: hit=%v err=%v", hit, err)
	}
}

func TestDefaultKeyer_Stability(t *testing.T) {
	k := NewDefaultKeyer()
	opts := CompositionKeyOpts{Width: 1200, Height: 900, Padding: 50, ClusterCount: 4}

	a := k.CompositionKey(42, opts)
	b := k.CompositionKey(42, opts)
	if a != b {
		t.Errorf("same inputs produced different keys: %s != %s", a, b)
	}
	if c := k.CompositionKey(43, opts); c == a {
		t.Error("different seeds collided")
	}
}

func TestArtifactKey_FormatSensitive(t *testing.T) {
	k := NewDefaultKeyer()
	svg := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	png := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png"})
	if svg == png {
		t.Error("svg and png artifact keys collided")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "user:1:")
	opts := CompositionKeyOpts{Width: 800, Height: 600}

	got := scoped.CompositionKey(7, opts)
	want := "user:1:" + base.CompositionKey(7, opts)
	if got != want {
		t.Errorf("scoped key = %s, want %s", got, want)
	}
}

func TestHash_Deterministic(t *testing.T) {
	if Hash([]byte("abc")) != Hash([]byte("abc")) {
		t.Error("Hash not deterministic")
	}
	if Hash([]byte("abc")) == Hash([]byte("abd")) {
		t.Error("distinct inputs collided")
	}
}
