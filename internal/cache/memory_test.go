package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("test", time.Minute)

	if _, err := c.Get(ctx, "missing"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	b, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "v" {
		t.Fatalf("got %q", b)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Delete de una key ausente no es error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	if err := c.Set(ctx, "k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemory_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	a := NewMemory("a", time.Minute)
	b := NewMemory("b", time.Minute)

	if err := a.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("prefixes must not collide, got %v", err)
	}
}

func TestMemory_PingAndClose(t *testing.T) {
	c := NewMemory("test", time.Minute)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNew_DriverSelection(t *testing.T) {
	c, err := New(Config{Driver: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*memoryClient); !ok {
		t.Fatalf("expected memory client, got %T", c)
	}

	// Driver desconocido cae a memoria.
	c, err = New(Config{Driver: "whatever"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*memoryClient); !ok {
		t.Fatalf("expected memory fallback, got %T", c)
	}
}
