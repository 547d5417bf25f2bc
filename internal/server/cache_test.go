package server

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fetchCounter struct {
	calls int
	dump  string
	err   error
}

func (f *fetchCounter) fetch(context.Context) (string, error) {
	f.calls++
	return f.dump, f.err
}

func TestTreeCache_TTL(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewTreeCache(500 * time.Millisecond)
	c.now = func() time.Time { return now }
	f := &fetchCounter{dump: "<hierarchy/>"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Read(ctx, "Main", f.fetch); err != nil {
			t.Fatal(err)
		}
	}
	if f.calls != 1 {
		t.Errorf("calls within TTL: got %d, want 1", f.calls)
	}

	now = now.Add(500 * time.Millisecond)
	c.Read(ctx, "Main", f.fetch)
	if f.calls != 2 {
		t.Errorf("calls after TTL: got %d, want 2", f.calls)
	}

	c.Read(ctx, "Other", f.fetch)
	if f.calls != 3 {
		t.Errorf("calls for a new activity: got %d, want 3", f.calls)
	}
}

func TestTreeCache_Disabled(t *testing.T) {
	c := NewTreeCache(0)
	f := &fetchCounter{dump: "<hierarchy/>"}
	c.Read(context.Background(), "Main", f.fetch)
	c.Read(context.Background(), "Main", f.fetch)
	if f.calls != 2 {
		t.Errorf("got %d calls, want 2", f.calls)
	}
}

func TestTreeCache_SkipsEmptyAndErrors(t *testing.T) {
	c := NewTreeCache(time.Hour)
	ctx := context.Background()

	empty := &fetchCounter{}
	c.Read(ctx, "Main", empty.fetch)
	c.Read(ctx, "Main", empty.fetch)
	if empty.calls != 2 {
		t.Errorf("empty dumps should not be cached: got %d calls", empty.calls)
	}

	failing := &fetchCounter{dump: "<x/>", err: errors.New("boom")}
	if _, err := c.Read(ctx, "Main", failing.fetch); err == nil {
		t.Fatal("expected error")
	}
	c.Read(ctx, "Main", failing.fetch)
	if failing.calls != 2 {
		t.Errorf("errors should not be cached: got %d calls", failing.calls)
	}
}

func TestTreeCache_Invalidate(t *testing.T) {
	c := NewTreeCache(time.Hour)
	ctx := context.Background()
	f := &fetchCounter{dump: "<hierarchy/>"}

	c.Read(ctx, "A", f.fetch)
	c.Read(ctx, "B", f.fetch)
	c.InvalidateActivity("A")
	c.Read(ctx, "A", f.fetch)
	c.Read(ctx, "B", f.fetch)
	if f.calls != 3 {
		t.Errorf("after InvalidateActivity: got %d calls, want 3", f.calls)
	}

	c.InvalidateAll()
	c.Read(ctx, "A", f.fetch)
	c.Read(ctx, "B", f.fetch)
	if f.calls != 5 {
		t.Errorf("after InvalidateAll: got %d calls, want 5", f.calls)
	}
}
