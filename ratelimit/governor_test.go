package ratelimit

import (
	"testing"
	"time"
)

func TestObserve_BelowThresholdBlocks(t *testing.T) {
	var slept time.Duration
	g := New(WithSleep(func(d time.Duration) { slept += d }))

	g.Observe(5, 2)

	if slept < 2*time.Second {
		t.Errorf("Observe(5, 2) slept %v, want at least 2s", slept)
	}
}

func TestObserve_HealthyQuotaDoesNotBlock(t *testing.T) {
	g := New(WithSleep(func(d time.Duration) {
		t.Errorf("Observe(50, 2) slept %v, want no sleep", d)
	}))

	g.Observe(50, 2)
}

func TestObserve_ZeroRetryAfter(t *testing.T) {
	g := New(WithSleep(func(d time.Duration) {
		t.Errorf("Observe(5, 0) slept %v, want no sleep", d)
	}))

	g.Observe(5, 0)
}

func TestObserve_MissingQuotaHeader(t *testing.T) {
	g := New(WithSleep(func(d time.Duration) {
		t.Errorf("Observe(-1, 2) slept %v, want no sleep", d)
	}))

	g.Observe(-1, 2)

	if g.LastRemaining() != -1 {
		t.Errorf("LastRemaining() = %d, want -1", g.LastRemaining())
	}
}

func TestObserve_CustomThreshold(t *testing.T) {
	var slept time.Duration
	g := New(WithThreshold(100), WithSleep(func(d time.Duration) { slept += d }))

	g.Observe(50, 1)

	if slept != time.Second {
		t.Errorf("Observe(50, 1) with threshold 100 slept %v, want 1s", slept)
	}
}

func TestLastRemaining_Tracks(t *testing.T) {
	g := New(WithSleep(func(time.Duration) {}))

	g.Observe(42, 0)
	if g.LastRemaining() != 42 {
		t.Errorf("LastRemaining() = %d, want 42", g.LastRemaining())
	}

	g.Observe(7, 0)
	if g.LastRemaining() != 7 {
		t.Errorf("LastRemaining() = %d, want 7", g.LastRemaining())
	}
}
