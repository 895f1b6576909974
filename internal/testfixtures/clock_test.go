package testfixtures

import (
	"testing"
	"time"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Peek())
	}
}

func TestClockAdvanceAndSet(t *testing.T) {
	start := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	if updated := clock.Advance(90 * time.Minute); !updated.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("advance returned %v", updated)
	}

	clock.Set(start.Add(2 * time.Hour))
	if got := clock.Peek(); !got.Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("expected %v, got %v", start.Add(2*time.Hour), got)
	}
}

func TestTickingClock(t *testing.T) {
	start := ReferenceTime()
	clock := NewTickingClock(start, time.Second)
	now := clock.NowFunc()

	first := now()
	second := now()
	if !first.Equal(start) {
		t.Fatalf("expected first read %v, got %v", start, first)
	}
	if !second.Equal(start.Add(time.Second)) {
		t.Fatalf("expected second read one step later, got %v", second)
	}
	if !clock.Peek().Equal(start.Add(2 * time.Second)) {
		t.Fatalf("expected peek two steps later, got %v", clock.Peek())
	}
}

func TestNilClockNowFuncFallsBackToWallClock(t *testing.T) {
	var clock *Clock
	before := time.Now()
	if got := clock.NowFunc()(); got.Before(before) {
		t.Fatalf("expected wall clock time, got %v", got)
	}
}
