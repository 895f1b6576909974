package scheduler

import (
	"testing"
	"time"
)

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	slot := func(id, student, mentor string, startOffset, minutes int) Slot {
		start := base.Add(time.Duration(startOffset) * time.Minute)
		return Slot{ID: id, StudentID: student, MentorID: mentor, Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
	}

	existing := []Slot{
		slot("later", "s2", "m1", 30, 60),
		slot("same-student", "s1", "m9", 0, 45),
		slot("adjacent", "s1", "m1", 60, 30),
		slot("elsewhere", "s3", "m3", 0, 60),
	}

	t.Run("reports overlaps for both parties in start order", func(t *testing.T) {
		t.Parallel()
		got := DetectConflicts(existing, slot("", "s1", "m1", 0, 60))
		want := []Conflict{
			{WithSlotID: "same-student", Type: ConflictTypeStudent, Participant: "s1"},
			{WithSlotID: "later", Type: ConflictTypeMentor, Participant: "m1"},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d conflicts, got %+v", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("conflict %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})

	t.Run("ignores the candidate itself", func(t *testing.T) {
		t.Parallel()
		got := DetectConflicts([]Slot{slot("a", "s1", "m1", 0, 60)}, slot("a", "s1", "m1", 0, 60))
		if len(got) != 0 {
			t.Fatalf("expected no conflicts, got %+v", got)
		}
	})

	t.Run("reports both parties for a full double booking", func(t *testing.T) {
		t.Parallel()
		got := DetectConflicts([]Slot{slot("a", "s1", "m1", 15, 15)}, slot("", "s1", "m1", 0, 60))
		if len(got) != 2 || got[0].Type != ConflictTypeStudent || got[1].Type != ConflictTypeMentor {
			t.Fatalf("unexpected conflicts %+v", got)
		}
	})

	t.Run("empty candidate window never conflicts", func(t *testing.T) {
		t.Parallel()
		if got := DetectConflicts(existing, slot("", "s1", "m1", 0, 0)); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})
}
