package scheduler

import (
	"sort"
	"time"
)

// Slot is a booked block of time between a student and a mentor.
type Slot struct {
	ID        string
	StudentID string
	MentorID  string
	Start     time.Time
	End       time.Time
}

// ConflictType describes which party is double-booked.
type ConflictType string

const (
	// ConflictTypeStudent indicates the student already has an overlapping session.
	ConflictTypeStudent ConflictType = "student"
	// ConflictTypeMentor indicates the mentor already has an overlapping session.
	ConflictTypeMentor ConflictType = "mentor"
)

// Conflict details an overlapping slot that callers can surface as a warning.
type Conflict struct {
	WithSlotID  string
	Type        ConflictType
	Participant string
}

// DetectConflicts reports every existing slot that overlaps candidate and
// shares its student or mentor. Slots touching end-to-start do not overlap.
// Results are ordered by the conflicting slot's start time, then id.
func DetectConflicts(existing []Slot, candidate Slot) []Conflict {
	if !candidate.End.After(candidate.Start) {
		return nil
	}

	overlapping := make([]Slot, 0, len(existing))
	for _, slot := range existing {
		if slot.ID != "" && slot.ID == candidate.ID {
			continue
		}
		if slot.Start.Before(candidate.End) && candidate.Start.Before(slot.End) {
			overlapping = append(overlapping, slot)
		}
	}
	sort.SliceStable(overlapping, func(i, j int) bool {
		if overlapping[i].Start.Equal(overlapping[j].Start) {
			return overlapping[i].ID < overlapping[j].ID
		}
		return overlapping[i].Start.Before(overlapping[j].Start)
	})

	var conflicts []Conflict
	for _, slot := range overlapping {
		if candidate.StudentID != "" && slot.StudentID == candidate.StudentID {
			conflicts = append(conflicts, Conflict{WithSlotID: slot.ID, Type: ConflictTypeStudent, Participant: slot.StudentID})
		}
		if candidate.MentorID != "" && slot.MentorID == candidate.MentorID {
			conflicts = append(conflicts, Conflict{WithSlotID: slot.ID, Type: ConflictTypeMentor, Participant: slot.MentorID})
		}
	}
	return conflicts
}
