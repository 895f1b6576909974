package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("course")
	if got := gen.Next(); got != "course-1" {
		t.Fatalf("expected course-1, got %q", got)
	}
	if got := gen.NextFunc()(); got != "course-2" {
		t.Fatalf("expected course-2, got %q", got)
	}
	if gen.Issued() != 2 {
		t.Fatalf("expected 2 issued ids, got %d", gen.Issued())
	}
}

func TestIDGeneratorDefaultPrefix(t *testing.T) {
	if got := NewIDGenerator("").Next(); got != "id-1" {
		t.Fatalf("expected id-1, got %q", got)
	}
}

func TestNilIDGeneratorReturnsEmptyIDs(t *testing.T) {
	var gen *IDGenerator
	if got := gen.NextFunc()(); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
