package application

import (
	"context"
	"errors"
	"testing"

	"github.com/devhearts/devmentor/internal/persistence"
)

func validCourse(mentorID string) CourseInput {
	return CourseInput{
		Title:       "Go for Backend Engineers",
		Description: "Services, concurrency and testing",
		Category:    "Web Development",
		Level:       "Intermediate",
		Duration:    intPtr(8),
		Thumbnail:   "https://images.example.com/go.png",
		MentorID:    mentorID,
	}
}

func TestCourseService_CreateCourse(t *testing.T) {
	t.Parallel()

	svc := newServiceSet(t)
	ctx := context.Background()

	created, err := svc.courses.CreateCourse(ctx, validCourse("mentor-1"))
	if err != nil {
		t.Fatalf("CreateCourse returned error: %v", err)
	}
	if created.ID == "" || created.Students != 0 || created.Price != 0 {
		t.Fatalf("unexpected defaults %+v", created)
	}
	if created.Level != persistence.LevelIntermediate {
		t.Fatalf("expected normalized level, got %q", created.Level)
	}

	fetched, err := svc.courses.GetCourse(ctx, created.ID)
	if err != nil || fetched.Title != created.Title {
		t.Fatalf("GetCourse = %+v, %v", fetched, err)
	}

	selfPaced := validCourse("mentor-1")
	selfPaced.Duration = intPtr(0)
	if course, err := svc.courses.CreateCourse(ctx, selfPaced); err != nil || course.Duration != 0 {
		t.Fatalf("expected zero duration to be accepted, got %+v, %v", course, err)
	}

	tests := []struct {
		name  string
		edit  func(*CourseInput)
		field string
	}{
		{"missing title", func(in *CourseInput) { in.Title = "" }, "title"},
		{"unknown level", func(in *CourseInput) { in.Level = "expert" }, "level"},
		{"missing duration", func(in *CourseInput) { in.Duration = nil }, "duration"},
		{"negative duration", func(in *CourseInput) { in.Duration = intPtr(-1) }, "duration"},
		{"negative price", func(in *CourseInput) { in.Price = -1 }, "price"},
		{"missing mentor", func(in *CourseInput) { in.MentorID = "" }, "mentorId"},
	}
	for _, tc := range tests {
		input := validCourse("mentor-1")
		tc.edit(&input)
		_, err := svc.courses.CreateCourse(ctx, input)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		requireValidationField(t, err, tc.field)
	}
	if svc.events.count(EventCourse, "validation") != len(tests) {
		t.Fatalf("expected validation events for each rejected course")
	}

	if _, err := svc.courses.GetCourse(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCourseService_ListCourses(t *testing.T) {
	t.Parallel()

	svc := newServiceSet(t)
	ctx := context.Background()

	webBeginner := validCourse("mentor-1")
	webBeginner.Level = "beginner"
	dataAdvanced := validCourse("mentor-2")
	dataAdvanced.Category = "Data Science"
	dataAdvanced.Level = "advanced"
	for _, in := range []CourseInput{webBeginner, dataAdvanced, validCourse("mentor-1")} {
		if _, err := svc.courses.CreateCourse(ctx, in); err != nil {
			t.Fatalf("CreateCourse returned error: %v", err)
		}
	}

	tests := []struct {
		name  string
		query CourseQuery
		want  int
	}{
		{"no filter", CourseQuery{}, 3},
		{"all keyword", CourseQuery{Category: "All", Level: "all"}, 3},
		{"category folds case", CourseQuery{Category: "web development"}, 2},
		{"level only", CourseQuery{Level: "ADVANCED"}, 1},
		{"both", CourseQuery{Category: "Web Development", Level: "intermediate"}, 1},
		{"no match", CourseQuery{Category: "Design"}, 0},
	}
	for _, tc := range tests {
		got, err := svc.courses.ListCourses(ctx, tc.query)
		if err != nil {
			t.Fatalf("%s: ListCourses returned error: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d courses, got %d", tc.name, tc.want, len(got))
		}
		if got == nil {
			t.Fatalf("%s: expected non-nil slice", tc.name)
		}
	}

	mine, err := svc.courses.ListCoursesByMentor(ctx, "mentor-1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListCoursesByMentor = %d, %v", len(mine), err)
	}
}

func TestCourseService_UpdateCourse(t *testing.T) {
	t.Parallel()

	svc := newServiceSet(t)
	ctx := context.Background()
	created, err := svc.courses.CreateCourse(ctx, validCourse("mentor-1"))
	if err != nil {
		t.Fatalf("CreateCourse returned error: %v", err)
	}

	updated, err := svc.courses.UpdateCourse(ctx, created.ID, CoursePatchInput{
		Title: strPtr("Advanced Go"),
		Level: strPtr("ADVANCED"),
		Price: intPtr(4900),
	})
	if err != nil {
		t.Fatalf("UpdateCourse returned error: %v", err)
	}
	if updated.Title != "Advanced Go" || updated.Level != persistence.LevelAdvanced || updated.Price != 4900 {
		t.Fatalf("unexpected course %+v", updated)
	}
	if updated.Description != created.Description {
		t.Fatalf("expected untouched fields to survive")
	}

	if _, err := svc.courses.UpdateCourse(ctx, created.ID, CoursePatchInput{Duration: intPtr(-3)}); err == nil {
		t.Fatalf("expected validation error")
	} else {
		requireValidationField(t, err, "duration")
	}
	if _, err := svc.courses.UpdateCourse(ctx, "missing", CoursePatchInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
