package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devhearts/devmentor/internal/persistence"
)

// CourseService manages the course catalog.
type CourseService struct {
	courses persistence.CourseRepository
	events  EventRecorder
	logger  *slog.Logger
}

// NewCourseService wires dependencies for the course service.
func NewCourseService(courses persistence.CourseRepository, events EventRecorder, logger *slog.Logger) *CourseService {
	return &CourseService{courses: courses, events: defaultEvents(events), logger: defaultLogger(logger)}
}

func (s *CourseService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CourseService", operation, attrs...)
}

// ListCourses returns courses in creation order. Category and level match
// case-insensitively; an empty value or "all" disables that filter.
func (s *CourseService) ListCourses(ctx context.Context, query CourseQuery) ([]Course, error) {
	if s == nil || s.courses == nil {
		return nil, fmt.Errorf("CourseService is not configured")
	}
	courses, err := s.courses.ListCourses(ctx, persistence.CourseFilter{
		Category: filterValue(query.Category),
		Level:    filterValue(query.Level),
	})
	if err != nil {
		s.loggerWith(ctx, "ListCourses").ErrorContext(ctx, "list courses failed", "error", err)
		return nil, err
	}
	return courses, nil
}

// ListCoursesByMentor returns the courses owned by mentorID.
func (s *CourseService) ListCoursesByMentor(ctx context.Context, mentorID string) ([]Course, error) {
	if s == nil || s.courses == nil {
		return nil, fmt.Errorf("CourseService is not configured")
	}
	return s.courses.ListCourses(ctx, persistence.CourseFilter{MentorID: mentorID})
}

// GetCourse returns the course with id.
func (s *CourseService) GetCourse(ctx context.Context, id string) (Course, error) {
	if s == nil || s.courses == nil {
		return Course{}, fmt.Errorf("CourseService is not configured")
	}
	course, err := s.courses.GetCourse(ctx, id)
	if err != nil {
		return Course{}, translateError(err)
	}
	return course, nil
}

// CreateCourse validates input and publishes a course with no students.
func (s *CourseService) CreateCourse(ctx context.Context, input CourseInput) (created Course, err error) {
	if s == nil || s.courses == nil {
		return Course{}, fmt.Errorf("CourseService is not configured")
	}

	input = normalizeCourseInput(input)
	logger := s.loggerWith(ctx, "CreateCourse", "mentor_id", input.MentorID)
	defer func() {
		s.events.RecordEvent(EventCourse, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "course creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "course created", "course_id", created.ID)
	}()

	if err = validateStruct(input).orNil(); err != nil {
		return
	}

	created, err = s.courses.CreateCourse(ctx, Course{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Level:       persistence.Level(input.Level),
		Duration:    *input.Duration,
		Thumbnail:   input.Thumbnail,
		MentorID:    input.MentorID,
		Price:       input.Price,
	})
	err = translateError(err)
	return
}

// UpdateCourse applies a partial update. The student counter cannot be set.
func (s *CourseService) UpdateCourse(ctx context.Context, id string, input CoursePatchInput) (updated Course, err error) {
	if s == nil || s.courses == nil {
		return Course{}, fmt.Errorf("CourseService is not configured")
	}

	logger := s.loggerWith(ctx, "UpdateCourse", "course_id", id)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "course update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "course updated")
	}()

	input.Title = trimPtr(input.Title)
	input.Description = trimPtr(input.Description)
	input.Category = trimPtr(input.Category)
	if input.Level != nil {
		level := strings.ToLower(strings.TrimSpace(*input.Level))
		input.Level = &level
	}
	if err = validateStruct(input).orNil(); err != nil {
		return
	}

	patch := persistence.CoursePatch{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Duration:    input.Duration,
		Thumbnail:   input.Thumbnail,
		Price:       input.Price,
	}
	if input.Level != nil {
		level := persistence.Level(*input.Level)
		patch.Level = &level
	}

	updated, err = s.courses.UpdateCourse(ctx, id, patch)
	err = translateError(err)
	return
}

func normalizeCourseInput(input CourseInput) CourseInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	input.Level = strings.ToLower(strings.TrimSpace(input.Level))
	input.Thumbnail = strings.TrimSpace(input.Thumbnail)
	input.MentorID = strings.TrimSpace(input.MentorID)
	return input
}

func filterValue(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "all") {
		return ""
	}
	return value
}
