package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devhearts/devmentor/internal/persistence"
)

// EnrollmentService enrolls students in courses and tracks their progress.
type EnrollmentService struct {
	enrollments persistence.EnrollmentRepository
	events      EventRecorder
	logger      *slog.Logger
}

// NewEnrollmentService wires dependencies for the enrollment service.
func NewEnrollmentService(enrollments persistence.EnrollmentRepository, events EventRecorder, logger *slog.Logger) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, events: defaultEvents(events), logger: defaultLogger(logger)}
}

func (s *EnrollmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EnrollmentService", operation, attrs...)
}

// Enroll registers a student in a course and bumps the course's student
// count. Enrolling twice yields ErrAlreadyExists; an unknown course is a
// validation failure on courseId.
func (s *EnrollmentService) Enroll(ctx context.Context, input EnrollmentInput) (created Enrollment, err error) {
	if s == nil || s.enrollments == nil {
		return Enrollment{}, fmt.Errorf("EnrollmentService is not configured")
	}

	input.StudentID = strings.TrimSpace(input.StudentID)
	input.CourseID = strings.TrimSpace(input.CourseID)
	logger := s.loggerWith(ctx, "Enroll", "student_id", input.StudentID, "course_id", input.CourseID)
	defer func() {
		s.events.RecordEvent(EventEnrollment, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "enrollment failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "student enrolled", "enrollment_id", created.ID)
	}()

	if err = validateStruct(input).orNil(); err != nil {
		return
	}

	created, err = s.enrollments.CreateEnrollment(ctx, Enrollment{StudentID: input.StudentID, CourseID: input.CourseID})
	if errors.Is(err, persistence.ErrNotFound) {
		vErr := &ValidationError{}
		vErr.add("courseId", "course does not exist")
		err = vErr
		return
	}
	err = translateError(err)
	return
}

// ListByStudent returns a student's enrollments in creation order.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string) ([]Enrollment, error) {
	if s == nil || s.enrollments == nil {
		return nil, fmt.Errorf("EnrollmentService is not configured")
	}
	return s.enrollments.ListEnrollmentsByStudent(ctx, studentID)
}

// UpdateProgress sets an enrollment's completion percentage (0 to 100).
func (s *EnrollmentService) UpdateProgress(ctx context.Context, id string, input ProgressInput) (updated Enrollment, err error) {
	if s == nil || s.enrollments == nil {
		return Enrollment{}, fmt.Errorf("EnrollmentService is not configured")
	}

	logger := s.loggerWith(ctx, "UpdateProgress", "enrollment_id", id)
	defer func() {
		s.events.RecordEvent(EventProgress, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "progress update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "progress updated", "progress", updated.Progress)
	}()

	if err = validateStruct(input).orNil(); err != nil {
		return
	}

	updated, err = s.enrollments.UpdateEnrollmentProgress(ctx, id, *input.Progress)
	err = translateError(err)
	return
}
