package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/devhearts/devmentor/internal/persistence"
	"github.com/devhearts/devmentor/internal/scheduler"
)

const defaultSessionMinutes = 60

// MentoringService schedules mentoring sessions.
type MentoringService struct {
	sessions persistence.SessionRepository
	events   EventRecorder
	logger   *slog.Logger
}

// NewMentoringService wires dependencies for the mentoring service.
func NewMentoringService(sessions persistence.SessionRepository, events EventRecorder, logger *slog.Logger) *MentoringService {
	return &MentoringService{sessions: sessions, events: defaultEvents(events), logger: defaultLogger(logger)}
}

func (s *MentoringService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MentoringService", operation, attrs...)
}

// ListByStudent returns a student's sessions ordered by start time.
func (s *MentoringService) ListByStudent(ctx context.Context, studentID string) ([]Session, error) {
	if s == nil || s.sessions == nil {
		return nil, fmt.Errorf("MentoringService is not configured")
	}
	return s.sessions.ListSessionsByStudent(ctx, studentID)
}

// ListByMentor returns a mentor's sessions ordered by start time.
func (s *MentoringService) ListByMentor(ctx context.Context, mentorID string) ([]Session, error) {
	if s == nil || s.sessions == nil {
		return nil, fmt.Errorf("MentoringService is not configured")
	}
	return s.sessions.ListSessionsByMentor(ctx, mentorID)
}

// Schedule books a session in the scheduled state. Overlaps with the
// participants' other scheduled sessions are logged as warnings; they never
// block the booking.
func (s *MentoringService) Schedule(ctx context.Context, input SessionInput) (created Session, err error) {
	if s == nil || s.sessions == nil {
		return Session{}, fmt.Errorf("MentoringService is not configured")
	}

	input.StudentID = strings.TrimSpace(input.StudentID)
	input.MentorID = strings.TrimSpace(input.MentorID)
	input.Title = strings.TrimSpace(input.Title)
	logger := s.loggerWith(ctx, "Schedule", "student_id", input.StudentID, "mentor_id", input.MentorID)
	defer func() {
		s.events.RecordEvent(EventSession, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "scheduling failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session scheduled", "session_id", created.ID, "scheduled_at", created.ScheduledAt)
	}()

	if err = validateStruct(input).orNil(); err != nil {
		return
	}
	duration := defaultSessionMinutes
	if input.Duration != nil {
		duration = *input.Duration
	}

	created, err = s.sessions.CreateSession(ctx, Session{
		StudentID:   input.StudentID,
		MentorID:    input.MentorID,
		Title:       input.Title,
		ScheduledAt: input.ScheduledAt.UTC(),
		Duration:    duration,
	})
	if err != nil {
		err = translateError(err)
		return
	}
	s.warnOnConflicts(ctx, logger, created)
	return
}

func (s *MentoringService) warnOnConflicts(ctx context.Context, logger *slog.Logger, created Session) {
	byStudent, err := s.sessions.ListSessionsByStudent(ctx, created.StudentID)
	if err != nil {
		logger.WarnContext(ctx, "conflict check skipped", "error", err)
		return
	}
	byMentor, err := s.sessions.ListSessionsByMentor(ctx, created.MentorID)
	if err != nil {
		logger.WarnContext(ctx, "conflict check skipped", "error", err)
		return
	}

	existing := make([]scheduler.Slot, 0, len(byStudent)+len(byMentor))
	seen := make(map[string]struct{}, len(byStudent)+len(byMentor))
	for _, group := range [][]Session{byStudent, byMentor} {
		for _, session := range group {
			if _, ok := seen[session.ID]; ok || session.Status != persistence.SessionScheduled {
				continue
			}
			seen[session.ID] = struct{}{}
			existing = append(existing, toSlot(session))
		}
	}

	conflicts := scheduler.DetectConflicts(existing, toSlot(created))
	if len(conflicts) == 0 {
		return
	}
	s.events.RecordEvent(EventDoubleBooked, "success")
	for _, conflict := range conflicts {
		logger.WarnContext(ctx, "session overlaps an existing booking",
			"session_id", created.ID,
			"conflict_session_id", conflict.WithSlotID,
			"conflict_type", string(conflict.Type),
			"participant", conflict.Participant,
		)
	}
}

func toSlot(session Session) scheduler.Slot {
	start := session.ScheduledAt
	return scheduler.Slot{
		ID:        session.ID,
		StudentID: session.StudentID,
		MentorID:  session.MentorID,
		Start:     start,
		End:       start.Add(time.Duration(session.Duration) * time.Minute),
	}
}

// UpdateStatus replaces a session's status with any valid status value.
func (s *MentoringService) UpdateStatus(ctx context.Context, id string, input StatusInput) (updated Session, err error) {
	if s == nil || s.sessions == nil {
		return Session{}, fmt.Errorf("MentoringService is not configured")
	}

	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	logger := s.loggerWith(ctx, "UpdateStatus", "session_id", id, "status", input.Status)
	defer func() {
		s.events.RecordEvent(EventSessionState, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "status update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session status updated")
	}()

	if err = validateStruct(input).orNil(); err != nil {
		return
	}

	updated, err = s.sessions.UpdateSessionStatus(ctx, id, persistence.SessionStatus(input.Status))
	err = translateError(err)
	return
}
