// Package memory implements the persistence repositories on top of ordered
// in-process collections. State lives for the lifetime of the Store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devhearts/devmentor/internal/persistence"
)

const defaultSessionMinutes = 60

// Store keeps users, courses, enrollments, messages, and sessions in memory.
// A single RWMutex serialises writes, so uniqueness checks and derived
// counters are updated atomically with the insert they guard.
type Store struct {
	mu          sync.RWMutex
	newID       func() string
	now         func() time.Time
	users       *table[persistence.User]
	courses     *table[persistence.Course]
	enrollments *table[persistence.Enrollment]
	messages    *table[persistence.Message]
	sessions    *table[persistence.Session]
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the identifier source. The default issues random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		newID:       uuid.NewString,
		now:         time.Now,
		users:       newTable[persistence.User](),
		courses:     newTable[persistence.Course](),
		enrollments: newTable[persistence.Enrollment](),
		messages:    newTable[persistence.Message](),
		sessions:    newTable[persistence.Session](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether the store is usable. It never fails for the in-memory implementation.
func (s *Store) Ping(context.Context) error {
	if s == nil {
		return fmt.Errorf("memory: store is nil")
	}
	return nil
}

// nextIDLocked returns an identifier unused by the given table.
func nextIDLocked[T any](s *Store, t *table[T]) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		id := s.newID()
		if id != "" && !t.has(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("memory: could not allocate a unique id")
}

// --- UserRepository implementation ---

// CreateUser stores a new user. Email and username must be unique, ignoring case.
func (s *Store) CreateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users.find(func(u persistence.User) bool {
		return strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username)
	}); taken {
		return persistence.User{}, fmt.Errorf("memory: user %q: %w", user.Email, persistence.ErrDuplicate)
	}

	id, err := nextIDLocked(s, s.users)
	if err != nil {
		return persistence.User{}, err
	}

	user.ID = id
	user.CreatedAt = s.now()
	if user.Role == "" {
		user.Role = persistence.RoleStudent
	}

	s.users.insert(id, cloneUser(user))
	return cloneUser(user), nil
}

// UpdateUser merges the non-nil patch fields into an existing user.
func (s *Store) UpdateUser(ctx context.Context, id string, patch persistence.UserPatch) (persistence.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users.get(id)
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Avatar != nil {
		user.Avatar = cloneString(patch.Avatar)
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		user.Skills = cloneStrings(patch.Skills)
	}
	if patch.Experience != nil {
		user.Experience = *patch.Experience
	}
	if patch.Company != nil {
		user.Company = *patch.Company
	}

	s.users.replace(id, cloneUser(user))
	return cloneUser(user), nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.get(id)
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return cloneUser(user), nil
}

// GetUserByUsername retrieves a user by username, ignoring case.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.find(func(u persistence.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return cloneUser(user), nil
}

// GetUserByEmail retrieves a user by email address, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.find(func(u persistence.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return cloneUser(user), nil
}

// ListUsers returns users in registration order.
func (s *Store) ListUsers(ctx context.Context, filter persistence.UserFilter) ([]persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pred func(persistence.User) bool
	if filter.Role != "" {
		pred = func(u persistence.User) bool { return u.Role == filter.Role }
	}

	rows := s.users.filter(pred)
	for i := range rows {
		rows[i] = cloneUser(rows[i])
	}
	return rows, nil
}

// --- CourseRepository implementation ---

// CreateCourse stores a new course with an empty enrollment counter.
func (s *Store) CreateCourse(ctx context.Context, course persistence.Course) (persistence.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := nextIDLocked(s, s.courses)
	if err != nil {
		return persistence.Course{}, err
	}

	course.ID = id
	course.Students = 0
	course.CreatedAt = s.now()

	s.courses.insert(id, course)
	return course, nil
}

// UpdateCourse merges the non-nil patch fields into an existing course.
func (s *Store) UpdateCourse(ctx context.Context, id string, patch persistence.CoursePatch) (persistence.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses.get(id)
	if !ok {
		return persistence.Course{}, persistence.ErrNotFound
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Category != nil {
		course.Category = *patch.Category
	}
	if patch.Level != nil {
		course.Level = *patch.Level
	}
	if patch.Duration != nil {
		course.Duration = *patch.Duration
	}
	if patch.Thumbnail != nil {
		course.Thumbnail = *patch.Thumbnail
	}
	if patch.Price != nil {
		course.Price = *patch.Price
	}

	s.courses.replace(id, course)
	return course, nil
}

// GetCourse retrieves a course by ID.
func (s *Store) GetCourse(ctx context.Context, id string) (persistence.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses.get(id)
	if !ok {
		return persistence.Course{}, persistence.ErrNotFound
	}
	return course, nil
}

// ListCourses returns courses in creation order narrowed by filter.
func (s *Store) ListCourses(ctx context.Context, filter persistence.CourseFilter) ([]persistence.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.courses.filter(func(c persistence.Course) bool {
		if filter.Category != "" && !strings.EqualFold(c.Category, filter.Category) {
			return false
		}
		if filter.Level != "" && !strings.EqualFold(string(c.Level), filter.Level) {
			return false
		}
		if filter.MentorID != "" && c.MentorID != filter.MentorID {
			return false
		}
		return true
	}), nil
}

// --- EnrollmentRepository implementation ---

// CreateEnrollment stores an enrollment and bumps the course's student counter
// in the same critical section. Nothing is written when the course is unknown
// or the student is already enrolled.
func (s *Store) CreateEnrollment(ctx context.Context, enrollment persistence.Enrollment) (persistence.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses.get(enrollment.CourseID)
	if !ok {
		return persistence.Enrollment{}, fmt.Errorf("memory: course %q: %w", enrollment.CourseID, persistence.ErrNotFound)
	}

	if _, exists := s.findEnrollmentLocked(enrollment.StudentID, enrollment.CourseID); exists {
		return persistence.Enrollment{}, fmt.Errorf("memory: enrollment %s/%s: %w", enrollment.StudentID, enrollment.CourseID, persistence.ErrDuplicate)
	}

	id, err := nextIDLocked(s, s.enrollments)
	if err != nil {
		return persistence.Enrollment{}, err
	}

	enrollment.ID = id
	enrollment.Progress = 0
	enrollment.EnrolledAt = s.now()

	s.enrollments.insert(id, enrollment)
	course.Students++
	s.courses.replace(course.ID, course)

	return enrollment, nil
}

// GetEnrollment retrieves the enrollment for a student and course pair.
func (s *Store) GetEnrollment(ctx context.Context, studentID, courseID string) (persistence.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enrollment, ok := s.findEnrollmentLocked(studentID, courseID)
	if !ok {
		return persistence.Enrollment{}, persistence.ErrNotFound
	}
	return enrollment, nil
}

func (s *Store) findEnrollmentLocked(studentID, courseID string) (persistence.Enrollment, bool) {
	return s.enrollments.find(func(e persistence.Enrollment) bool {
		return e.StudentID == studentID && e.CourseID == courseID
	})
}

// ListEnrollmentsByStudent returns a student's enrollments in enrollment order.
func (s *Store) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]persistence.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.enrollments.filter(func(e persistence.Enrollment) bool {
		return e.StudentID == studentID
	}), nil
}

// UpdateEnrollmentProgress replaces the progress percentage of an enrollment.
func (s *Store) UpdateEnrollmentProgress(ctx context.Context, id string, progress int) (persistence.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollment, ok := s.enrollments.get(id)
	if !ok {
		return persistence.Enrollment{}, persistence.ErrNotFound
	}
	enrollment.Progress = progress
	s.enrollments.replace(id, enrollment)
	return enrollment, nil
}

// --- MessageRepository implementation ---

// CreateMessage stores a new unread message.
func (s *Store) CreateMessage(ctx context.Context, message persistence.Message) (persistence.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := nextIDLocked(s, s.messages)
	if err != nil {
		return persistence.Message{}, err
	}

	message.ID = id
	message.Read = false
	message.CreatedAt = s.now()

	s.messages.insert(id, message)
	return message, nil
}

// ListConversation returns the messages exchanged between two users in either
// direction, oldest first. Messages created at the same instant keep their
// insertion order.
func (s *Store) ListConversation(ctx context.Context, userA, userB string) ([]persistence.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.messages.filter(func(m persistence.Message) bool {
		return (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA)
	})

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

// MarkMessageAsRead flags a message as read. Marking twice is harmless.
func (s *Store) MarkMessageAsRead(ctx context.Context, id string) (persistence.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.messages.get(id)
	if !ok {
		return persistence.Message{}, persistence.ErrNotFound
	}
	message.Read = true
	s.messages.replace(id, message)
	return message, nil
}

// --- SessionRepository implementation ---

// CreateSession stores a new session in the scheduled state.
func (s *Store) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := nextIDLocked(s, s.sessions)
	if err != nil {
		return persistence.Session{}, err
	}

	session.ID = id
	session.Status = persistence.SessionScheduled
	session.CreatedAt = s.now()
	if session.Duration == 0 {
		session.Duration = defaultSessionMinutes
	}

	s.sessions.insert(id, session)
	return session, nil
}

// ListSessionsByStudent returns a student's sessions ordered by scheduled time.
func (s *Store) ListSessionsByStudent(ctx context.Context, studentID string) ([]persistence.Session, error) {
	return s.listSessions(func(sess persistence.Session) bool { return sess.StudentID == studentID }), nil
}

// ListSessionsByMentor returns a mentor's sessions ordered by scheduled time.
func (s *Store) ListSessionsByMentor(ctx context.Context, mentorID string) ([]persistence.Session, error) {
	return s.listSessions(func(sess persistence.Session) bool { return sess.MentorID == mentorID }), nil
}

func (s *Store) listSessions(pred func(persistence.Session) bool) []persistence.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.filter(pred)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].ScheduledAt.Before(sessions[j].ScheduledAt)
	})
	return sessions
}

// UpdateSessionStatus replaces a session's status. Any status may follow any other.
func (s *Store) UpdateSessionStatus(ctx context.Context, id string, status persistence.SessionStatus) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.get(id)
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	session.Status = status
	s.sessions.replace(id, session)
	return session, nil
}

// Counts reports the size of every collection, keyed by collection name.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		"users":       s.users.len(),
		"courses":     s.courses.len(),
		"enrollments": s.enrollments.len(),
		"messages":    s.messages.len(),
		"sessions":    s.sessions.len(),
	}
}

func cloneUser(user persistence.User) persistence.User {
	user.Avatar = cloneString(user.Avatar)
	user.Skills = cloneStrings(user.Skills)
	return user
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

var (
	_ persistence.UserRepository       = (*Store)(nil)
	_ persistence.CourseRepository     = (*Store)(nil)
	_ persistence.EnrollmentRepository = (*Store)(nil)
	_ persistence.MessageRepository    = (*Store)(nil)
	_ persistence.SessionRepository    = (*Store)(nil)
)
