package persistence

import "context"

// UserFilter narrows user listings. Zero values match everything.
type UserFilter struct {
	Role Role
}

// UserRepository exposes lookups and writes for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
}

// CourseFilter narrows course listings. Category and Level compare
// case-insensitively; empty fields match everything.
type CourseFilter struct {
	Category string
	Level    string
	MentorID string
}

// CourseRepository exposes the course catalog.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course Course) (Course, error)
	UpdateCourse(ctx context.Context, id string, patch CoursePatch) (Course, error)
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context, filter CourseFilter) ([]Course, error)
}

// EnrollmentRepository stores course enrollments.
type EnrollmentRepository interface {
	CreateEnrollment(ctx context.Context, enrollment Enrollment) (Enrollment, error)
	GetEnrollment(ctx context.Context, studentID, courseID string) (Enrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]Enrollment, error)
	UpdateEnrollmentProgress(ctx context.Context, id string, progress int) (Enrollment, error)
}

// MessageRepository stores direct messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message Message) (Message, error)
	ListConversation(ctx context.Context, userA, userB string) ([]Message, error)
	MarkMessageAsRead(ctx context.Context, id string) (Message, error)
}

// SessionRepository stores mentoring sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	ListSessionsByStudent(ctx context.Context, studentID string) ([]Session, error)
	ListSessionsByMentor(ctx context.Context, mentorID string) ([]Session, error)
	UpdateSessionStatus(ctx context.Context, id string, status SessionStatus) (Session, error)
}
