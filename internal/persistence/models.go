package persistence

import "time"

// Role distinguishes learners from course authors.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
)

// Level is the difficulty tier of a course.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// SessionStatus tracks the lifecycle of a mentoring session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// User represents a student or mentor account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Avatar       *string
	Role         Role
	Bio          string
	Skills       []string
	Experience   string
	Company      string
	CreatedAt    time.Time
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	FirstName  *string
	LastName   *string
	Avatar     *string
	Bio        *string
	Skills     []string
	Experience *string
	Company    *string
}

// Course is a learning unit owned by one mentor.
type Course struct {
	ID          string
	Title       string
	Description string
	Category    string
	Level       Level
	Duration    int
	Thumbnail   string
	MentorID    string
	Students    int
	Price       int
	CreatedAt   time.Time
}

// CoursePatch carries the fields of a partial course update.
type CoursePatch struct {
	Title       *string
	Description *string
	Category    *string
	Level       *Level
	Duration    *int
	Thumbnail   *string
	Price       *int
}

// Enrollment links one student to one course.
type Enrollment struct {
	ID         string
	StudentID  string
	CourseID   string
	Progress   int
	EnrolledAt time.Time
}

// Message is a direct text message between two users.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	Read       bool
	CreatedAt  time.Time
}

// Session is a scheduled mentoring meeting.
type Session struct {
	ID          string
	StudentID   string
	MentorID    string
	Title       string
	ScheduledAt time.Time
	Duration    int
	Status      SessionStatus
	CreatedAt   time.Time
}
