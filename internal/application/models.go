package application

import (
	"time"

	"github.com/devhearts/devmentor/internal/persistence"
)

// Entity aliases keep handler code independent of the persistence import.
type (
	User       = persistence.User
	Course     = persistence.Course
	Enrollment = persistence.Enrollment
	Message    = persistence.Message
	Session    = persistence.Session
)

// RegisterInput is the user creation shape accepted by Register.
type RegisterInput struct {
	Username   string   `json:"username" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required"`
	FirstName  string   `json:"firstName" validate:"required"`
	LastName   string   `json:"lastName" validate:"required"`
	Avatar     *string  `json:"avatar"`
	Role       string   `json:"role" validate:"omitempty,oneof=student mentor"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Company    string   `json:"company"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  User
	Token string
}

// ProfileInput is a partial profile update; nil fields are left unchanged.
type ProfileInput struct {
	FirstName  *string  `json:"firstName" validate:"omitnil,min=1"`
	LastName   *string  `json:"lastName" validate:"omitnil,min=1"`
	Avatar     *string  `json:"avatar"`
	Bio        *string  `json:"bio"`
	Skills     []string `json:"skills"`
	Experience *string  `json:"experience"`
	Company    *string  `json:"company"`
}

// CourseInput is the course creation shape.
type CourseInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Duration    *int   `json:"duration" validate:"required,min=0"`
	Thumbnail   string `json:"thumbnail" validate:"required"`
	MentorID    string `json:"mentorId" validate:"required"`
	Price       int    `json:"price" validate:"min=0"`
}

// CoursePatchInput is a partial course update.
type CoursePatchInput struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Category    *string `json:"category" validate:"omitnil,min=1"`
	Level       *string `json:"level" validate:"omitnil,oneof=beginner intermediate advanced"`
	Duration    *int    `json:"duration" validate:"omitnil,min=0"`
	Thumbnail   *string `json:"thumbnail" validate:"omitnil,min=1"`
	Price       *int    `json:"price" validate:"omitnil,min=0"`
}

// CourseQuery filters course listings. Empty or "all" disables a dimension.
type CourseQuery struct {
	Category string
	Level    string
}

// EnrollmentInput is the enrollment creation shape.
type EnrollmentInput struct {
	StudentID string `json:"studentId" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
}

// ProgressInput sets an enrollment's completion percentage.
type ProgressInput struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// MessageInput is the message creation shape.
type MessageInput struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// SessionInput is the session creation shape. An absent duration defaults to
// 60 minutes; an explicit 0 is kept.
type SessionInput struct {
	StudentID   string    `json:"studentId" validate:"required"`
	MentorID    string    `json:"mentorId" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Duration    *int      `json:"duration" validate:"omitnil,min=0"`
}

// StatusInput changes a session's status.
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}
