package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/devhearts/devmentor/internal/persistence"
	"github.com/devhearts/devmentor/internal/persistence/memory"
)

var (
	userCounter    uint64
	courseCounter  uint64
	sessionCounter uint64
)

// ----------------------------- User fixtures -----------------------------

// UserOption configures a generated user.
type UserOption func(*persistence.User)

// NewUser returns a unique student account with optional overrides. The ID
// and CreatedAt fields are left empty because stores assign them.
func NewUser(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	user := persistence.User{
		Username:     fmt.Sprintf("user%03d", idx),
		Email:        fmt.Sprintf("user%03d@example.com", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User %03d", idx),
		Role:         persistence.RoleStudent,
		Skills:       []string{},
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUsername overrides the generated username.
func WithUsername(username string) UserOption {
	return func(u *persistence.User) {
		u.Username = username
	}
}

// WithEmail overrides the generated email address.
func WithEmail(email string) UserOption {
	return func(u *persistence.User) {
		u.Email = email
	}
}

// AsMentor marks the generated user as a mentor.
func AsMentor() UserOption {
	return func(u *persistence.User) {
		u.Role = persistence.RoleMentor
	}
}

// WithSkills sets the generated user's skills.
func WithSkills(skills ...string) UserOption {
	return func(u *persistence.User) {
		u.Skills = skills
	}
}

// ----------------------------- Course fixtures -----------------------------

// CourseOption configures a generated course.
type CourseOption func(*persistence.Course)

// NewCourse returns a beginner web-development course owned by mentorID.
func NewCourse(mentorID string, opts ...CourseOption) persistence.Course {
	idx := atomic.AddUint64(&courseCounter, 1)
	course := persistence.Course{
		Title:       fmt.Sprintf("Course %03d", idx),
		Description: "Hands-on fundamentals",
		Category:    "Web Development",
		Level:       persistence.LevelBeginner,
		Duration:    12,
		Thumbnail:   "https://images.example.com/course.png",
		MentorID:    mentorID,
	}
	for _, opt := range opts {
		opt(&course)
	}
	return course
}

// WithCategory overrides the course category.
func WithCategory(category string) CourseOption {
	return func(c *persistence.Course) {
		c.Category = category
	}
}

// WithLevel overrides the course level.
func WithLevel(level persistence.Level) CourseOption {
	return func(c *persistence.Course) {
		c.Level = level
	}
}

// WithPrice sets the course price in cents.
func WithPrice(cents int) CourseOption {
	return func(c *persistence.Course) {
		c.Price = cents
	}
}

// ----------------------------- Session fixtures -----------------------------

// NewSession returns a session between student and mentor starting at scheduledAt.
func NewSession(studentID, mentorID string, scheduledAt time.Time) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	return persistence.Session{
		StudentID:   studentID,
		MentorID:    mentorID,
		Title:       fmt.Sprintf("Session %03d", idx),
		ScheduledAt: scheduledAt,
	}
}

// ----------------------------- Store harness -----------------------------

// StoreHarness bundles a memory store with the deterministic clock and id
// generator it was built with.
type StoreHarness struct {
	Store *memory.Store
	Clock *Clock
	IDs   *IDGenerator
}

// NewStoreHarness returns a fresh store whose clock ticks one second per
// record and whose identifiers read "rec-1", "rec-2", and so on.
func NewStoreHarness() *StoreHarness {
	clock := NewTickingClock(ReferenceTime(), time.Second)
	ids := NewIDGenerator("rec")
	return &StoreHarness{
		Store: memory.New(memory.WithClock(clock.NowFunc()), memory.WithIDGenerator(ids.NextFunc())),
		Clock: clock,
		IDs:   ids,
	}
}
