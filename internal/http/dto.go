package http

import (
	"time"

	"github.com/devhearts/devmentor/internal/application"
)

// userDTO is the public user shape. It has no password field.
type userDTO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Avatar     *string   `json:"avatar"`
	Role       string    `json:"role"`
	Bio        string    `json:"bio"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Company    string    `json:"company"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserDTO(u application.User) userDTO {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return userDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Avatar:     u.Avatar,
		Role:       string(u.Role),
		Bio:        u.Bio,
		Skills:     skills,
		Experience: u.Experience,
		Company:    u.Company,
		CreatedAt:  u.CreatedAt.UTC(),
	}
}

type courseDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Duration    int       `json:"duration"`
	Thumbnail   string    `json:"thumbnail"`
	MentorID    string    `json:"mentorId"`
	Students    int       `json:"students"`
	Price       int       `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCourseDTO(c application.Course) courseDTO {
	return courseDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Level:       string(c.Level),
		Duration:    c.Duration,
		Thumbnail:   c.Thumbnail,
		MentorID:    c.MentorID,
		Students:    c.Students,
		Price:       c.Price,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

type enrollmentDTO struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	CourseID   string    `json:"courseId"`
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func toEnrollmentDTO(e application.Enrollment) enrollmentDTO {
	return enrollmentDTO{
		ID:         e.ID,
		StudentID:  e.StudentID,
		CourseID:   e.CourseID,
		Progress:   e.Progress,
		EnrolledAt: e.EnrolledAt.UTC(),
	}
}

type messageDTO struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMessageDTO(m application.Message) messageDTO {
	return messageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type sessionDTO struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	MentorID    string    `json:"mentorId"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    int       `json:"duration"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toSessionDTO(s application.Session) sessionDTO {
	return sessionDTO{
		ID:          s.ID,
		StudentID:   s.StudentID,
		MentorID:    s.MentorID,
		Title:       s.Title,
		ScheduledAt: s.ScheduledAt.UTC(),
		Duration:    s.Duration,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.UTC(),
	}
}

// mapSlice converts records to DTOs. The result is never nil so empty
// listings encode as [].
func mapSlice[T, D any](records []T, convert func(T) D) []D {
	out := make([]D, 0, len(records))
	for _, record := range records {
		out = append(out, convert(record))
	}
	return out
}
