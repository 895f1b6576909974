package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devhearts/devmentor/internal/application"
)

type courseService interface {
	ListCourses(ctx context.Context, query application.CourseQuery) ([]application.Course, error)
	ListCoursesByMentor(ctx context.Context, mentorID string) ([]application.Course, error)
	GetCourse(ctx context.Context, id string) (application.Course, error)
	CreateCourse(ctx context.Context, input application.CourseInput) (application.Course, error)
	UpdateCourse(ctx context.Context, id string, input application.CoursePatchInput) (application.Course, error)
}

var (
	courseListFailures   = failureMessages{internal: "Failed to fetch courses"}
	courseFailures       = failureMessages{invalid: "Invalid course data", notFound: "Course not found", internal: "Failed to fetch course"}
	courseCreateFailures = failureMessages{invalid: "Invalid course data", internal: "Invalid course data"}
)

// CourseHandler serves the course catalog.
type CourseHandler struct {
	service   courseService
	responder responder
	logger    *slog.Logger
}

func NewCourseHandler(service courseService, logger *slog.Logger) *CourseHandler {
	base := defaultLogger(logger)
	return &CourseHandler{service: service, responder: newResponder(base), logger: base}
}

// List handles GET /api/courses?category=&level=.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	query := r.URL.Query()
	courses, err := h.service.ListCourses(r.Context(), application.CourseQuery{
		Category: query.Get("category"),
		Level:    query.Get("level"),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, courseListFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(courses, toCourseDTO))
}

// ListByMentor handles GET /api/courses/mentor/{mentorId}.
func (h *CourseHandler) ListByMentor(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	courses, err := h.service.ListCoursesByMentor(r.Context(), mux.Vars(r)["mentorId"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, courseListFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(courses, toCourseDTO))
}

// Get handles GET /api/courses/{id}.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	course, err := h.service.GetCourse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, courseFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTO(course))
}

// Create handles POST /api/courses.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	logger := handlerLogger(r, h.logger, "CourseHandler", "Create")

	var req application.CourseInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode course", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, courseCreateFailures.invalid)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), req)
	if err != nil {
		logger.WarnContext(r.Context(), "course rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, courseCreateFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTO(course))
}

// Update handles PATCH /api/courses/{id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	courseID := mux.Vars(r)["id"]
	logger := handlerLogger(r, h.logger, "CourseHandler", "Update", "course_id", courseID)

	var req application.CoursePatchInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode course update", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, courseFailures.invalid)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), courseID, req)
	if err != nil {
		logger.WarnContext(r.Context(), "course update rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, courseFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTO(course))
}
