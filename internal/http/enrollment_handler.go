package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devhearts/devmentor/internal/application"
)

type enrollmentService interface {
	Enroll(ctx context.Context, input application.EnrollmentInput) (application.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]application.Enrollment, error)
	UpdateProgress(ctx context.Context, id string, input application.ProgressInput) (application.Enrollment, error)
}

var (
	enrollFailures = failureMessages{
		invalid:  "Failed to enroll in course",
		conflict: "Already enrolled in this course",
		internal: "Failed to enroll in course",
	}
	enrollmentListFailures = failureMessages{internal: "Failed to fetch enrollments"}
	progressFailures       = failureMessages{invalid: "Invalid progress", notFound: "Enrollment not found"}
)

// EnrollmentHandler serves enrollments and progress tracking.
type EnrollmentHandler struct {
	service   enrollmentService
	responder responder
	logger    *slog.Logger
}

func NewEnrollmentHandler(service enrollmentService, logger *slog.Logger) *EnrollmentHandler {
	base := defaultLogger(logger)
	return &EnrollmentHandler{service: service, responder: newResponder(base), logger: base}
}

// Create handles POST /api/enrollments.
func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	logger := handlerLogger(r, h.logger, "EnrollmentHandler", "Create")

	var req application.EnrollmentInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode enrollment", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, enrollFailures.invalid)
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), req)
	if err != nil {
		logger.WarnContext(r.Context(), "enrollment rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, enrollFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEnrollmentDTO(enrollment))
}

// ListByStudent handles GET /api/enrollments/student/{studentId}.
func (h *EnrollmentHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	enrollments, err := h.service.ListByStudent(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, enrollmentListFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(enrollments, toEnrollmentDTO))
}

// UpdateProgress handles PATCH /api/enrollments/{id}/progress.
func (h *EnrollmentHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	enrollmentID := mux.Vars(r)["id"]
	logger := handlerLogger(r, h.logger, "EnrollmentHandler", "UpdateProgress", "enrollment_id", enrollmentID)

	var req application.ProgressInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode progress", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, progressFailures.invalid)
		return
	}

	enrollment, err := h.service.UpdateProgress(r.Context(), enrollmentID, req)
	if err != nil {
		logger.WarnContext(r.Context(), "progress update rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, progressFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEnrollmentDTO(enrollment))
}
