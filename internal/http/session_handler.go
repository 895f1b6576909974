package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devhearts/devmentor/internal/application"
)

type mentoringService interface {
	ListByStudent(ctx context.Context, studentID string) ([]application.Session, error)
	ListByMentor(ctx context.Context, mentorID string) ([]application.Session, error)
	Schedule(ctx context.Context, input application.SessionInput) (application.Session, error)
	UpdateStatus(ctx context.Context, id string, input application.StatusInput) (application.Session, error)
}

var (
	scheduleFailures    = failureMessages{invalid: "Failed to create session", internal: "Failed to create session"}
	sessionListFailures = failureMessages{internal: "Failed to fetch sessions"}
	statusFailures      = failureMessages{invalid: "Invalid session status", notFound: "Session not found"}
)

// SessionHandler serves mentoring sessions.
type SessionHandler struct {
	service   mentoringService
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(service mentoringService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

// ListByStudent handles GET /api/sessions/student/{studentId}.
func (h *SessionHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	sessions, err := h.service.ListByStudent(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, sessionListFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(sessions, toSessionDTO))
}

// ListByMentor handles GET /api/sessions/mentor/{mentorId}.
func (h *SessionHandler) ListByMentor(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	sessions, err := h.service.ListByMentor(r.Context(), mux.Vars(r)["mentorId"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, sessionListFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(sessions, toSessionDTO))
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	logger := handlerLogger(r, h.logger, "SessionHandler", "Create")

	var req application.SessionInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode session", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, scheduleFailures.invalid)
		return
	}

	session, err := h.service.Schedule(r.Context(), req)
	if err != nil {
		logger.WarnContext(r.Context(), "session rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, scheduleFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(session))
}

// UpdateStatus handles PATCH /api/sessions/{id}/status.
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	sessionID := mux.Vars(r)["id"]
	logger := handlerLogger(r, h.logger, "SessionHandler", "UpdateStatus", "session_id", sessionID)

	var req application.StatusInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode status", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, statusFailures.invalid)
		return
	}

	session, err := h.service.UpdateStatus(r.Context(), sessionID, req)
	if err != nil {
		logger.WarnContext(r.Context(), "status update rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, statusFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(session))
}
