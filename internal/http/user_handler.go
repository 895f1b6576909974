package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devhearts/devmentor/internal/application"
)

var (
	userFailures    = failureMessages{invalid: "Invalid user data", notFound: "User not found", internal: "Failed to fetch user"}
	mentorsFailures = failureMessages{internal: "Failed to fetch mentors"}
)

// UserHandler serves the user directory.
type UserHandler struct {
	service   accountService
	responder responder
	logger    *slog.Logger
}

func NewUserHandler(service accountService, logger *slog.Logger) *UserHandler {
	base := defaultLogger(logger)
	return &UserHandler{service: service, responder: newResponder(base), logger: base}
}

// Mentors handles GET /api/users/mentors.
func (h *UserHandler) Mentors(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	mentors, err := h.service.ListMentors(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, mentorsFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(mentors, toUserDTO))
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	user, err := h.service.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, userFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

// Update handles PATCH /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	userID := mux.Vars(r)["id"]
	logger := handlerLogger(r, h.logger, "UserHandler", "Update", "user_id", userID)

	var req application.ProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode profile update", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, userFailures.invalid)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		logger.WarnContext(r.Context(), "profile update rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, userFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}
