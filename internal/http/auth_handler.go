package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/devhearts/devmentor/internal/application"
)

const sessionTokenHeader = "X-Session-Token"

type accountService interface {
	Register(ctx context.Context, input application.RegisterInput) (application.AuthResult, error)
	Login(ctx context.Context, input application.LoginInput) (application.AuthResult, error)
	CurrentUser(ctx context.Context, token string) (application.User, error)
	GetUser(ctx context.Context, id string) (application.User, error)
	ListMentors(ctx context.Context) ([]application.User, error)
	UpdateProfile(ctx context.Context, id string, input application.ProfileInput) (application.User, error)
}

var (
	registerFailures = failureMessages{invalid: "Invalid user data", conflict: "User already exists"}
	loginFailures    = failureMessages{invalid: "Login failed"}
	meFailures       = failureMessages{invalid: msgInvalidToken}
)

// AuthHandler serves registration, login and token resolution.
type AuthHandler struct {
	service   accountService
	responder responder
	logger    *slog.Logger
}

func NewAuthHandler(service accountService, logger *slog.Logger) *AuthHandler {
	base := defaultLogger(logger)
	return &AuthHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AuthHandler) log(r *http.Request, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(r, h.logger, "AuthHandler", operation, attrs...)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	var req application.RegisterInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.log(r, "Register", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode registration", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, registerFailures.invalid)
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.log(r, "Register").WarnContext(r.Context(), "registration rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, registerFailures)
		return
	}

	h.writeSession(w, r, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	var req application.LoginInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.log(r, "Login", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode login", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, loginFailures.invalid)
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.log(r, "Login").WarnContext(r.Context(), "login rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, loginFailures)
		return
	}

	h.writeSession(w, r, result)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), extractTokenFromRequest(r))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, meFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, result application.AuthResult) {
	if result.Token != "" {
		w.Header().Set(sessionTokenHeader, result.Token)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(result.User))
}
