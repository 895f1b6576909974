package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/devhearts/devmentor/internal/application"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = "Invalid token"
	msgInternal           = "Internal server error"
)

// failureMessages names the client facing message for each failure class of
// one route.
type failureMessages struct {
	invalid  string
	conflict string
	notFound string
	internal string
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps application errors onto status codes. Internal
// details never reach the response body.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error, msgs failureMessages) {
	var vErr *application.ValidationError
	switch {
	case err == nil:
		r.writeError(ctx, w, http.StatusInternalServerError, fallback(msgs.internal, msgInternal))
	case errors.As(err, &vErr):
		r.writeError(ctx, w, http.StatusBadRequest, msgs.invalid)
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeError(ctx, w, http.StatusBadRequest, fallback(msgs.conflict, msgs.invalid))
	case errors.Is(err, application.ErrNotFound):
		r.writeError(ctx, w, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeError(ctx, w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, application.ErrInvalidToken):
		r.writeError(ctx, w, http.StatusUnauthorized, msgInvalidToken)
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err)
		r.writeError(ctx, w, http.StatusInternalServerError, fallback(msgs.internal, msgInternal))
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

type errorResponse struct {
	Message string `json:"message"`
}
