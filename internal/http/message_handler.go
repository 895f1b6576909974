package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devhearts/devmentor/internal/application"
)

type messageService interface {
	Conversation(ctx context.Context, userA, userB string) ([]application.Message, error)
	Send(ctx context.Context, input application.MessageInput) (application.Message, error)
	MarkRead(ctx context.Context, id string) (application.Message, error)
}

var (
	sendFailures         = failureMessages{invalid: "Failed to send message", internal: "Failed to send message"}
	conversationFailures = failureMessages{internal: "Failed to fetch messages"}
	markReadFailures     = failureMessages{notFound: "Message not found"}
)

// MessageHandler serves direct messages.
type MessageHandler struct {
	service   messageService
	responder responder
	logger    *slog.Logger
}

func NewMessageHandler(service messageService, logger *slog.Logger) *MessageHandler {
	base := defaultLogger(logger)
	return &MessageHandler{service: service, responder: newResponder(base), logger: base}
}

// Conversation handles GET /api/messages/{senderId}/{receiverId}.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	vars := mux.Vars(r)
	messages, err := h.service.Conversation(r.Context(), vars["senderId"], vars["receiverId"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, conversationFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mapSlice(messages, toMessageDTO))
}

// Send handles POST /api/messages.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	logger := handlerLogger(r, h.logger, "MessageHandler", "Send")

	var req application.MessageInput
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode message", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, sendFailures.invalid)
		return
	}

	msg, err := h.service.Send(r.Context(), req)
	if err != nil {
		logger.WarnContext(r.Context(), "message rejected", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, sendFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMessageDTO(msg))
}

// MarkRead handles PATCH /api/messages/{id}/read.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		unavailable(w)
		return
	}

	msg, err := h.service.MarkRead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err, markReadFailures)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMessageDTO(msg))
}
