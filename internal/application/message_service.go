package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devhearts/devmentor/internal/persistence"
)

// MessageService stores direct messages between users.
type MessageService struct {
	messages persistence.MessageRepository
	events   EventRecorder
	logger   *slog.Logger
}

// NewMessageService wires dependencies for the message service.
func NewMessageService(messages persistence.MessageRepository, events EventRecorder, logger *slog.Logger) *MessageService {
	return &MessageService{messages: messages, events: defaultEvents(events), logger: defaultLogger(logger)}
}

func (s *MessageService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MessageService", operation, attrs...)
}

// Conversation returns the messages exchanged between two users in either
// direction, oldest first.
func (s *MessageService) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	if s == nil || s.messages == nil {
		return nil, fmt.Errorf("MessageService is not configured")
	}
	return s.messages.ListConversation(ctx, userA, userB)
}

// Send validates and stores an unread message.
func (s *MessageService) Send(ctx context.Context, input MessageInput) (sent Message, err error) {
	if s == nil || s.messages == nil {
		return Message{}, fmt.Errorf("MessageService is not configured")
	}

	input.SenderID = strings.TrimSpace(input.SenderID)
	input.ReceiverID = strings.TrimSpace(input.ReceiverID)
	logger := s.loggerWith(ctx, "Send", "sender_id", input.SenderID, "receiver_id", input.ReceiverID)
	defer func() {
		s.events.RecordEvent(EventMessage, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "send failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "message sent", "message_id", sent.ID)
	}()

	vErr := validateStruct(input)
	vErr.merge(contentRules(input.Content))
	if err = vErr.orNil(); err != nil {
		return
	}

	sent, err = s.messages.CreateMessage(ctx, Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	})
	err = translateError(err)
	return
}

func contentRules(content string) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(content) == "" {
		vErr.add("content", "content is required")
	}
	return vErr
}

// MarkRead flags a message as read.
func (s *MessageService) MarkRead(ctx context.Context, id string) (Message, error) {
	if s == nil || s.messages == nil {
		return Message{}, fmt.Errorf("MessageService is not configured")
	}
	msg, err := s.messages.MarkMessageAsRead(ctx, id)
	if err != nil {
		return Message{}, translateError(err)
	}
	return msg, nil
}
