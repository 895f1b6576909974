package application

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/devhearts/devmentor/internal/testfixtures"
)

type recordedEvent struct {
	event   string
	outcome string
}

type eventLog struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (l *eventLog) RecordEvent(event, outcome string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, recordedEvent{event: event, outcome: outcome})
}

func (l *eventLog) count(event, outcome string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.event == event && e.outcome == outcome {
			n++
		}
	}
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceSet struct {
	harness     *testfixtures.StoreHarness
	events      *eventLog
	tokens      *TokenManager
	accounts    *AccountService
	courses     *CourseService
	enrollments *EnrollmentService
	messages    *MessageService
	mentoring   *MentoringService
}

func newServiceSet(t *testing.T) serviceSet {
	t.Helper()

	harness := testfixtures.NewStoreHarness()
	events := &eventLog{}
	tokens, err := NewTokenManager("test-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("NewTokenManager returned error: %v", err)
	}
	logger := discardLogger()
	store := harness.Store
	return serviceSet{
		harness:     harness,
		events:      events,
		tokens:      tokens,
		accounts:    NewAccountService(store, NewPasswordHasher(cheapParams), tokens, events, logger),
		courses:     NewCourseService(store, events, logger),
		enrollments: NewEnrollmentService(store, events, logger),
		messages:    NewMessageService(store, events, logger),
		mentoring:   NewMentoringService(store, events, logger),
	}
}

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors[field]; !ok {
		t.Fatalf("expected field error for %q, got %v", field, vErr.FieldErrors)
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
