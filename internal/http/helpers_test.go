package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devhearts/devmentor/internal/application"
	"github.com/devhearts/devmentor/internal/testfixtures"
)

type apiHarness struct {
	t       *testing.T
	handler http.Handler
	store   *testfixtures.StoreHarness
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := testfixtures.NewStoreHarness()
	tokens, err := application.NewTokenManager("handler-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("NewTokenManager returned error: %v", err)
	}
	hasher := application.NewPasswordHasher(application.Argon2idParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})

	accounts := application.NewAccountService(store.Store, hasher, tokens, nil, logger)
	handler := NewRouter(RouterConfig{
		Auth:        NewAuthHandler(accounts, logger),
		Users:       NewUserHandler(accounts, logger),
		Courses:     NewCourseHandler(application.NewCourseService(store.Store, nil, logger), logger),
		Enrollments: NewEnrollmentHandler(application.NewEnrollmentService(store.Store, nil, logger), logger),
		Messages:    NewMessageHandler(application.NewMessageService(store.Store, nil, logger), logger),
		Sessions:    NewSessionHandler(application.NewMentoringService(store.Store, nil, logger), logger),
		Health:      store.Store,
		Middleware:  []func(http.Handler) http.Handler{RequestLogger(logger)},
	})
	return &apiHarness{t: t, handler: handler, store: store}
}

// do sends body (marshalled unless it is a string) and returns the recorder.
func (h *apiHarness) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			h.t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// expect asserts the status code and decodes the JSON body into out.
func (h *apiHarness) expect(rec *httptest.ResponseRecorder, status int, out any) {
	h.t.Helper()
	if rec.Code != status {
		h.t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		h.t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
}

// expectMessage asserts an error status and its message.
func (h *apiHarness) expectMessage(rec *httptest.ResponseRecorder, status int, message string) {
	h.t.Helper()
	var body errorResponse
	h.expect(rec, status, &body)
	if body.Message != message {
		h.t.Fatalf("expected message %q, got %q", message, body.Message)
	}
}

func (h *apiHarness) register(username, email, role string) map[string]any {
	h.t.Helper()
	var user map[string]any
	h.expect(h.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username":  username,
		"email":     email,
		"password":  "pw-" + username,
		"firstName": "First",
		"lastName":  "Last",
		"role":      role,
	}), http.StatusOK, &user)
	return user
}

func (h *apiHarness) createCourse(mentorID string, overrides map[string]any) map[string]any {
	h.t.Helper()
	body := map[string]any{
		"title":       "Intro to Go",
		"description": "Learn Go",
		"category":    "Web Development",
		"level":       "beginner",
		"duration":    6,
		"thumbnail":   "https://images.example.com/go.png",
		"mentorId":    mentorID,
	}
	for k, v := range overrides {
		body[k] = v
	}
	var course map[string]any
	h.expect(h.do(http.MethodPost, "/api/courses", body), http.StatusOK, &course)
	return course
}
