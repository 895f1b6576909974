package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// HealthChecker reports whether the backing store can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Messages    *MessageHandler
	Sessions    *SessionHandler
	Health      HealthChecker
	Metrics     http.Handler
	// RouteMiddleware runs after route matching, so mux.CurrentRoute is set.
	RouteMiddleware []mux.MiddlewareFunc
	// Middleware wraps the whole router, outermost first.
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	var notFound http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		newResponder(nil).writeError(r.Context(), w, http.StatusNotFound, "Not found")
	})
	var notAllowed http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		newResponder(nil).writeError(r.Context(), w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	for _, mw := range cfg.RouteMiddleware {
		if mw != nil {
			router.Use(mw)
		}
	}
	// mux skips Use middleware for these two handlers.
	for i := len(cfg.RouteMiddleware) - 1; i >= 0; i-- {
		if mw := cfg.RouteMiddleware[i]; mw != nil {
			notFound = mw(notFound)
			notAllowed = mw(notAllowed)
		}
	}
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notAllowed

	router.HandleFunc("/healthz", healthHandler(cfg.Health)).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()

	if cfg.Auth != nil {
		api.HandleFunc("/auth/register", cfg.Auth.Register).Methods(http.MethodPost)
		api.HandleFunc("/auth/login", cfg.Auth.Login).Methods(http.MethodPost)
		api.HandleFunc("/auth/me", cfg.Auth.Me).Methods(http.MethodGet)
	}

	if cfg.Users != nil {
		api.HandleFunc("/users/mentors", cfg.Users.Mentors).Methods(http.MethodGet)
		api.HandleFunc("/users/{id}", cfg.Users.Get).Methods(http.MethodGet)
		api.HandleFunc("/users/{id}", cfg.Users.Update).Methods(http.MethodPatch)
	}

	if cfg.Courses != nil {
		api.HandleFunc("/courses", cfg.Courses.List).Methods(http.MethodGet)
		api.HandleFunc("/courses", cfg.Courses.Create).Methods(http.MethodPost)
		api.HandleFunc("/courses/mentor/{mentorId}", cfg.Courses.ListByMentor).Methods(http.MethodGet)
		api.HandleFunc("/courses/{id}", cfg.Courses.Get).Methods(http.MethodGet)
		api.HandleFunc("/courses/{id}", cfg.Courses.Update).Methods(http.MethodPatch)
	}

	if cfg.Enrollments != nil {
		api.HandleFunc("/enrollments", cfg.Enrollments.Create).Methods(http.MethodPost)
		api.HandleFunc("/enrollments/student/{studentId}", cfg.Enrollments.ListByStudent).Methods(http.MethodGet)
		api.HandleFunc("/enrollments/{id}/progress", cfg.Enrollments.UpdateProgress).Methods(http.MethodPatch)
	}

	if cfg.Messages != nil {
		api.HandleFunc("/messages", cfg.Messages.Send).Methods(http.MethodPost)
		api.HandleFunc("/messages/{id}/read", cfg.Messages.MarkRead).Methods(http.MethodPatch)
		api.HandleFunc("/messages/{senderId}/{receiverId}", cfg.Messages.Conversation).Methods(http.MethodGet)
	}

	if cfg.Sessions != nil {
		api.HandleFunc("/sessions", cfg.Sessions.Create).Methods(http.MethodPost)
		api.HandleFunc("/sessions/student/{studentId}", cfg.Sessions.ListByStudent).Methods(http.MethodGet)
		api.HandleFunc("/sessions/mentor/{mentorId}", cfg.Sessions.ListByMentor).Methods(http.MethodGet)
		api.HandleFunc("/sessions/{id}/status", cfg.Sessions.UpdateStatus).Methods(http.MethodPatch)
	}

	var handler http.Handler = router
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Ping(r.Context()); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
