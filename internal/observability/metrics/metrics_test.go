package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsMiddleware_LabelsByRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(HTTPMetricsMiddleware)
	router.HandleFunc("/api/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/courses/{id}", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/"+id, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Fatalf("expected 3 requests on the templated route, got %v", got)
	}
}

func TestHTTPMetricsMiddleware_DefaultsToOK(t *testing.T) {
	handler := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected one unmatched 200, got %v", got)
	}
}

func TestEvents_RecordEvent(t *testing.T) {
	counter := domainEvents.WithLabelValues("enrollment", "already_exists")
	before := testutil.ToFloat64(counter)

	Events{}.RecordEvent("enrollment", "already_exists")
	Events{}.RecordEvent("enrollment", "already_exists")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("expected two events, got %v", got)
	}
}

func TestStoreCollector(t *testing.T) {
	collector := NewStoreCollector(func() map[string]int {
		return map[string]int{"users": 3, "courses": 1}
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	expected := `
# HELP devmentor_store_records Number of records held per in-memory collection
# TYPE devmentor_store_records gauge
devmentor_store_records{collection="courses"} 1
devmentor_store_records{collection="users"} 3
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "devmentor_store_records"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
