package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-chi-simpson/internal/calculator"
	"go-chi-simpson/internal/config"
	"go-chi-simpson/internal/observability"
	"go-chi-simpson/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	return NewRouter(config.Default())
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterIntegrateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	body := []byte(`{"a":0,"b":1,"n":4,"expression":"x^2"}`)
	req := httptest.NewRequest(http.MethodPost, "/calculator/integrate", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["result"].(float64); !ok || got != 0.333333 {
		t.Fatalf("expected result 0.333333, got %#v", payload["result"])
	}
}

func TestNewRouterIntegrateErrorCarriesKind(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.PostJSON(router, "/calculator/integrate", `{"a":1,"b":1,"n":4,"expression":"x"}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	if w.Result().Header.Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on error responses")
	}

	var payload map[string]string
	testutil.DecodeJSONBody(t, w.Body, &payload)
	if payload["kind"] != "invalid_bounds" {
		t.Fatalf("expected kind invalid_bounds, got %q", payload["kind"])
	}
}

func TestNewRouterAppliesConfiguredIntervalCap(t *testing.T) {
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	cfg := config.Default()
	cfg.MaxIntervals = 10
	router := NewRouter(cfg)

	w := testutil.PostJSON(router, "/calculator/integrate", `{"a":0,"b":1,"n":12,"expression":"x"}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

func TestNewRouterMetricsEndpointExposesRequestCounter(t *testing.T) {
	router := newTestRouter(t)

	_ = testutil.PostJSON(router, "/calculator/validate", `{"expression":"x"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	body := w.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Fatal("expected http_requests_total in /metrics output")
	}
	if !strings.Contains(body, `route="/calculator/validate"`) {
		t.Fatal("expected validate route label in /metrics output")
	}
}
