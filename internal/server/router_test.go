package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calcservice/internal/observability"
	"calcservice/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	router, err := NewRouter()
	if err != nil {
		t.Fatalf("building router: %v", err)
	}
	return router
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Fatal("expected Go runtime metrics in /metrics output")
	}
}

func TestNewRouterArithmeticAddSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/arithmetic/add", `{"a":2,"b":3}`)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	requestID := w.Result().Header.Get(observability.RequestIDHeader)
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}
	if payload["status"] != "success" {
		t.Fatalf("expected status success, got %#v", payload["status"])
	}
	if got, ok := payload["result"].(float64); !ok || got != 5 {
		t.Fatalf("expected result 5, got %#v", payload["result"])
	}
}

func TestNewRouterTrigonometryCalculate(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/trigonometry/calculate", `{"opposite":3,"hypotenuse":5}`)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var payload struct {
		Status string             `json:"status"`
		Result map[string]float64 `json:"result"`
	}
	testutil.DecodeJSONBody(t, w.Body, &payload)

	testutil.AssertFloat(t, "adjacent", 4, payload.Result["adjacent"], 1e-6)
	testutil.AssertFloat(t, "theta", 36.869897, payload.Result["theta"], 1e-6)
}

func TestNewRouterErrorResponsesCarryRequestID(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodGet, "/trigonometry/tan?theta=90", ""), router)

	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	if w.Result().Header.Get(observability.RequestIDHeader) == "" {
		t.Fatal("expected X-Request-ID header on error response")
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/geometry/area", nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/arithmetic/add", nil), router)
	testutil.CheckResponseCode(t, http.StatusMethodNotAllowed, w.Code)
}

func TestNewRouterLogsEveryRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	router := newTestRouter(t)
	_ = testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodPost, "/arithmetic/divide", `{"a":1,"b":0}`), router)

	completed := logs.FilterMessage("request completed").All()
	if len(completed) != 1 {
		t.Fatalf("expected 1 access log entry, got %d", len(completed))
	}
	if got := completed[0].ContextMap()["status"]; got != int64(http.StatusBadRequest) {
		t.Fatalf("expected logged status 400, got %#v", got)
	}

	if n := logs.FilterMessage("division by zero: 1 / 0").Len(); n != 1 {
		t.Fatalf("expected 1 error log entry, got %d", n)
	}
}
