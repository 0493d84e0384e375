package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePrediction(t *testing.T) {
	before := testutil.ToFloat64(predictions.WithLabelValues("High"))
	ObservePrediction("High", 2*time.Millisecond)

	if got := testutil.ToFloat64(predictions.WithLabelValues("High")); got != before+1 {
		t.Errorf("Expected High counter %v, got %v", before+1, got)
	}
}

func TestObserveInferenceFailure(t *testing.T) {
	before := testutil.ToFloat64(inferenceFailures)
	ObserveInferenceFailure()

	if got := testutil.ToFloat64(inferenceFailures); got != before+1 {
		t.Errorf("Expected failure counter %v, got %v", before+1, got)
	}
}

func TestSetModelInfo(t *testing.T) {
	SetModelInfo("telco-churn/v1", 45)

	if got := testutil.ToFloat64(modelInfo.WithLabelValues("telco-churn/v1")); got != 45 {
		t.Errorf("Expected model width 45, got %v", got)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Post("/v1/predict", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	before := testutil.ToFloat64(httpReqs.WithLabelValues("/v1/predict", http.MethodPost, "400"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/predict", nil))

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("/v1/predict", http.MethodPost, "400")); got != before+1 {
		t.Errorf("Expected request counter %v, got %v", before+1, got)
	}
}
