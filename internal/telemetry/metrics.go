package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_predictions_total",
			Help: "Completed churn predictions by risk tier",
		},
		[]string{"tier"},
	)
	inferenceDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "churn_inference_duration_seconds",
		Help:    "Time spent in the classifier per prediction",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})
	inferenceFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "churn_inference_failures_total",
		Help: "Predictions that failed inside the classifier",
	})
	modelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "churn_model_info",
			Help: "Loaded model artifact; value is the encoded feature width",
		},
		[]string{"schema_version"},
	)
)

// Init registers all collectors with the default registry. Call once.
func Init() {
	prometheus.MustRegister(httpReqs, httpDur, predictions, inferenceDur, inferenceFailures, modelInfo)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// SetModelInfo records the loaded artifact.
func SetModelInfo(schemaVersion string, width int) {
	modelInfo.WithLabelValues(schemaVersion).Set(float64(width))
}

// ObservePrediction records a successful prediction.
func ObservePrediction(tier string, d time.Duration) {
	predictions.WithLabelValues(tier).Inc()
	inferenceDur.Observe(d.Seconds())
}

// ObserveInferenceFailure records a failed prediction.
func ObserveInferenceFailure() { inferenceFailures.Inc() }

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(ww, r)

		// route pattern is only known after routing
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		httpReqs.WithLabelValues(route, r.Method, strconv.Itoa(ww.status)).Inc()
		httpDur.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
