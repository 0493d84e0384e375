package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/logging"
	"github.com/TimurManjosov/churnguard/internal/predict"
	"github.com/TimurManjosov/churnguard/internal/telemetry"
)

const maxBodyBytes = 16 << 10

// Options tunes the HTTP surface.
type Options struct {
	RateLimitPerIP int           // predictions per minute per IP; 0 disables
	RequestTimeout time.Duration // zero means 5s
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only set it behind a proxy that overwrites those headers, otherwise
	// callers can pick their own rate-limit key.
	TrustProxy bool
}

// Server serves the prediction form and the JSON API. It holds no per-user
// state; the predictor and its model are shared read-only by all requests.
type Server struct {
	predictor *predict.Service
	log       zerolog.Logger
	opts      Options
}

func NewServer(predictor *predict.Service, log zerolog.Logger, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}
	return &Server{predictor: predictor, log: log, opts: opts}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(logging.Middleware(s.log), telemetry.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	// health
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError(w, r, "no route for "+r.URL.Path)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles()))))

	r.Get("/", s.handleIndex)
	r.Get("/v1/schema", s.handleSchema)

	r.Group(func(r chi.Router) {
		if s.opts.RateLimitPerIP > 0 {
			r.Use(httprate.Limit(
				s.opts.RateLimitPerIP,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					RateLimitedError(w, r, "too many predictions, try again later")
				}),
			))
		}
		r.Post("/predict", s.handlePredictForm)
		r.Post("/v1/predict", s.handlePredictJSON)
	})

	return r
}

// score assembles the record and runs one synchronous inference.
func (s *Server) score(ctx context.Context, in features.Input) (predict.Prediction, error) {
	rec, err := features.Assemble(in)
	if err != nil {
		return predict.Prediction{}, err
	}

	start := time.Now()
	p, err := s.predictor.Predict(ctx, rec)
	if err != nil {
		telemetry.ObserveInferenceFailure()
		return predict.Prediction{}, err
	}
	telemetry.ObservePrediction(string(p.Tier), time.Since(start))
	return p, nil
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SchemaResponse{
		Version: features.SchemaVersion,
		Fields:  features.Schema(),
	})
}
