package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/insights"
)

// handlePredictJSON handles POST /v1/predict
func (s *Server) handlePredictJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		BadRequestError(w, r, ErrCodeBadRequest, "Content-Type must be application/json")
		return
	}

	var req PredictRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RequestTooLargeError(w, r, "request body exceeds limit")
			return
		}
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON: "+err.Error())
		return
	}

	if result := req.Validate(); !result.Valid {
		ValidationError(w, r, "invalid customer attributes", result.Errors)
		return
	}

	in := req.Input()
	p, err := s.score(r.Context(), in)
	if err != nil {
		if r.Context().Err() != nil {
			// the timeout middleware answers
			return
		}
		s.log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("prediction failed")
		InferenceError(w, r, "prediction failed")
		return
	}

	writeJSON(w, http.StatusOK, PredictResponse{
		ID:            uuid.NewString(),
		Probability:   p.Probability,
		Display:       p.Percent(),
		Tier:          string(p.Tier),
		Message:       p.Message,
		Insights:      insights.Annotate(in),
		SchemaVersion: features.SchemaVersion,
		PredictedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
