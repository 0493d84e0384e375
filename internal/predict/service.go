package predict

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/model"
)

var (
	// ErrBatchSize means the classifier returned a different number of rows than records sent.
	ErrBatchSize = errors.New("classifier returned unexpected batch size")
	// ErrInvalidProbability means the classifier returned a non-finite or out-of-range probability.
	ErrInvalidProbability = errors.New("classifier returned invalid probability")
)

// Service runs inference against a shared, read-only classifier.
type Service struct {
	classifier model.Classifier
}

// NewService wires the loaded classifier into a predictor.
func NewService(c model.Classifier) *Service {
	return &Service{classifier: c}
}

// Predict scores one record. Any classifier failure is returned as is; no
// probability is produced on error.
func (s *Service) Predict(ctx context.Context, r features.Record) (Prediction, error) {
	probs, err := s.classifier.PredictProba(ctx, []features.Record{r})
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	if len(probs) != 1 {
		return Prediction{}, fmt.Errorf("predict: %w: got %d rows, want 1", ErrBatchSize, len(probs))
	}

	churn := probs[0][1]
	if math.IsNaN(churn) || math.IsInf(churn, 0) || churn < 0 || churn > 1 {
		return Prediction{}, fmt.Errorf("predict: %w: %v", ErrInvalidProbability, churn)
	}

	percent := churn * 100
	tier, msg := Classify(percent)
	return Prediction{Probability: percent, Tier: tier, Message: msg}, nil
}
