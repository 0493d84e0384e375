package model

import (
	"context"
	"fmt"
	"math"

	"github.com/TimurManjosov/churnguard/internal/features"
)

// Classifier returns class probabilities [not-churn, churn] for each record.
// Implementations must be safe for concurrent use.
type Classifier interface {
	PredictProba(ctx context.Context, records []features.Record) ([][2]float64, error)
}

type column struct {
	name   string
	offset int
	scaler Scaler
	cats   map[string]int // nil for numeric columns
}

// LogisticModel is an immutable, loaded logistic regression pipeline.
type LogisticModel struct {
	schemaVersion string
	trainedAt     string
	numeric       []column
	categorical   []column
	coef          []float64
	intercept     float64
}

var _ Classifier = (*LogisticModel)(nil)

func newLogisticModel(a *Artifact) *LogisticModel {
	m := &LogisticModel{
		schemaVersion: a.SchemaVersion,
		trainedAt:     a.TrainedAt,
		coef:          append([]float64(nil), a.Coefficients...),
		intercept:     a.Intercept,
	}

	offset := 0
	for _, name := range a.Features {
		if sc, ok := a.Numeric[name]; ok {
			m.numeric = append(m.numeric, column{name: name, offset: offset, scaler: sc})
			offset++
		}
	}
	for _, name := range a.Features {
		cats, ok := a.Categorical[name]
		if !ok {
			continue
		}
		idx := make(map[string]int, len(cats))
		for i, c := range cats {
			idx[c] = i
		}
		m.categorical = append(m.categorical, column{name: name, offset: offset, cats: idx})
		offset += len(cats)
	}
	return m
}

// SchemaVersion reports the feature schema the model was fit on.
func (m *LogisticModel) SchemaVersion() string { return m.schemaVersion }

// TrainedAt is the free-form training timestamp stored in the artifact.
func (m *LogisticModel) TrainedAt() string { return m.trainedAt }

// Width is the size of the encoded feature vector.
func (m *LogisticModel) Width() int { return len(m.coef) }

// Encode maps a record onto the model's encoded feature space.
// Categories the model never saw encode to all zeros.
func (m *LogisticModel) Encode(r features.Record) ([]float64, error) {
	x := make([]float64, len(m.coef))
	for _, col := range m.numeric {
		f, ok := r.Field(col.name)
		if !ok || f.Kind != features.KindNumeric {
			return nil, fmt.Errorf("encode: record has no numeric field %q", col.name)
		}
		x[col.offset] = (f.Number - col.scaler.Mean) / col.scaler.Scale
	}
	for _, col := range m.categorical {
		f, ok := r.Field(col.name)
		if !ok || f.Kind != features.KindCategorical {
			return nil, fmt.Errorf("encode: record has no categorical field %q", col.name)
		}
		if i, known := col.cats[f.Text]; known {
			x[col.offset+i] = 1
		}
	}
	return x, nil
}

// PredictProba implements Classifier.
func (m *LogisticModel) PredictProba(ctx context.Context, records []features.Record) ([][2]float64, error) {
	out := make([][2]float64, 0, len(records))
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x, err := m.Encode(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		z := m.intercept
		for j, v := range x {
			z += m.coef[j] * v
		}
		p := sigmoid(z)
		out = append(out, [2]float64{1 - p, p})
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
