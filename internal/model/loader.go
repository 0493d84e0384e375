// Package model loads the serialized churn classifier and evaluates it.
//
// The artifact is loaded once per process (see cmd/server) and checked
// against features.Schema before the service starts. A model whose expected
// input shape disagrees with the schema never serves a prediction.
package model

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/TimurManjosov/churnguard/internal/features"
)

// ErrIncompatibleSchema is wrapped by every compatibility failure.
var ErrIncompatibleSchema = errors.New("model artifact incompatible with feature schema")

// Load stages reported in LoadError.
const (
	StageRead          = "read"
	StageValidate      = "validate"
	StageDecode        = "decode"
	StageCompatibility = "compatibility"
)

// LoadError describes why a model artifact could not be loaded.
type LoadError struct {
	Path  string
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load model: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("load model %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the artifact at path and returns a ready classifier.
func Load(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: StageRead, Err: err}
	}
	m, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Parse validates and decodes artifact bytes.
func Parse(data []byte) (*LogisticModel, error) {
	if err := validateDocument(data); err != nil {
		return nil, &LoadError{Stage: StageValidate, Err: err}
	}
	a, err := decodeArtifact(data)
	if err != nil {
		return nil, &LoadError{Stage: StageDecode, Err: err}
	}
	return New(a)
}

// New builds a classifier from an already decoded artifact.
func New(a *Artifact) (*LogisticModel, error) {
	if err := CheckCompatibility(a); err != nil {
		return nil, &LoadError{Stage: StageCompatibility, Err: err}
	}
	return newLogisticModel(a), nil
}

// CheckCompatibility verifies the artifact was fit on exactly the fields,
// order, kinds and categories of features.Schema.
func CheckCompatibility(a *Artifact) error {
	if a.SchemaVersion != features.SchemaVersion {
		return fmt.Errorf("%w: schema version %q, want %q", ErrIncompatibleSchema, a.SchemaVersion, features.SchemaVersion)
	}
	if a.ModelType != ModelTypeLogistic {
		return fmt.Errorf("%w: model type %q, want %q", ErrIncompatibleSchema, a.ModelType, ModelTypeLogistic)
	}
	if !slices.Equal(a.Classes, []int{0, 1}) {
		return fmt.Errorf("%w: classes %v, want [0 1]", ErrIncompatibleSchema, a.Classes)
	}

	names := features.Names()
	if len(a.Features) != len(names) {
		return fmt.Errorf("%w: %d features, want %d", ErrIncompatibleSchema, len(a.Features), len(names))
	}
	for i, name := range names {
		if a.Features[i] != name {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrIncompatibleSchema, i, a.Features[i], name)
		}
	}

	width := 0
	for _, spec := range features.Schema() {
		switch spec.Kind {
		case features.KindNumeric:
			sc, ok := a.Numeric[spec.Name]
			if !ok {
				return fmt.Errorf("%w: no scaler for numeric feature %q", ErrIncompatibleSchema, spec.Name)
			}
			if sc.Scale == 0 {
				return fmt.Errorf("%w: zero scale for %q", ErrIncompatibleSchema, spec.Name)
			}
			if _, dup := a.Categorical[spec.Name]; dup {
				return fmt.Errorf("%w: %q is numeric but has categories", ErrIncompatibleSchema, spec.Name)
			}
			width++
		case features.KindCategorical:
			cats, ok := a.Categorical[spec.Name]
			if !ok {
				return fmt.Errorf("%w: no categories for categorical feature %q", ErrIncompatibleSchema, spec.Name)
			}
			if _, dup := a.Numeric[spec.Name]; dup {
				return fmt.Errorf("%w: %q is categorical but has a scaler", ErrIncompatibleSchema, spec.Name)
			}
			// Unknown categories would silently encode to all zeros.
			for _, want := range spec.Categories {
				if !slices.Contains(cats, want) {
					return fmt.Errorf("%w: value %q of %q unknown to model", ErrIncompatibleSchema, want, spec.Name)
				}
			}
			width += len(cats)
		}
	}
	if len(a.Numeric)+len(a.Categorical) != len(names) {
		return fmt.Errorf("%w: artifact describes columns outside the schema", ErrIncompatibleSchema)
	}
	if len(a.Coefficients) != width {
		return fmt.Errorf("%w: %d coefficients, encoded width is %d", ErrIncompatibleSchema, len(a.Coefficients), width)
	}
	return nil
}
