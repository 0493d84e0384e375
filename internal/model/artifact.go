package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ModelTypeLogistic is the only model type this service can evaluate.
const ModelTypeLogistic = "logistic_regression"

// Artifact is the serialized form of a fitted preprocessing + logistic
// regression pipeline. The encoded feature space lists the numeric columns
// (standard-scaled) first, in feature order, followed by one one-hot block per
// categorical column, also in feature order. Coefficients follow that layout.
type Artifact struct {
	SchemaVersion string              `json:"schema_version"`
	ModelType     string              `json:"model_type"`
	TrainedAt     string              `json:"trained_at,omitempty"`
	Features      []string            `json:"features"`
	Numeric       map[string]Scaler   `json:"numeric"`
	Categorical   map[string][]string `json:"categorical"`
	Coefficients  []float64           `json:"coefficients"`
	Intercept     float64             `json:"intercept"`
	Classes       []int               `json:"classes"`
}

// Scaler holds standard-scaler parameters for one numeric column.
type Scaler struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

//go:embed artifact.schema.json
var artifactSchemaJSON []byte

const artifactSchemaURL = "schema://churn-model-artifact.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func artifactSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(artifactSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse artifact schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(artifactSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(artifactSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks raw artifact bytes against the embedded JSON Schema.
func validateDocument(data []byte) error {
	sch, err := artifactSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return sch.Validate(inst)
}

func decodeArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
