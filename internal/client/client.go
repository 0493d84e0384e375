package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/insights"
)

// Client is an HTTP client for the churnguard JSON API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Prediction mirrors the POST /v1/predict response body.
type Prediction struct {
	ID            string          `json:"id" yaml:"id"`
	Probability   float64         `json:"probability" yaml:"probability"`
	Display       string          `json:"display" yaml:"display"`
	Tier          string          `json:"tier" yaml:"tier"`
	Message       string          `json:"message" yaml:"message"`
	Insights      []insights.Note `json:"insights" yaml:"insights"`
	SchemaVersion string          `json:"schemaVersion" yaml:"schemaVersion"`
	PredictedAt   string          `json:"predictedAt" yaml:"predictedAt"`
}

// Schema mirrors the GET /v1/schema response body.
type Schema struct {
	Version string               `json:"version" yaml:"version"`
	Fields  []features.FieldSpec `json:"fields" yaml:"fields"`
}

// APIError is a structured error returned by the server.
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	Fields     map[string]string `json:"fields,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (status %d, %s): %s", e.StatusCode, e.Code, e.Message)
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			parts = append(parts, k+": "+v)
		}
		msg += " [" + strings.Join(parts, "; ") + "]"
	}
	return msg
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Predict scores one customer.
func (c *Client) Predict(ctx context.Context, in features.Input) (*Prediction, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out Prediction
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Schema fetches the feature schema the server's model was trained on.
func (c *Client) Schema(ctx context.Context) (*Schema, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/schema", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var out Schema
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(bodyBytes, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(bodyBytes))
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
