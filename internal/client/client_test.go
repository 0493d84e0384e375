package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/testutil"
)

func newClient(t *testing.T, churn float64) (*Client, *testutil.StubClassifier) {
	t.Helper()
	server, stub := testutil.NewTestServer(t, churn)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL + "/"), stub
}

func TestPredict(t *testing.T) {
	c, stub := newClient(t, 0.82)

	p, err := c.Predict(context.Background(), testutil.HighRiskInput())
	require.NoError(t, err)

	assert.Equal(t, "82.0%", p.Display)
	assert.Equal(t, "High", p.Tier)
	assert.Equal(t, "Immediate retention action required.", p.Message)
	assert.InDelta(t, 82.0, p.Probability, 1e-9)
	assert.Len(t, p.Insights, 4)
	assert.Equal(t, features.SchemaVersion, p.SchemaVersion)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 1, stub.Calls())
}

func TestPredict_ValidationError(t *testing.T) {
	c, stub := newClient(t, 0.82)

	in := testutil.HighRiskInput()
	in.Tenure = 99
	_, err := c.Predict(context.Background(), in)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, "Tenure must be between 0 and 72 months", apiErr.Fields["tenure"])
	assert.Contains(t, err.Error(), "tenure: Tenure must be between 0 and 72 months")
	assert.Zero(t, stub.Calls())
}

func TestPredict_InferenceFailure(t *testing.T) {
	c, stub := newClient(t, 0.82)
	stub.Fail(errors.New("down"))

	_, err := c.Predict(context.Background(), testutil.HighRiskInput())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "INFERENCE_FAILED", apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestSchema(t *testing.T) {
	c, _ := newClient(t, 0.1)

	s, err := c.Schema(context.Background())
	require.NoError(t, err)

	assert.Equal(t, features.SchemaVersion, s.Version)
	require.Len(t, s.Fields, features.FieldCount)
	assert.Equal(t, features.Names(), fieldNames(s.Fields))
}

func TestDo_PlainTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).Schema(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "gateway down", apiErr.Message)
}

func fieldNames(fields []features.FieldSpec) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
