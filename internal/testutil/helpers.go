package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/TimurManjosov/churnguard/internal/api"
	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/predict"
)

// StubClassifier returns a fixed churn probability for every record.
// Safe for concurrent use.
type StubClassifier struct {
	mu    sync.Mutex
	churn float64
	err   error
	block bool
	calls int
}

func NewStubClassifier(churn float64) *StubClassifier {
	return &StubClassifier{churn: churn}
}

// Fail makes every following call return err.
func (s *StubClassifier) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// BlockUntilDone makes every following call wait for its context to end.
func (s *StubClassifier) BlockUntilDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = true
}

// Calls reports how many times PredictProba ran.
func (s *StubClassifier) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *StubClassifier) PredictProba(ctx context.Context, records []features.Record) ([][2]float64, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([][2]float64, len(records))
	for i := range records {
		out[i] = [2]float64{1 - s.churn, s.churn}
	}
	return out, nil
}

// NewTestServer creates a server backed by a stub classifier. opts, when
// given, replaces the default options.
func NewTestServer(t *testing.T, churn float64, opts ...api.Options) (*api.Server, *StubClassifier) {
	t.Helper()
	var o api.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	stub := NewStubClassifier(churn)
	server := api.NewServer(predict.NewService(stub), zerolog.Nop(), o)
	return server, stub
}

// HighRiskInput is a new month-to-month customer with high charges.
func HighRiskInput() features.Input {
	return features.Input{
		Gender:           features.Female,
		SeniorCitizen:    features.No,
		Partner:          features.Yes,
		Dependents:       features.No,
		Tenure:           2,
		PhoneService:     features.Yes,
		Contract:         features.ContractMonthToMonth,
		PaperlessBilling: features.Yes,
		PaymentMethod:    features.PaymentElectronicCheck,
		MonthlyCharges:   95,
		TotalCharges:     200,
	}
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method  string
	Path    string
	Body    string
	Form    url.Values
	Headers map[string]string
}

// Do executes the HTTP request and returns the response recorder. Form takes
// precedence over Body.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	contentType := ""
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.Body != "":
		body = bytes.NewBufferString(r.Body)
		contentType = "application/json"
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
