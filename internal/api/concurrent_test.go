package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/TimurManjosov/churnguard/internal/api"
	"github.com/TimurManjosov/churnguard/internal/model"
	"github.com/TimurManjosov/churnguard/internal/predict"
)

func TestConcurrent_PredictionsShareModel(t *testing.T) {
	m, err := model.Load("../../models/churn_model.json")
	if err != nil {
		t.Fatalf("Failed to load model: %v", err)
	}
	handler := api.NewServer(predict.NewService(m), zerolog.Nop(), api.Options{}).Router()

	body := `{"gender":"Female","seniorCitizen":"No","partner":"Yes","dependents":"No","tenure":2,
		"phoneService":"Yes","contract":"Month-to-month","paperlessBilling":"Yes",
		"paymentMethod":"Electronic check","monthlyCharges":95,"totalCharges":200}`

	const workers = 50
	results := make([]float64, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/v1/predict", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("Request %d: expected status 200, got %d", n, rr.Code)
				return
			}
			var resp api.PredictResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Errorf("Request %d: failed to decode: %v", n, err)
				return
			}
			results[n] = resp.Probability
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("Expected identical probabilities, got %v and %v", results[0], results[i])
		}
	}
	if results[0] < predict.HighThreshold {
		t.Errorf("Expected high-risk sample to score at least %.0f%%, got %.2f%%", predict.HighThreshold, results[0])
	}
}

func TestConcurrent_FormAndSchemaReads(t *testing.T) {
	handler, _ := newTestServer(t, 0.2, api.Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			if rr.Code != http.StatusOK {
				t.Errorf("GET / returned %d", rr.Code)
			}
		}()
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/schema", nil))
			if rr.Code != http.StatusOK {
				t.Errorf("GET /v1/schema returned %d", rr.Code)
			}
		}()
	}
	wg.Wait()
}
