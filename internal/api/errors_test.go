package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON")

	if resp.Error != "Bad Request" {
		t.Errorf("Expected Error 'Bad Request', got '%s'", resp.Error)
	}
	if resp.Message != "Invalid JSON" {
		t.Errorf("Expected Message 'Invalid JSON', got '%s'", resp.Message)
	}
	if resp.Code != ErrCodeInvalidJSON {
		t.Errorf("Expected Code ErrCodeInvalidJSON, got '%s'", resp.Code)
	}
}

func TestErrorResponse_WithFields(t *testing.T) {
	fields := map[string]string{
		"tenure":         "Tenure must be between 0 and 72 months",
		"monthlyCharges": "Monthly charges must be between 18.0 and 120.0",
	}

	resp := NewErrorResponse(http.StatusBadRequest, ErrCodeValidation, "Validation failed").
		WithFields(fields)

	if len(resp.Fields) != 2 {
		t.Errorf("Expected 2 fields, got %d", len(resp.Fields))
	}
	if resp.Fields["tenure"] != "Tenure must be between 0 and 72 months" {
		t.Errorf("Unexpected tenure field error '%s'", resp.Fields["tenure"])
	}
}

func TestErrorResponse_WithRequestID(t *testing.T) {
	resp := NewErrorResponse(http.StatusInternalServerError, ErrCodeInferenceFailed, "Prediction failed").
		WithRequestID("req-123")

	if resp.RequestID != "req-123" {
		t.Errorf("Expected RequestID 'req-123', got '%s'", resp.RequestID)
	}
}

func TestValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/predict", nil)

	ValidationError(w, r, "Validation failed", map[string]string{"gender": "Gender is required"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Code != ErrCodeValidation {
		t.Errorf("Expected Code ErrCodeValidation, got '%s'", resp.Code)
	}
	if resp.Fields["gender"] != "Gender is required" {
		t.Errorf("Expected field 'gender' error, got '%s'", resp.Fields["gender"])
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter, r *http.Request)
		wantCode int
		wantErr  ErrorCode
	}{
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			BadRequestError(w, r, ErrCodeInvalidJSON, "Invalid JSON")
		}, http.StatusBadRequest, ErrCodeInvalidJSON},
		{"wrong content type", func(w http.ResponseWriter, r *http.Request) {
			BadRequestError(w, r, ErrCodeBadRequest, "Content-Type must be application/json")
		}, http.StatusBadRequest, ErrCodeBadRequest},
		{"inference", func(w http.ResponseWriter, r *http.Request) {
			InferenceError(w, r, "Prediction failed")
		}, http.StatusInternalServerError, ErrCodeInferenceFailed},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			NotFoundError(w, r, "Not found")
		}, http.StatusNotFound, ErrCodeNotFound},
		{"too large", func(w http.ResponseWriter, r *http.Request) {
			RequestTooLargeError(w, r, "Request body exceeds limit")
		}, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			RateLimitedError(w, r, "Slow down")
		}, http.StatusTooManyRequests, ErrCodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/v1/predict", nil)
			tt.write(w, r)

			if w.Code != tt.wantCode {
				t.Errorf("Expected status %d, got %d", tt.wantCode, w.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Code != tt.wantErr {
				t.Errorf("Expected Code %s, got '%s'", tt.wantErr, resp.Code)
			}
		})
	}
}

func TestErrorResponseContentType(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/predict", nil)

	BadRequestError(w, r, ErrCodeInvalidJSON, "Invalid JSON")

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
	}
}
