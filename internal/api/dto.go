package api

import (
	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/insights"
	"github.com/TimurManjosov/churnguard/internal/validation"
)

// PredictRequest is the request payload for POST /v1/predict. Numeric
// answers are pointers so an omitted field is told apart from zero.
type PredictRequest struct {
	Gender           string   `json:"gender"`
	SeniorCitizen    string   `json:"seniorCitizen"`
	Partner          string   `json:"partner"`
	Dependents       string   `json:"dependents"`
	Tenure           *int     `json:"tenure"`
	PhoneService     string   `json:"phoneService"`
	Contract         string   `json:"contract"`
	PaperlessBilling string   `json:"paperlessBilling"`
	PaymentMethod    string   `json:"paymentMethod"`
	MonthlyCharges   *float64 `json:"monthlyCharges"`
	TotalCharges     *float64 `json:"totalCharges"`
}

// Input converts the request to form answers. Missing numbers become zero;
// call Validate first.
func (p PredictRequest) Input() features.Input {
	in := features.Input{
		Gender:           p.Gender,
		SeniorCitizen:    p.SeniorCitizen,
		Partner:          p.Partner,
		Dependents:       p.Dependents,
		PhoneService:     p.PhoneService,
		Contract:         p.Contract,
		PaperlessBilling: p.PaperlessBilling,
		PaymentMethod:    p.PaymentMethod,
	}
	if p.Tenure != nil {
		in.Tenure = *p.Tenure
	}
	if p.MonthlyCharges != nil {
		in.MonthlyCharges = *p.MonthlyCharges
	}
	if p.TotalCharges != nil {
		in.TotalCharges = *p.TotalCharges
	}
	return in
}

// Validate reports omitted numeric answers ahead of the range checks.
func (p PredictRequest) Validate() *validation.ValidationResult {
	result := validation.NewValidationResult()
	result.Merge(validation.ValidatePresent(validation.KeyTenure, "Tenure", p.Tenure != nil))
	result.Merge(validation.ValidatePresent(validation.KeyMonthlyCharges, "Monthly charges", p.MonthlyCharges != nil))
	result.Merge(validation.ValidatePresent(validation.KeyTotalCharges, "Total charges", p.TotalCharges != nil))
	result.Merge(validation.ValidateInput(p.Input()))
	return result
}

// PredictResponse is the response payload for POST /v1/predict.
type PredictResponse struct {
	ID            string          `json:"id"`
	Probability   float64         `json:"probability"` // percentage, 0-100
	Display       string          `json:"display"`     // e.g. "82.0%"
	Tier          string          `json:"tier"`
	Message       string          `json:"message"`
	Insights      []insights.Note `json:"insights"`
	SchemaVersion string          `json:"schemaVersion"`
	PredictedAt   string          `json:"predictedAt"`
}

// SchemaResponse is the response payload for GET /v1/schema.
type SchemaResponse struct {
	Version string               `json:"version"`
	Fields  []features.FieldSpec `json:"fields"`
}
