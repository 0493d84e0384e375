package validation

import (
	"math"
	"testing"

	"github.com/TimurManjosov/churnguard/internal/features"
)

func TestValidateInput_Defaults(t *testing.T) {
	result := ValidateInput(features.DefaultInput())
	if !result.Valid {
		t.Errorf("Expected default input to be valid, got errors: %v", result.Errors)
	}
}

func TestValidateInput_Fields(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(in *features.Input)
		wantField   string
		wantMessage string
	}{
		{
			name:        "missing gender",
			mutate:      func(in *features.Input) { in.Gender = "" },
			wantField:   KeyGender,
			wantMessage: "Gender is required",
		},
		{
			name:        "unknown gender",
			mutate:      func(in *features.Input) { in.Gender = "Other" },
			wantField:   KeyGender,
			wantMessage: "Gender must be one of: Male, Female",
		},
		{
			name:        "senior citizen as number",
			mutate:      func(in *features.Input) { in.SeniorCitizen = "1" },
			wantField:   KeySeniorCitizen,
			wantMessage: "Senior citizen must be one of: Yes, No",
		},
		{
			name:        "lowercase contract",
			mutate:      func(in *features.Input) { in.Contract = "month-to-month" },
			wantField:   KeyContract,
			wantMessage: "Contract must be one of: Month-to-month, One year, Two year",
		},
		{
			name:        "negative tenure",
			mutate:      func(in *features.Input) { in.Tenure = -1 },
			wantField:   KeyTenure,
			wantMessage: "Tenure must be between 0 and 72 months",
		},
		{
			name:        "tenure above slider",
			mutate:      func(in *features.Input) { in.Tenure = 73 },
			wantField:   KeyTenure,
			wantMessage: "Tenure must be between 0 and 72 months",
		},
		{
			name:        "monthly charge below minimum",
			mutate:      func(in *features.Input) { in.MonthlyCharges = 17.99 },
			wantField:   KeyMonthlyCharges,
			wantMessage: "Monthly charges must be between 18.0 and 120.0",
		},
		{
			name:        "total charge NaN",
			mutate:      func(in *features.Input) { in.TotalCharges = math.NaN() },
			wantField:   KeyTotalCharges,
			wantMessage: "Total charges must be between 0.0 and 9000.0",
		},
		{
			name:        "unknown payment method",
			mutate:      func(in *features.Input) { in.PaymentMethod = "Cash" },
			wantField:   KeyPaymentMethod,
			wantMessage: "Payment method must be one of: Electronic check, Mailed check, Bank transfer (automatic), Credit card (automatic)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := features.DefaultInput()
			tt.mutate(&in)

			result := ValidateInput(in)
			if result.Valid {
				t.Fatal("Expected validation to fail")
			}
			if len(result.Errors) != 1 {
				t.Errorf("Expected exactly 1 error, got %v", result.Errors)
			}
			if got := result.Errors[tt.wantField]; got != tt.wantMessage {
				t.Errorf("Expected %s error %q, got %q", tt.wantField, tt.wantMessage, got)
			}
		})
	}
}

func TestValidateInput_Bounds(t *testing.T) {
	in := features.DefaultInput()
	in.Tenure = features.TenureMax
	in.MonthlyCharges = features.MonthlyChargesMin
	in.TotalCharges = features.TotalChargesMax

	if result := ValidateInput(in); !result.Valid {
		t.Errorf("Expected inclusive bounds to be valid, got %v", result.Errors)
	}
}

func TestValidateInput_NoCrossFieldCheck(t *testing.T) {
	in := features.DefaultInput()
	in.Tenure = 72
	in.MonthlyCharges = 120
	in.TotalCharges = 0

	if result := ValidateInput(in); !result.Valid {
		t.Errorf("TotalCharges must not be checked against tenure, got %v", result.Errors)
	}
}

func TestValidationResult_FirstErrorWins(t *testing.T) {
	result := NewValidationResult()
	result.AddError("tenure", "first")
	result.AddError("tenure", "second")

	if result.Errors["tenure"] != "first" {
		t.Errorf("Expected first error to be kept, got %q", result.Errors["tenure"])
	}
}

func TestValidatePresent(t *testing.T) {
	if result := ValidatePresent(KeyTenure, "Tenure", true); !result.Valid {
		t.Errorf("Expected present value to be valid, got %v", result.Errors)
	}

	result := ValidatePresent(KeyTenure, "Tenure", false)
	if result.Valid {
		t.Fatal("Expected missing value to be invalid")
	}
	if result.Errors[KeyTenure] != "Tenure is required" {
		t.Errorf("Expected 'Tenure is required', got '%s'", result.Errors[KeyTenure])
	}
}
