// Package validation checks customer answers at the HTTP boundary before a
// feature record is assembled from them.
package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/TimurManjosov/churnguard/internal/features"
)

// Form/JSON field keys used in error maps.
const (
	KeyGender           = "gender"
	KeySeniorCitizen    = "seniorCitizen"
	KeyPartner          = "partner"
	KeyDependents       = "dependents"
	KeyTenure           = "tenure"
	KeyPhoneService     = "phoneService"
	KeyContract         = "contract"
	KeyPaperlessBilling = "paperlessBilling"
	KeyPaymentMethod    = "paymentMethod"
	KeyMonthlyCharges   = "monthlyCharges"
	KeyTotalCharges     = "totalCharges"
)

// ValidationResult holds the result of validation
type ValidationResult struct {
	Valid  bool
	Errors map[string]string
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:  true,
		Errors: make(map[string]string),
	}
}

// AddError adds a field error and marks the result as invalid.
// The first error recorded for a field wins.
func (v *ValidationResult) AddError(field, message string) {
	v.Valid = false
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Merge combines another validation result into this one
func (v *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for field, message := range other.Errors {
		v.AddError(field, message)
	}
}

// ValidateInput checks every user answer against its option set or range.
// No cross-field checks are made: TotalCharges is not compared to
// tenure times MonthlyCharges.
func ValidateInput(in features.Input) *ValidationResult {
	result := NewValidationResult()

	result.Merge(ValidateChoice(KeyGender, "Gender", in.Gender, features.Genders))
	result.Merge(ValidateChoice(KeySeniorCitizen, "Senior citizen", in.SeniorCitizen, features.YesNo))
	result.Merge(ValidateChoice(KeyPartner, "Partner", in.Partner, features.YesNo))
	result.Merge(ValidateChoice(KeyDependents, "Dependents", in.Dependents, features.YesNo))
	result.Merge(ValidateTenure(in.Tenure))
	result.Merge(ValidateChoice(KeyPhoneService, "Phone service", in.PhoneService, features.YesNo))
	result.Merge(ValidateChoice(KeyContract, "Contract", in.Contract, features.Contracts))
	result.Merge(ValidateChoice(KeyPaperlessBilling, "Paperless billing", in.PaperlessBilling, features.YesNo))
	result.Merge(ValidateChoice(KeyPaymentMethod, "Payment method", in.PaymentMethod, features.PaymentMethods))
	result.Merge(ValidateRange(KeyMonthlyCharges, "Monthly charges", in.MonthlyCharges,
		features.MonthlyChargesMin, features.MonthlyChargesMax))
	result.Merge(ValidateRange(KeyTotalCharges, "Total charges", in.TotalCharges,
		features.TotalChargesMin, features.TotalChargesMax))

	return result
}

// ValidateChoice requires value to be one of options, matched exactly.
func ValidateChoice(key, label, value string, options []string) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(value) == "" {
		result.AddError(key, label+" is required")
		return result
	}

	if !slices.Contains(options, value) {
		result.AddError(key, fmt.Sprintf("%s must be one of: %s", label, strings.Join(options, ", ")))
	}

	return result
}

// ValidatePresent reports key as required when the caller left it out.
func ValidatePresent(key, label string, present bool) *ValidationResult {
	result := NewValidationResult()

	if !present {
		result.AddError(key, label+" is required")
	}

	return result
}

// ValidateTenure validates the tenure in months
func ValidateTenure(tenure int) *ValidationResult {
	result := NewValidationResult()

	if tenure < features.TenureMin || tenure > features.TenureMax {
		result.AddError(KeyTenure, fmt.Sprintf("Tenure must be between %d and %d months", features.TenureMin, features.TenureMax))
	}

	return result
}

// ValidateRange validates an inclusive numeric range
func ValidateRange(key, label string, value, min, max float64) *ValidationResult {
	result := NewValidationResult()

	if math.IsNaN(value) || math.IsInf(value, 0) || value < min || value > max {
		result.AddError(key, fmt.Sprintf("%s must be between %.1f and %.1f", label, min, max))
	}

	return result
}
