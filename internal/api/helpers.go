package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/validation"
)

// ===== HTTP Helpers =====

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ===== Form Helpers =====

// inputFromForm reads the prediction form. Values that do not parse as
// numbers are reported per field and left at zero.
func inputFromForm(r *http.Request) (features.Input, map[string]string) {
	errs := map[string]string{}
	get := func(key string) string { return strings.TrimSpace(r.PostFormValue(key)) }

	in := features.Input{
		Gender:           get(validation.KeyGender),
		SeniorCitizen:    get(validation.KeySeniorCitizen),
		Partner:          get(validation.KeyPartner),
		Dependents:       get(validation.KeyDependents),
		PhoneService:     get(validation.KeyPhoneService),
		Contract:         get(validation.KeyContract),
		PaperlessBilling: get(validation.KeyPaperlessBilling),
		PaymentMethod:    get(validation.KeyPaymentMethod),
	}

	if v, err := strconv.Atoi(get(validation.KeyTenure)); err != nil {
		errs[validation.KeyTenure] = "Tenure must be a whole number of months"
	} else {
		in.Tenure = v
	}
	if v, err := parseAmount(get(validation.KeyMonthlyCharges)); err != nil {
		errs[validation.KeyMonthlyCharges] = "Monthly charges must be a number"
	} else {
		in.MonthlyCharges = v
	}
	if v, err := parseAmount(get(validation.KeyTotalCharges)); err != nil {
		errs[validation.KeyTotalCharges] = "Total charges must be a number"
	} else {
		in.TotalCharges = v
	}

	return in, errs
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}
