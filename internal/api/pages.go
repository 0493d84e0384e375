package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/TimurManjosov/churnguard/internal/features"
	"github.com/TimurManjosov/churnguard/internal/insights"
	"github.com/TimurManjosov/churnguard/internal/predict"
	"github.com/TimurManjosov/churnguard/internal/validation"
)

//go:embed templates/*.html static/*
var webFS embed.FS

var pages = template.Must(template.ParseFS(webFS, "templates/*.html"))

func staticFiles() fs.FS {
	sub, err := fs.Sub(webFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// control is one form widget. Kind is "select", "range" or "number".
type control struct {
	Kind    string
	Name    string
	Label   string
	Options []string
	Value   string
	Min     string
	Max     string
	Step    string
	Error   string
}

type resultView struct {
	Percent        string
	PercentPrecise string
	Tenure         int
	Monthly        string
	Tier           string
	TierClass      string
	Message        string
	LeftNotes      []insights.Note
	RightNotes     []insights.Note
}

type pageData struct {
	Columns [3][]control
	Errors  map[string]string
	Result  *resultView
}

type errorPage struct {
	Status    int
	Title     string
	Message   string
	RequestID string
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func newPage(in features.Input, errs map[string]string, result *resultView) pageData {
	sel := func(name, label string, options []string, value string) control {
		return control{Kind: "select", Name: name, Label: label, Options: options, Value: value, Error: errs[name]}
	}
	num := func(kind, name, label, value string, min, max, step float64) control {
		return control{
			Kind: kind, Name: name, Label: label, Value: value,
			Min: strconv.FormatFloat(min, 'f', -1, 64), Max: strconv.FormatFloat(max, 'f', -1, 64),
			Step: strconv.FormatFloat(step, 'f', -1, 64), Error: errs[name],
		}
	}

	return pageData{
		Columns: [3][]control{
			{
				sel(validation.KeyGender, "Gender", features.Genders, in.Gender),
				sel(validation.KeySeniorCitizen, "Senior Citizen", []string{features.No, features.Yes}, in.SeniorCitizen),
				sel(validation.KeyPartner, "Partner", features.YesNo, in.Partner),
				sel(validation.KeyDependents, "Dependents", features.YesNo, in.Dependents),
			},
			{
				num("range", validation.KeyTenure, "Tenure (Months)", strconv.Itoa(in.Tenure),
					features.TenureMin, features.TenureMax, 1),
				num("number", validation.KeyMonthlyCharges, "Monthly Charges ($)", formatFloat(in.MonthlyCharges),
					features.MonthlyChargesMin, features.MonthlyChargesMax, 0.01),
				num("number", validation.KeyTotalCharges, "Total Charges ($)", formatFloat(in.TotalCharges),
					features.TotalChargesMin, features.TotalChargesMax, 0.01),
				sel(validation.KeyPaperlessBilling, "Paperless Billing", features.YesNo, in.PaperlessBilling),
			},
			{
				sel(validation.KeyContract, "Contract Type", features.Contracts, in.Contract),
				sel(validation.KeyPhoneService, "Phone Service", features.YesNo, in.PhoneService),
				sel(validation.KeyPaymentMethod, "Payment Method", features.PaymentMethods, in.PaymentMethod),
			},
		},
		Errors: errs,
		Result: result,
	}
}

func newResult(in features.Input, p predict.Prediction) *resultView {
	v := &resultView{
		Percent:        p.Percent(),
		PercentPrecise: p.PercentPrecise(),
		Tenure:         in.Tenure,
		Monthly:        fmt.Sprintf("$%.0f", in.MonthlyCharges),
		Tier:           string(p.Tier),
		TierClass:      p.Tier.CSSClass(),
		Message:        p.Message,
	}
	for _, n := range insights.Annotate(in) {
		switch n.Key {
		case insights.KeyContract, insights.KeyTenure:
			v.LeftNotes = append(v.LeftNotes, n)
		default:
			v.RightNotes = append(v.RightNotes, n)
		}
	}
	return v
}

// render executes the template into a buffer first so a template error never
// leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, status, "error.html", errorPage{
		Status:    status,
		Title:     http.StatusText(status),
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// handleIndex handles GET / ("awaiting input").
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", newPage(features.DefaultInput(), nil, nil))
}

// handlePredictForm handles POST /predict ("result displayed").
func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	in, errs := inputFromForm(r)
	if len(errs) == 0 {
		if result := validation.ValidateInput(in); !result.Valid {
			errs = result.Errors
		}
	}
	if len(errs) > 0 {
		s.render(w, http.StatusBadRequest, "index.html", newPage(in, errs, nil))
		return
	}

	p, err := s.score(r.Context(), in)
	if err != nil {
		if r.Context().Err() != nil {
			// the timeout middleware answers
			return
		}
		s.log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("prediction failed")
		s.renderError(w, r, http.StatusInternalServerError, "The churn model could not score this customer. No prediction was made.")
		return
	}

	s.render(w, http.StatusOK, "index.html", newPage(in, nil, newResult(in, p)))
}
