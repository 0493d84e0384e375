package features

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSeniorCitizen is returned when the senior citizen answer is neither Yes nor No.
var ErrSeniorCitizen = errors.New("senior citizen must be Yes or No")

// Input holds the ten user-provided answers from the form.
type Input struct {
	Gender           string  `json:"gender" yaml:"gender"`
	SeniorCitizen    string  `json:"seniorCitizen" yaml:"seniorCitizen"`
	Partner          string  `json:"partner" yaml:"partner"`
	Dependents       string  `json:"dependents" yaml:"dependents"`
	Tenure           int     `json:"tenure" yaml:"tenure"`
	PhoneService     string  `json:"phoneService" yaml:"phoneService"`
	Contract         string  `json:"contract" yaml:"contract"`
	PaperlessBilling string  `json:"paperlessBilling" yaml:"paperlessBilling"`
	PaymentMethod    string  `json:"paymentMethod" yaml:"paymentMethod"`
	MonthlyCharges   float64 `json:"monthlyCharges" yaml:"monthlyCharges"`
	TotalCharges     float64 `json:"totalCharges" yaml:"totalCharges"`
}

// DefaultInput returns the values the form shows before the user changes anything.
func DefaultInput() Input {
	return Input{
		Gender:           Male,
		SeniorCitizen:    No,
		Partner:          Yes,
		Dependents:       Yes,
		Tenure:           12,
		PhoneService:     Yes,
		Contract:         ContractMonthToMonth,
		PaperlessBilling: Yes,
		PaymentMethod:    PaymentElectronicCheck,
		MonthlyCharges:   65.0,
		TotalCharges:     1500.0,
	}
}

// Field is a single named value of a record. Categorical fields carry Text,
// numeric fields carry Number.
type Field struct {
	Name   string
	Kind   Kind
	Text   string
	Number float64
}

// Value returns the field value as a string or float64.
func (f Field) Value() any {
	if f.Kind == KindNumeric {
		return f.Number
	}
	return f.Text
}

func (f Field) String() string {
	if f.Kind == KindNumeric {
		return f.Name + "=" + strconv.FormatFloat(f.Number, 'g', -1, 64)
	}
	return f.Name + "=" + strconv.Quote(f.Text)
}

// Record is the ordered feature vector for one prediction. It is a value
// type; callers cannot mutate a record once Assemble has returned it.
type Record struct {
	fields [FieldCount]Field
}

// Assemble builds a record from the user's answers and the fixed defaults.
// Only the SeniorCitizen derivation can fail; ranges and option sets are the
// caller's responsibility (see package validation).
func Assemble(in Input) (Record, error) {
	senior, err := SeniorCitizenFlag(in.SeniorCitizen)
	if err != nil {
		return Record{}, err
	}

	var r Record
	for i, spec := range schema {
		f := Field{Name: spec.Name, Kind: spec.Kind}
		switch spec.Name {
		case FieldGender:
			f.Text = in.Gender
		case FieldSeniorCitizen:
			f.Number = float64(senior)
		case FieldPartner:
			f.Text = in.Partner
		case FieldDependents:
			f.Text = in.Dependents
		case FieldTenure:
			f.Number = float64(in.Tenure)
		case FieldPhoneService:
			f.Text = in.PhoneService
		case FieldContract:
			f.Text = in.Contract
		case FieldPaperlessBilling:
			f.Text = in.PaperlessBilling
		case FieldPaymentMethod:
			f.Text = in.PaymentMethod
		case FieldMonthlyCharges:
			f.Number = in.MonthlyCharges
		case FieldTotalCharges:
			f.Number = in.TotalCharges
		default:
			f.Text = spec.Fixed
		}
		r.fields[i] = f
	}
	return r, nil
}

// SeniorCitizenFlag maps the Yes/No answer to the 1/0 the model expects.
func SeniorCitizenFlag(answer string) (int, error) {
	switch answer {
	case Yes:
		return 1, nil
	case No:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrSeniorCitizen, answer)
	}
}

// Fields returns the record's fields in schema order.
func (r Record) Fields() []Field {
	out := make([]Field, FieldCount)
	copy(out, r.fields[:])
	return out
}

// Field looks up a field by name.
func (r Record) Field(name string) (Field, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
