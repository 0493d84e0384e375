// Package features defines the feature record consumed by the churn model and
// the versioned schema contract the model artifact is checked against.
package features

// SchemaVersion identifies the field set, order and encoding conventions the
// churn model was fit on. A model artifact declaring any other version is
// rejected at load time.
const SchemaVersion = "telco-churn/v1"

// Kind describes how the model encodes a field.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindNumeric     Kind = "numeric"
)

// Source tells whether a field value comes from the user or is a constant.
type Source string

const (
	SourceUser    Source = "user"
	SourceDerived Source = "derived"
	SourceFixed   Source = "fixed"
)

// Field names, exactly as the model was trained on them.
const (
	FieldGender           = "gender"
	FieldSeniorCitizen    = "SeniorCitizen"
	FieldPartner          = "Partner"
	FieldDependents       = "Dependents"
	FieldTenure           = "tenure"
	FieldPhoneService     = "PhoneService"
	FieldMultipleLines    = "MultipleLines"
	FieldInternetService  = "InternetService"
	FieldOnlineSecurity   = "OnlineSecurity"
	FieldOnlineBackup     = "OnlineBackup"
	FieldDeviceProtection = "DeviceProtection"
	FieldTechSupport      = "TechSupport"
	FieldStreamingTV      = "StreamingTV"
	FieldStreamingMovies  = "StreamingMovies"
	FieldContract         = "Contract"
	FieldPaperlessBilling = "PaperlessBilling"
	FieldPaymentMethod    = "PaymentMethod"
	FieldMonthlyCharges   = "MonthlyCharges"
	FieldTotalCharges     = "TotalCharges"
)

// FieldCount is the number of fields in every record.
const FieldCount = 19

// Categorical option values.
const (
	Male   = "Male"
	Female = "Female"

	Yes = "Yes"
	No  = "No"

	ContractMonthToMonth = "Month-to-month"
	ContractOneYear      = "One year"
	ContractTwoYear      = "Two year"

	PaymentElectronicCheck = "Electronic check"
	PaymentMailedCheck     = "Mailed check"
	PaymentBankTransfer    = "Bank transfer (automatic)"
	PaymentCreditCard      = "Credit card (automatic)"

	// FiberOptic is the fixed InternetService value.
	FiberOptic = "Fiber optic"
)

// Input bounds enforced by the form controls and the server-side validator.
const (
	TenureMin         = 0
	TenureMax         = 72
	MonthlyChargesMin = 18.0
	MonthlyChargesMax = 120.0
	TotalChargesMin   = 0.0
	TotalChargesMax   = 9000.0
)

var (
	Genders        = []string{Male, Female}
	YesNo          = []string{Yes, No}
	Contracts      = []string{ContractMonthToMonth, ContractOneYear, ContractTwoYear}
	PaymentMethods = []string{PaymentElectronicCheck, PaymentMailedCheck, PaymentBankTransfer, PaymentCreditCard}
)

// FieldSpec is one entry of the schema contract.
type FieldSpec struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       Kind     `json:"kind" yaml:"kind"`
	Source     Source   `json:"source" yaml:"source"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Fixed      string   `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Min        *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

func bound(v float64) *float64 { return &v }

func fixed(name, value string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindCategorical, Source: SourceFixed, Categories: []string{value}, Fixed: value}
}

// schema is the ordered field list. Order matters: the model has no schema
// validation of its own and reads columns positionally.
var schema = [FieldCount]FieldSpec{
	{Name: FieldGender, Kind: KindCategorical, Source: SourceUser, Categories: Genders},
	{Name: FieldSeniorCitizen, Kind: KindNumeric, Source: SourceDerived, Min: bound(0), Max: bound(1)},
	{Name: FieldPartner, Kind: KindCategorical, Source: SourceUser, Categories: YesNo},
	{Name: FieldDependents, Kind: KindCategorical, Source: SourceUser, Categories: YesNo},
	{Name: FieldTenure, Kind: KindNumeric, Source: SourceUser, Min: bound(TenureMin), Max: bound(TenureMax)},
	{Name: FieldPhoneService, Kind: KindCategorical, Source: SourceUser, Categories: YesNo},
	fixed(FieldMultipleLines, No),
	fixed(FieldInternetService, FiberOptic),
	fixed(FieldOnlineSecurity, No),
	fixed(FieldOnlineBackup, No),
	fixed(FieldDeviceProtection, No),
	fixed(FieldTechSupport, No),
	fixed(FieldStreamingTV, No),
	fixed(FieldStreamingMovies, No),
	{Name: FieldContract, Kind: KindCategorical, Source: SourceUser, Categories: Contracts},
	{Name: FieldPaperlessBilling, Kind: KindCategorical, Source: SourceUser, Categories: YesNo},
	{Name: FieldPaymentMethod, Kind: KindCategorical, Source: SourceUser, Categories: PaymentMethods},
	{Name: FieldMonthlyCharges, Kind: KindNumeric, Source: SourceUser, Min: bound(MonthlyChargesMin), Max: bound(MonthlyChargesMax)},
	{Name: FieldTotalCharges, Kind: KindNumeric, Source: SourceUser, Min: bound(TotalChargesMin), Max: bound(TotalChargesMax)},
}

// Schema returns a copy of the ordered field specs.
func Schema() []FieldSpec {
	out := make([]FieldSpec, FieldCount)
	for i, f := range schema {
		f.Categories = append([]string(nil), f.Categories...)
		out[i] = f
	}
	return out
}

// Names returns the field names in schema order.
func Names() []string {
	names := make([]string, FieldCount)
	for i, f := range schema {
		names[i] = f.Name
	}
	return names
}

// FixedDefaults returns the constant fields and their values in schema order.
func FixedDefaults() []Field {
	var out []Field
	for _, f := range schema {
		if f.Source == SourceFixed {
			out = append(out, Field{Name: f.Name, Kind: KindCategorical, Text: f.Fixed})
		}
	}
	return out
}
