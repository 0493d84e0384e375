// Package insights produces static business notes from the raw form answers.
//
// The notes are rules of thumb evaluated on the input only. They never look
// at the model or its output and must not be presented as model explanations.
package insights

import "github.com/TimurManjosov/churnguard/internal/features"

// Note keys.
const (
	KeyContract = "contract"
	KeyTenure   = "tenure"
	KeyPricing  = "pricing"
	KeyModel    = "model"
)

// Heuristic thresholds.
const (
	NewCustomerTenure = 12 // months; strictly below is "new"
	HighMonthlyCharge = 70.0
)

// Note is one advisory card.
type Note struct {
	Key       string `json:"key" yaml:"key"`
	Icon      string `json:"icon" yaml:"icon"`
	Title     string `json:"title" yaml:"title"`
	Text      string `json:"text" yaml:"text"`
	Heuristic bool   `json:"heuristic" yaml:"heuristic"`
}

var (
	contractNote = Note{
		Key: KeyContract, Icon: "📄", Title: "Contract Risk",
		Text: "Month-to-month contracts have higher churn rates.", Heuristic: true,
	}
	tenureNote = Note{
		Key: KeyTenure, Icon: "⏳", Title: "New Customer Risk",
		Text: "Low-tenure customers churn more frequently.", Heuristic: true,
	}
	pricingNote = Note{
		Key: KeyPricing, Icon: "💸", Title: "Pricing Impact",
		Text: "Higher monthly charges increase churn probability.", Heuristic: true,
	}
	modelNote = Note{
		Key: KeyModel, Icon: "🤖", Title: "Model Insight",
		Text: "Prediction generated using a trained Logistic Regression churn model.",
	}
)

// Annotate returns the notes that apply to in. Each rule is independent; the
// model note is always last.
func Annotate(in features.Input) []Note {
	notes := make([]Note, 0, 4)
	if in.Contract == features.ContractMonthToMonth {
		notes = append(notes, contractNote)
	}
	if in.Tenure < NewCustomerTenure {
		notes = append(notes, tenureNote)
	}
	if in.MonthlyCharges > HighMonthlyCharge {
		notes = append(notes, pricingNote)
	}
	return append(notes, modelNote)
}
