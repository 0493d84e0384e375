package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimurManjosov/churnguard/internal/features"
)

func keys(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Key
	}
	return out
}

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name     string
		contract string
		tenure   int
		monthly  float64
		want     []string
	}{
		{"all rules", features.ContractMonthToMonth, 3, 85, []string{KeyContract, KeyTenure, KeyPricing, KeyModel}},
		{"none", features.ContractTwoYear, 40, 50, []string{KeyModel}},
		{"contract only", features.ContractMonthToMonth, 24, 70, []string{KeyContract, KeyModel}},
		{"tenure boundary is not new", features.ContractOneYear, 12, 20, []string{KeyModel}},
		{"tenure just below", features.ContractOneYear, 11, 20, []string{KeyTenure, KeyModel}},
		{"pricing strictly above 70", features.ContractOneYear, 30, 70.01, []string{KeyPricing, KeyModel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := features.DefaultInput()
			in.Contract = tt.contract
			in.Tenure = tt.tenure
			in.MonthlyCharges = tt.monthly

			assert.Equal(t, tt.want, keys(Annotate(in)))
		})
	}
}

func TestAnnotate_ModelNoteIsNotHeuristic(t *testing.T) {
	in := features.DefaultInput()
	in.Contract = features.ContractMonthToMonth
	in.Tenure = 3
	in.MonthlyCharges = 85

	notes := Annotate(in)
	require.Len(t, notes, 4)
	for _, n := range notes[:3] {
		assert.True(t, n.Heuristic, n.Title)
	}

	last := notes[len(notes)-1]
	assert.Equal(t, "Model Insight", last.Title)
	assert.False(t, last.Heuristic)
}

func TestAnnotate_Texts(t *testing.T) {
	in := features.DefaultInput()
	in.Contract = features.ContractMonthToMonth
	in.Tenure = 2
	in.MonthlyCharges = 95

	notes := Annotate(in)
	assert.Equal(t, "Contract Risk", notes[0].Title)
	assert.Equal(t, "Month-to-month contracts have higher churn rates.", notes[0].Text)
	assert.Equal(t, "New Customer Risk", notes[1].Title)
	assert.Equal(t, "Low-tenure customers churn more frequently.", notes[1].Text)
	assert.Equal(t, "Pricing Impact", notes[2].Title)
	assert.Equal(t, "Higher monthly charges increase churn probability.", notes[2].Text)
}
