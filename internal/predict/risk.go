// Package predict turns a feature record into a churn probability and a risk
// tier using the injected classifier.
package predict

import (
	"fmt"
	"strings"
)

// Tier is the risk bucket shown on the result banner.
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// Thresholds on the 0-100 percentage scale. Not configurable.
const (
	HighThreshold   = 65.0
	MediumThreshold = 35.0
)

const (
	MessageHigh   = "Immediate retention action required."
	MessageMedium = "Customer engagement recommended."
	MessageLow    = "Customer likely to stay."
)

// Classify maps a percentage to its tier and advisory message.
func Classify(percent float64) (Tier, string) {
	switch {
	case percent >= HighThreshold:
		return TierHigh, MessageHigh
	case percent >= MediumThreshold:
		return TierMedium, MessageMedium
	default:
		return TierLow, MessageLow
	}
}

// CSSClass is the banner style for the tier.
func (t Tier) CSSClass() string { return strings.ToLower(string(t)) }

// Prediction is the outcome of one inference.
type Prediction struct {
	Probability float64 `json:"probability"` // percentage, 0-100
	Tier        Tier    `json:"tier"`
	Message     string  `json:"message"`
}

// Percent formats the probability with one decimal, e.g. "82.0%".
func (p Prediction) Percent() string { return fmt.Sprintf("%.1f%%", p.Probability) }

// PercentPrecise formats the probability with two decimals, e.g. "82.00%".
func (p Prediction) PercentPrecise() string { return fmt.Sprintf("%.2f%%", p.Probability) }
