package risk

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"heartrisk/patient"
)

// Level is the risk class shown to the user.
type Level string

const (
	Low  Level = "low"
	High Level = "high"
)

// Assessment is the outcome of one prediction. Probability is P(high risk)
// in percent; Confidence is the percentage shown to the user, which is
// Probability for high risk and 100-Probability for low risk.
type Assessment struct {
	Label       int            `json:"label"`
	Risk        Level          `json:"risk"`
	Probability float64        `json:"probability"`
	Confidence  float64        `json:"confidence"`
	Features    patient.Vector `json:"features"`
}

func (a Assessment) High() bool { return a.Risk == High }

func (a Assessment) Headline() string {
	if a.High() {
		return "HIGH RISK"
	}
	return "LOW RISK"
}

func (a Assessment) Badge() string {
	if a.High() {
		return "Heart Disease Detected"
	}
	return "Healthy Heart"
}

func (a Assessment) ConfidenceLabel() string {
	if a.High() {
		return "Risk Probability"
	}
	return "Health Confidence"
}

// ConfidenceText formats Confidence with two decimals, e.g. "81.69%".
func (a Assessment) ConfidenceText() string {
	return formatPercent(a.Confidence)
}

// Summary is the single-line text form used by the CLI and logs.
func (a Assessment) Summary() string {
	return a.Headline() + " (" + a.Badge() + ") " + a.ConfidenceLabel() + ": " + a.ConfidenceText()
}

func formatPercent(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f%%", v)
}
