package http

import "fmt"

// Theme holds the palette name and labels of one page variant. Both
// variants share the template and the prediction logic.
type Theme struct {
	Name        string
	PageTitle   string
	Title       string
	Subtitle    string
	FormTitle   string
	ResultTitle string
	Button      string
	Prompt      string
}

var themes = map[string]Theme{
	"classic": {
		Name:        "classic",
		PageTitle:   "Heart Disease Predictor",
		Title:       "Heart Disease Prediction System",
		Subtitle:    "Professional AI-powered cardiovascular risk assessment",
		FormTitle:   "Patient Information",
		ResultTitle: "Health Risk Assessment",
		Button:      "Predict Heart Disease",
		Prompt:      "Please fill patient details and click Predict Heart Disease",
	},
	"clinical": {
		Name:        "clinical",
		PageTitle:   "Heart Disease Predictor",
		Title:       "Heart Disease Predictor",
		Subtitle:    "Cardiovascular risk screening",
		FormTitle:   "Patient Vitals",
		ResultTitle: "Risk Assessment",
		Button:      "Predict",
		Prompt:      "Enter the patient's details and press Predict",
	},
}

// ThemeByName returns the classic or clinical theme.
func ThemeByName(name string) (Theme, error) {
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}
