package patient

// FieldKind says how a form control is rendered and parsed.
type FieldKind int

const (
	KindNumber FieldKind = iota
	KindGender
	KindLevel
	KindYesNo
)

func (k FieldKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindGender, KindLevel, KindYesNo:
		return "select"
	}
	return "unknown"
}

// Field describes one form control. Min, Max and Default apply to numeric
// fields; Options to selectors.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"-"`
	Type    string    `json:"type"`
	Min     int       `json:"min,omitempty"`
	Max     int       `json:"max,omitempty"`
	Default int       `json:"default,omitempty"`
	Options []string  `json:"options,omitempty"`
}

var fields = []Field{
	{Name: "age", Label: "Age", Kind: KindNumber, Min: 10, Max: 100, Default: 55},
	{Name: "gender", Label: "Gender", Kind: KindGender},
	{Name: "height", Label: "Height (cm)", Kind: KindNumber, Min: 50, Max: 250, Default: 165},
	{Name: "weight", Label: "Weight (kg)", Kind: KindNumber, Min: 10, Max: 200, Default: 75},
	{Name: "ap_hi", Label: "Systolic BP", Kind: KindNumber, Min: 50, Max: 250, Default: 140},
	{Name: "ap_lo", Label: "Diastolic BP", Kind: KindNumber, Min: 30, Max: 150, Default: 90},
	{Name: "cholesterol", Label: "Cholesterol", Kind: KindLevel},
	{Name: "gluc", Label: "Glucose", Kind: KindLevel},
	{Name: "smoke", Label: "Smoking", Kind: KindYesNo},
	{Name: "alco", Label: "Alcohol Consumption", Kind: KindYesNo},
	{Name: "active", Label: "Physical Activity", Kind: KindYesNo},
}

// Fields returns the form controls in feature vector order.
func Fields() []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Type = f.Kind.String()
		f.Options = optionLabels(f.Kind)
		out[i] = f
	}
	return out
}

// FieldByName looks a field up by its form name.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FeatureNames returns the column names in vector order.
func FeatureNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
