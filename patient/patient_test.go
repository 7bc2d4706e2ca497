package patient

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formValues(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestParseScenarioVector(t *testing.T) {
	p, err := Parse(formValues(map[string]string{
		"age":         "55",
		"gender":      "Male",
		"height":      "165",
		"weight":      "75",
		"ap_hi":       "140",
		"ap_lo":       "90",
		"cholesterol": "Normal",
		"gluc":        "Normal",
		"smoke":       "No",
		"alco":        "No",
		"active":      "Yes",
	}))
	require.NoError(t, err)

	assert.Equal(t, Vector{55, 2, 165, 75, 140, 90, 1, 1, 0, 0, 1}, p.Vector())
	assert.Len(t, p.Vector().Slice(), VectorLen)
}

func TestInputDecodesTextOptions(t *testing.T) {
	var in Input
	require.NoError(t, json.Unmarshal([]byte(`{"age":55,"gender":"Male","height":165,"weight":75,
		"ap_hi":140,"ap_lo":90,"cholesterol":"Normal","gluc":"Normal","smoke":"No","alco":"No","active":"Yes"}`), &in))

	p, err := in.Patient()
	require.NoError(t, err)
	assert.Equal(t, Vector{55, 2, 165, 75, 140, 90, 1, 1, 0, 0, 1}, p.Vector())

	encoded, err := json.Marshal(p.Input())
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"gender":"Male"`)
	assert.Contains(t, string(encoded), `"active":"Yes"`)
}

func TestEncodingTablesAreTotal(t *testing.T) {
	genders := map[Gender]float64{Female: 1, Male: 2}
	for _, g := range GenderOptions() {
		parsed, err := ParseGender(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
		assert.Equal(t, genders[g], g.Code())
	}
	assert.Len(t, GenderOptions(), len(genders))

	levels := map[Level]float64{Normal: 1, AboveNormal: 2, WellAboveNormal: 3}
	for _, l := range LevelOptions() {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
		assert.Equal(t, levels[l], l.Code())
	}
	assert.Len(t, LevelOptions(), len(levels))

	flags := map[YesNo]float64{No: 0, Yes: 1}
	for _, y := range YesNoOptions() {
		parsed, err := ParseYesNo(y.String())
		require.NoError(t, err)
		assert.Equal(t, y, parsed)
		assert.Equal(t, flags[y], y.Code())
	}
	assert.Len(t, YesNoOptions(), len(flags))
}

func TestParseRejectsUnknownOption(t *testing.T) {
	values := Default().Values()
	values["cholesterol"] = "High"

	_, err := Parse(formValues(values))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOption))

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "cholesterol", fieldErr.Field)
}

func TestParseRejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"age":    "9",
		"height": "251",
		"weight": "201",
		"ap_hi":  "49",
		"ap_lo":  "151",
	}
	for field, value := range cases {
		values := Default().Values()
		values[field] = value

		_, err := Parse(formValues(values))
		require.Error(t, err, field)
		assert.True(t, errors.Is(err, ErrOutOfRange), field)
	}
}

func TestParseRequiresEveryField(t *testing.T) {
	values := Default().Values()
	delete(values, "alco")

	_, err := Parse(formValues(values))
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "alco", fieldErr.Field)
	assert.ErrorIs(t, err, ErrRequired)
	assert.Equal(t, "Alcohol Consumption is required.", fieldErr.Message())
}

func TestParseRejectsNonInteger(t *testing.T) {
	values := Default().Values()
	values["weight"] = "72.5"

	_, err := Parse(formValues(values))
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "weight", fieldErr.Field)
	assert.ErrorIs(t, err, ErrNotInteger)
	assert.Equal(t, "Weight (kg) must be a whole number between 10 and 200.", fieldErr.Message())
	assert.NotContains(t, fieldErr.Message(), "strconv")
}

func TestInputBoundsMatchFields(t *testing.T) {
	for _, f := range Fields() {
		if f.Kind == KindNumber {
			for value, ok := range map[int]bool{f.Min: true, f.Max: true, f.Min - 1: false, f.Max + 1: false, 0: false} {
				in := Default().Input()
				*in.intField(f.Name) = value

				_, err := in.Patient()
				if ok {
					assert.NoError(t, err, "%s=%d", f.Name, value)
					continue
				}
				var fieldErr *FieldError
				require.True(t, errors.As(err, &fieldErr), "%s=%d", f.Name, value)
				assert.Equal(t, f.Name, fieldErr.Field)
				assert.ErrorIs(t, err, ErrOutOfRange)
			}
			continue
		}
		for _, option := range f.Options {
			values := Default().Values()
			values[f.Name] = option
			_, err := Parse(formValues(values))
			assert.NoError(t, err, "%s=%q", f.Name, option)
		}
	}
}

func TestInputReportsFirstFieldInFormOrder(t *testing.T) {
	in := Default().Input()
	in.Smoking = "Sometimes"
	in.Diastolic = 200

	_, err := in.Patient()
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "ap_lo", fieldErr.Field)
	assert.Equal(t, "Diastolic BP must be a whole number between 30 and 150.", fieldErr.Message())
}

func TestFieldErrorMessages(t *testing.T) {
	in := Default().Input()
	in.Cholesterol = "High"
	_, err := in.Patient()
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "Cholesterol must be one of: Normal, Above Normal, Well Above Normal.", fieldErr.Message())

	in = Default().Input()
	in.Gender = ""
	_, err = in.Patient()
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "gender", fieldErr.Field)
	assert.ErrorIs(t, err, ErrRequired)
}

func TestValidateRejectsInvalidEnum(t *testing.T) {
	p := Default()
	p.Glucose = Level(7)

	err := p.Validate()
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestNoCrossFieldValidation(t *testing.T) {
	p := Default()
	p.Systolic = 60
	p.Diastolic = 140
	assert.NoError(t, p.Validate())
}

func TestDefaultMatchesForm(t *testing.T) {
	p := Default()
	assert.Equal(t, Vector{55, 1, 165, 75, 140, 90, 1, 1, 0, 0, 0}, p.Vector())
	assert.NoError(t, p.Validate())

	roundTrip, err := Parse(formValues(p.Values()))
	require.NoError(t, err)
	assert.Equal(t, p, roundTrip)
}

func TestFieldsFollowVectorOrder(t *testing.T) {
	assert.Equal(t, []string{
		"age", "gender", "height", "weight", "ap_hi", "ap_lo",
		"cholesterol", "gluc", "smoke", "alco", "active",
	}, FeatureNames())
	assert.Len(t, Fields(), VectorLen)

	f, ok := FieldByName("gluc")
	require.True(t, ok)
	assert.Equal(t, "select", f.Type)
	assert.Equal(t, []string{"Normal", "Above Normal", "Well Above Normal"}, f.Options)
}
