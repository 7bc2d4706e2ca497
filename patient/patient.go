// Package patient holds the form inputs of one risk assessment and their
// encoding into the classifier's feature vector.
package patient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// VectorLen is the number of columns the classifier was trained on.
const VectorLen = 11

// Vector is the encoded feature vector in training column order.
type Vector [VectorLen]float64

// Slice returns a copy of the vector as a slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, VectorLen)
	copy(out, v[:])
	return out
}

// Patient is a validated submission with typed selector values. Build one
// with Parse or Input.Patient.
type Patient struct {
	Age         int
	Gender      Gender
	Height      int
	Weight      int
	Systolic    int
	Diastolic   int
	Cholesterol Level
	Glucose     Level
	Smoking     YesNo
	Alcohol     YesNo
	Active      YesNo
}

// FieldError reports which input field failed to parse or validate.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Message describes the problem in terms of the form label and the
// accepted values.
func (e *FieldError) Message() string {
	f, ok := FieldByName(e.Field)
	if !ok {
		return e.Error()
	}
	switch {
	case errors.Is(e.Err, ErrRequired):
		return f.Label + " is required."
	case errors.Is(e.Err, ErrOutOfRange), errors.Is(e.Err, ErrNotInteger):
		return fmt.Sprintf("%s must be a whole number between %d and %d.", f.Label, f.Min, f.Max)
	case errors.Is(e.Err, ErrUnknownOption):
		return fmt.Sprintf("%s must be one of: %s.", f.Label, strings.Join(f.Options, ", "))
	}
	return e.Error()
}

// Default returns the values the form is pre-filled with.
func Default() Patient {
	in := Input{
		Gender:      GenderOptions()[0].String(),
		Cholesterol: LevelOptions()[0].String(),
		Glucose:     LevelOptions()[0].String(),
		Smoking:     YesNoOptions()[0].String(),
		Alcohol:     YesNoOptions()[0].String(),
		Active:      YesNoOptions()[0].String(),
	}
	for _, f := range Fields() {
		if f.Kind == KindNumber {
			*in.intField(f.Name) = f.Default
		}
	}
	p, err := in.Patient()
	if err != nil {
		panic("patient: invalid defaults: " + err.Error())
	}
	return p
}

// Vector encodes p in the fixed column order
// age, gender, height, weight, ap_hi, ap_lo, cholesterol, gluc, smoke, alco, active.
func (p Patient) Vector() Vector {
	return Vector{
		float64(p.Age),
		p.Gender.Code(),
		float64(p.Height),
		float64(p.Weight),
		float64(p.Systolic),
		float64(p.Diastolic),
		p.Cholesterol.Code(),
		p.Glucose.Code(),
		p.Smoking.Code(),
		p.Alcohol.Code(),
		p.Active.Code(),
	}
}

// Input returns p in its submitted form.
func (p Patient) Input() Input {
	return Input{
		Age:         p.Age,
		Gender:      p.Gender.String(),
		Height:      p.Height,
		Weight:      p.Weight,
		Systolic:    p.Systolic,
		Diastolic:   p.Diastolic,
		Cholesterol: p.Cholesterol.String(),
		Glucose:     p.Glucose.String(),
		Smoking:     p.Smoking.String(),
		Alcohol:     p.Alcohol.String(),
		Active:      p.Active.String(),
	}
}

// Validate checks numeric bounds and that every selector holds a known
// option. Values built by hand rather than by Parse go through it before
// encoding.
func (p Patient) Validate() error {
	_, err := p.Input().Patient()
	return err
}

// Parse builds a Patient from text values looked up by field name, as
// submitted by the form or the command line.
func Parse(get func(name string) string) (Patient, error) {
	in := Input{
		Gender:      strings.TrimSpace(get("gender")),
		Cholesterol: strings.TrimSpace(get("cholesterol")),
		Glucose:     strings.TrimSpace(get("gluc")),
		Smoking:     strings.TrimSpace(get("smoke")),
		Alcohol:     strings.TrimSpace(get("alco")),
		Active:      strings.TrimSpace(get("active")),
	}
	for _, f := range Fields() {
		if f.Kind != KindNumber {
			continue
		}
		raw := strings.TrimSpace(get(f.Name))
		if raw == "" {
			return Patient{}, &FieldError{Field: f.Name, Err: ErrRequired}
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Patient{}, &FieldError{Field: f.Name, Err: fmt.Errorf("%q: %w", raw, ErrNotInteger)}
		}
		*in.intField(f.Name) = n
	}
	return in.Patient()
}

// Values renders p back into the text form values Parse accepts.
func (p Patient) Values() map[string]string {
	in := p.Input()
	values := map[string]string{
		"gender":      in.Gender,
		"cholesterol": in.Cholesterol,
		"gluc":        in.Glucose,
		"smoke":       in.Smoking,
		"alco":        in.Alcohol,
		"active":      in.Active,
	}
	for _, f := range Fields() {
		if f.Kind == KindNumber {
			values[f.Name] = strconv.Itoa(*in.intField(f.Name))
		}
	}
	return values
}
