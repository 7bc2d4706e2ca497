package patient

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input is one submission as the form and the JSON API carry it: numbers as
// integers, selectors as their display labels. The bounds in the validate
// tags are the ones Fields reports.
type Input struct {
	Age         int    `json:"age" validate:"required,min=10,max=100"`
	Gender      string `json:"gender" validate:"required,oneof=Female Male"`
	Height      int    `json:"height" validate:"required,min=50,max=250"`
	Weight      int    `json:"weight" validate:"required,min=10,max=200"`
	Systolic    int    `json:"ap_hi" validate:"required,min=50,max=250"`
	Diastolic   int    `json:"ap_lo" validate:"required,min=30,max=150"`
	Cholesterol string `json:"cholesterol" validate:"required,oneof=Normal 'Above Normal' 'Well Above Normal'"`
	Glucose     string `json:"gluc" validate:"required,oneof=Normal 'Above Normal' 'Well Above Normal'"`
	Smoking     string `json:"smoke" validate:"required,oneof=No Yes"`
	Alcohol     string `json:"alco" validate:"required,oneof=No Yes"`
	Active      string `json:"active" validate:"required,oneof=No Yes"`
}

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their form name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Patient validates in and converts the selector labels to their typed
// values. The first failing field, in form order, is returned as a
// *FieldError.
func (in Input) Patient() (Patient, error) {
	if err := validate.Struct(in); err != nil {
		return Patient{}, fieldError(err)
	}

	p := Patient{
		Age:       in.Age,
		Height:    in.Height,
		Weight:    in.Weight,
		Systolic:  in.Systolic,
		Diastolic: in.Diastolic,
	}
	selectors := []struct {
		name  string
		parse func() error
	}{
		{"gender", func() (err error) { p.Gender, err = ParseGender(in.Gender); return }},
		{"cholesterol", func() (err error) { p.Cholesterol, err = ParseLevel(in.Cholesterol); return }},
		{"gluc", func() (err error) { p.Glucose, err = ParseLevel(in.Glucose); return }},
		{"smoke", func() (err error) { p.Smoking, err = ParseYesNo(in.Smoking); return }},
		{"alco", func() (err error) { p.Alcohol, err = ParseYesNo(in.Alcohol); return }},
		{"active", func() (err error) { p.Active, err = ParseYesNo(in.Active); return }},
	}
	for _, s := range selectors {
		if err := s.parse(); err != nil {
			return Patient{}, &FieldError{Field: s.name, Err: err}
		}
	}
	return p, nil
}

func (in *Input) intField(name string) *int {
	switch name {
	case "age":
		return &in.Age
	case "height":
		return &in.Height
	case "weight":
		return &in.Weight
	case "ap_hi":
		return &in.Systolic
	case "ap_lo":
		return &in.Diastolic
	}
	panic("patient: no numeric field " + name)
}

// fieldError maps the first validation failure onto the package sentinels.
func fieldError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	f, ok := FieldByName(fe.Field())
	if !ok {
		return err
	}
	switch {
	case fe.Tag() == "oneof":
		return &FieldError{Field: f.Name, Err: fmt.Errorf("%q: %w", fe.Value(), ErrUnknownOption)}
	case f.Kind == KindNumber:
		// a zero number fails "required" before the bounds are checked
		return &FieldError{Field: f.Name, Err: fmt.Errorf("%v not in [%d, %d]: %w", fe.Value(), f.Min, f.Max, ErrOutOfRange)}
	default:
		return &FieldError{Field: f.Name, Err: ErrRequired}
	}
}
