package patient

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrOutOfRange    = errors.New("value out of range")
	ErrNotInteger    = errors.New("not a whole number")
	ErrRequired      = errors.New("required")
)

// Gender keeps the coding found in the training data: Female=1, Male=2.
type Gender int

const (
	Female Gender = iota + 1
	Male
)

// Level is the three-step scale used for cholesterol and glucose.
type Level int

const (
	Normal Level = iota + 1
	AboveNormal
	WellAboveNormal
)

// YesNo is the answer to the smoking, alcohol and activity questions.
type YesNo int

const (
	No YesNo = iota
	Yes
)

func (g Gender) String() string {
	switch g {
	case Female:
		return "Female"
	case Male:
		return "Male"
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

func (g Gender) Code() float64 {
	switch g {
	case Female:
		return 1
	case Male:
		return 2
	}
	panic(fmt.Sprintf("patient: invalid gender %d", int(g)))
}

func (l Level) String() string {
	switch l {
	case Normal:
		return "Normal"
	case AboveNormal:
		return "Above Normal"
	case WellAboveNormal:
		return "Well Above Normal"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) Code() float64 {
	switch l {
	case Normal:
		return 1
	case AboveNormal:
		return 2
	case WellAboveNormal:
		return 3
	}
	panic(fmt.Sprintf("patient: invalid level %d", int(l)))
}

func (y YesNo) String() string {
	switch y {
	case No:
		return "No"
	case Yes:
		return "Yes"
	}
	return fmt.Sprintf("YesNo(%d)", int(y))
}

func (y YesNo) Code() float64 {
	switch y {
	case No:
		return 0
	case Yes:
		return 1
	}
	panic(fmt.Sprintf("patient: invalid yes/no %d", int(y)))
}

// GenderOptions, LevelOptions and YesNoOptions list every selectable value
// in display order. The first entry is the form default.
func GenderOptions() []Gender { return []Gender{Female, Male} }
func LevelOptions() []Level   { return []Level{Normal, AboveNormal, WellAboveNormal} }
func YesNoOptions() []YesNo   { return []YesNo{No, Yes} }

// ParseGender, ParseLevel and ParseYesNo map a display label to its value.
// Unknown labels wrap ErrUnknownOption.
func ParseGender(s string) (Gender, error) {
	for _, g := range GenderOptions() {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("gender %q: %w", s, ErrUnknownOption)
}

func ParseLevel(s string) (Level, error) {
	for _, l := range LevelOptions() {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("level %q: %w", s, ErrUnknownOption)
}

func ParseYesNo(s string) (YesNo, error) {
	for _, y := range YesNoOptions() {
		if y.String() == s {
			return y, nil
		}
	}
	return 0, fmt.Errorf("yes/no %q: %w", s, ErrUnknownOption)
}

// optionLabels returns the display labels of a selector field, or nil for
// numeric fields.
func optionLabels(kind FieldKind) []string {
	var labels []string
	switch kind {
	case KindGender:
		for _, g := range GenderOptions() {
			labels = append(labels, g.String())
		}
	case KindLevel:
		for _, l := range LevelOptions() {
			labels = append(labels, l.String())
		}
	case KindYesNo:
		for _, y := range YesNoOptions() {
			labels = append(labels, y.String())
		}
	}
	return labels
}
