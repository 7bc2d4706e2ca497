package ml

import (
	"errors"
	"math"
	"testing"
)

func TestLogisticRegressionPredict(t *testing.T) {
	model := &LogisticRegression{
		Weights:   []float64{2, -1},
		Intercept: -1,
		Mean:      []float64{1, 0},
		Scale:     []float64{0.5, 1},
	}

	// z = -1 + 2*((1.5-1)/0.5) - 1*0 = 1
	proba, err := model.PredictProba([]float64{1.5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 1 / (1 + math.Exp(-1))
	if math.Abs(proba[1]-want) > 1e-9 || math.Abs(proba[0]+proba[1]-1) > 1e-9 {
		t.Fatalf("unexpected probabilities: %v", proba)
	}

	label, err := model.Predict([]float64{1.5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}

	label, err = model.Predict([]float64{0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}
}

func TestLogisticRegressionThreshold(t *testing.T) {
	model := &LogisticRegression{Weights: []float64{1}, Threshold: 0.9}
	// sigmoid(1) ~ 0.73 stays below the custom threshold
	label, err := model.Predict([]float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}
}

func TestLogisticRegressionInvalid(t *testing.T) {
	cases := map[string]*LogisticRegression{
		"no weights": {},
		"zero scale": {Weights: []float64{1}, Mean: []float64{0}, Scale: []float64{0}},
		"mean only":  {Weights: []float64{1}, Mean: []float64{0}},
		"names":      {Weights: []float64{1}, Names: []string{"a", "b"}},
		"threshold":  {Weights: []float64{1}, Threshold: 1.5},
	}
	for name, model := range cases {
		if _, err := model.Predict([]float64{1}); !errors.Is(err, ErrInvalidModel) {
			t.Fatalf("%s: expected ErrInvalidModel, got %v", name, err)
		}
	}
}
