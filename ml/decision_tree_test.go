package ml

import (
	"errors"
	"math"
	"testing"
)

// stump splits on feature 0 at 0.5: left leaf mostly negative, right leaf
// mostly positive.
func stump(t *testing.T) *DecisionTree {
	t.Helper()
	model, err := NewDecisionTree(2, []string{"a", "b"}, []TreeNode{
		{FeatureIdx: 0, Threshold: 0.5, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, Value: []float64{30, 10}},
		{IsLeaf: true, Value: []float64{5, 15}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return model
}

func TestDecisionTreePredict(t *testing.T) {
	model := stump(t)

	label, err := model.Predict([]float64{0.1, 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}

	label, err = model.Predict([]float64{0.9, 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
}

func TestDecisionTreePredictProba(t *testing.T) {
	model := stump(t)

	proba, err := model.PredictProba([]float64{0.9, 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proba) != 2 {
		t.Fatalf("expected 2 probabilities, got %d", len(proba))
	}
	if math.Abs(proba[1]-0.75) > 1e-9 || math.Abs(proba[0]+proba[1]-1) > 1e-9 {
		t.Fatalf("unexpected probabilities: %v", proba)
	}
}

func TestDecisionTreeLeafWithoutCounts(t *testing.T) {
	model, err := NewDecisionTree(1, nil, []TreeNode{{IsLeaf: true, ClassLabel: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	proba, err := model.PredictProba([]float64{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proba[0] != 0 || proba[1] != 1 {
		t.Fatalf("unexpected probabilities: %v", proba)
	}
}

func TestDecisionTreeRejectsWrongVectorLength(t *testing.T) {
	model := stump(t)
	if _, err := model.Predict([]float64{1}); !errors.Is(err, ErrFeatureMismatch) {
		t.Fatalf("expected ErrFeatureMismatch, got %v", err)
	}
}

func TestDecisionTreeValidate(t *testing.T) {
	cases := map[string][]TreeNode{
		"empty":           nil,
		"backward child":  {{FeatureIdx: 0, LeftChild: 0, RightChild: 1}, {IsLeaf: true}},
		"child too large": {{FeatureIdx: 0, LeftChild: 1, RightChild: 5}, {IsLeaf: true}},
		"feature range":   {{FeatureIdx: 7, LeftChild: 1, RightChild: 2}, {IsLeaf: true}, {IsLeaf: true}},
		"label":           {{IsLeaf: true, ClassLabel: 2}},
		"counts":          {{IsLeaf: true, Value: []float64{0, 0}}},
		"three classes":   {{IsLeaf: true, Value: []float64{1, 1, 1}}},
	}
	for name, nodes := range cases {
		if _, err := NewDecisionTree(2, nil, nodes); !errors.Is(err, ErrInvalidModel) {
			t.Fatalf("%s: expected ErrInvalidModel, got %v", name, err)
		}
	}
}
