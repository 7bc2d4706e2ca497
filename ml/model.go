// Package ml loads serialized binary classifiers and runs inference on
// fixed-length feature vectors.
package ml

import (
	"errors"
	"fmt"
)

var (
	ErrModelNotFound    = errors.New("model file not found")
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrInvalidModel     = errors.New("invalid model")
	ErrFeatureMismatch  = errors.New("feature layout mismatch")
	ErrNotLoaded        = errors.New("model not loaded")
)

// Classifier is a binary classifier: label 0 is the negative class and
// label 1 the positive class.
type Classifier interface {
	Predict(features []float64) (int, error)
	// PredictProba returns the per-class probabilities, index = label.
	PredictProba(features []float64) ([]float64, error)
}

// Model is a Classifier backed by a serialized artifact. The service only
// reads artifacts; DecisionTree.Save and LogisticRegression.Save exist for
// tools that produce them and take the same file lock LoadModel honours.
type Model interface {
	Classifier
	Type() string
	NumFeatures() int
	FeatureNames() []string
}

// CheckFeatures verifies the model was trained on the given column layout.
// Names are compared only when the artifact declares them.
func CheckFeatures(m Model, names []string) error {
	if m.NumFeatures() != len(names) {
		return fmt.Errorf("%w: model expects %d features, input has %d", ErrFeatureMismatch, m.NumFeatures(), len(names))
	}
	declared := m.FeatureNames()
	if len(declared) == 0 {
		return nil
	}
	if len(declared) != len(names) {
		return fmt.Errorf("%w: model declares %d feature names, input has %d", ErrFeatureMismatch, len(declared), len(names))
	}
	for i := range names {
		if declared[i] != names[i] {
			return fmt.Errorf("%w: column %d is %q in model, %q in input", ErrFeatureMismatch, i, declared[i], names[i])
		}
	}
	return nil
}

// PositiveProbability returns P(label=1) for features.
func PositiveProbability(c Classifier, features []float64) (float64, error) {
	proba, err := c.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if len(proba) < 2 {
		return 0, fmt.Errorf("%w: expected 2 class probabilities, got %d", ErrInvalidModel, len(proba))
	}
	return proba[1], nil
}

func checkLen(features []float64, want int) error {
	if len(features) != want {
		return fmt.Errorf("%w: got %d features, want %d", ErrFeatureMismatch, len(features), want)
	}
	return nil
}
