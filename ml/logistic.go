package ml

import (
	"encoding/json"
	"fmt"
	"math"
)

const TypeLogisticRegression = "logistic_regression"

// LogisticRegression scores sigmoid(intercept + w·z) where z is x
// standardized by Mean and Scale when those are present.
type LogisticRegression struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Mean      []float64 `json:"mean,omitempty"`
	Scale     []float64 `json:"scale,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Names     []string  `json:"feature_names,omitempty"`
}

type logisticArtifact struct {
	Type string `json:"type"`
	LogisticRegression
}

func (lr *LogisticRegression) Type() string           { return TypeLogisticRegression }
func (lr *LogisticRegression) NumFeatures() int       { return len(lr.Weights) }
func (lr *LogisticRegression) FeatureNames() []string { return append([]string(nil), lr.Names...) }

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	p, err := lr.positive(features)
	if err != nil {
		return 0, err
	}
	if p >= lr.threshold() {
		return 1, nil
	}
	return 0, nil
}

func (lr *LogisticRegression) PredictProba(features []float64) ([]float64, error) {
	p, err := lr.positive(features)
	if err != nil {
		return nil, err
	}
	return []float64{1 - p, p}, nil
}

func (lr *LogisticRegression) positive(features []float64) (float64, error) {
	if err := lr.validate(); err != nil {
		return 0, err
	}
	if err := checkLen(features, len(lr.Weights)); err != nil {
		return 0, err
	}
	z := lr.Intercept
	for i, w := range lr.Weights {
		x := features[i]
		if len(lr.Mean) > 0 {
			x = (x - lr.Mean[i]) / lr.Scale[i]
		}
		z += w * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}

func (lr *LogisticRegression) threshold() float64 {
	if lr.Threshold == 0 {
		return 0.5
	}
	return lr.Threshold
}

func (lr *LogisticRegression) Save(path string) error {
	if err := lr.validate(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(logisticArtifact{Type: TypeLogisticRegression, LogisticRegression: *lr}, "", "  ")
	if err != nil {
		return err
	}
	return writeLocked(path, payload)
}

func (lr *LogisticRegression) UnmarshalJSON(payload []byte) error {
	// alias drops the method set so decoding does not recurse
	type alias LogisticRegression
	var artifact struct {
		Type string `json:"type"`
		alias
	}
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	loaded := LogisticRegression(artifact.alias)
	if err := loaded.validate(); err != nil {
		return err
	}
	*lr = loaded
	return nil
}

func (lr *LogisticRegression) validate() error {
	n := len(lr.Weights)
	if n == 0 {
		return fmt.Errorf("%w: logistic model has no weights", ErrInvalidModel)
	}
	if len(lr.Mean) != len(lr.Scale) || (len(lr.Mean) != 0 && len(lr.Mean) != n) {
		return fmt.Errorf("%w: mean/scale must both be empty or have %d entries", ErrInvalidModel, n)
	}
	for i, s := range lr.Scale {
		if s == 0 {
			return fmt.Errorf("%w: scale[%d] is zero", ErrInvalidModel, i)
		}
	}
	if len(lr.Names) != 0 && len(lr.Names) != n {
		return fmt.Errorf("%w: %d feature names for %d weights", ErrInvalidModel, len(lr.Names), n)
	}
	if lr.Threshold < 0 || lr.Threshold >= 1 {
		return fmt.Errorf("%w: threshold %v not in [0, 1)", ErrInvalidModel, lr.Threshold)
	}
	return nil
}
