// Package risk turns a patient's inputs into a heart disease risk
// assessment using a loaded classifier.
package risk

import (
	"errors"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"heartrisk/ml"
	"heartrisk/patient"
)

var (
	ErrNoModel           = errors.New("no classifier loaded")
	ErrInvalidPrediction = errors.New("invalid classifier output")
)

// Assessor is the read-only prediction service shared by all requests.
// The classifier is never mutated after construction, so results are
// cached by feature vector.
type Assessor struct {
	model ml.Classifier
	cache *lru.Cache[patient.Vector, Assessment]
}

// NewAssessor wraps model. When model declares its feature layout it must
// match patient.FeatureNames. cacheSize <= 0 disables caching.
func NewAssessor(model ml.Classifier, cacheSize int) (*Assessor, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if m, ok := model.(ml.Model); ok {
		if err := ml.CheckFeatures(m, patient.FeatureNames()); err != nil {
			return nil, err
		}
	}
	a := &Assessor{model: model}
	if cacheSize > 0 {
		cache, err := lru.New[patient.Vector, Assessment](cacheSize)
		if err != nil {
			return nil, err
		}
		a.cache = cache
	}
	return a, nil
}

// Model returns the wrapped classifier.
func (a *Assessor) Model() ml.Classifier { return a.model }

// Assess validates p, encodes it and asks the classifier for a label and
// the positive-class probability. Classifier failures are returned as is.
func (a *Assessor) Assess(p patient.Patient) (Assessment, error) {
	if err := p.Validate(); err != nil {
		return Assessment{}, err
	}
	vector := p.Vector()
	if a.cache != nil {
		if cached, ok := a.cache.Get(vector); ok {
			return cached, nil
		}
	}

	features := vector.Slice()
	label, err := a.model.Predict(features)
	if err != nil {
		return Assessment{}, fmt.Errorf("predict: %w", err)
	}
	positive, err := ml.PositiveProbability(a.model, features)
	if err != nil {
		return Assessment{}, fmt.Errorf("predict proba: %w", err)
	}

	result, err := newAssessment(label, positive)
	if err != nil {
		return Assessment{}, err
	}
	result.Features = vector

	if a.cache != nil {
		a.cache.Add(vector, result)
	}
	return result, nil
}

func newAssessment(label int, positive float64) (Assessment, error) {
	if math.IsNaN(positive) || positive < 0 || positive > 1 {
		return Assessment{}, fmt.Errorf("%w: probability %v", ErrInvalidPrediction, positive)
	}
	probability := positive * 100
	switch label {
	case 1:
		return Assessment{Label: 1, Risk: High, Probability: probability, Confidence: probability}, nil
	case 0:
		return Assessment{Label: 0, Risk: Low, Probability: probability, Confidence: 100 - probability}, nil
	}
	return Assessment{}, fmt.Errorf("%w: label %d", ErrInvalidPrediction, label)
}
