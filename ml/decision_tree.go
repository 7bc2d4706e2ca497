package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const TypeDecisionTree = "decision_tree"

// DecisionTree is a binary tree stored as a flat node array. Children are
// addressed by index and always come after their parent.
type DecisionTree struct {
	nodes        []TreeNode
	nFeatures    int
	featureNames []string
}

// TreeNode is one split or leaf. Value holds the training class counts of a
// leaf (index = label); when empty the leaf predicts ClassLabel with
// probability 1.
type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	ClassLabel int       `json:"class_label"`
	IsLeaf     bool      `json:"is_leaf"`
	Value      []float64 `json:"value,omitempty"`
}

type treeArtifact struct {
	Type         string     `json:"type"`
	NFeatures    int        `json:"n_features"`
	FeatureNames []string   `json:"feature_names,omitempty"`
	Nodes        []TreeNode `json:"nodes"`
}

// NewDecisionTree validates nodes against nFeatures. featureNames may be
// nil.
func NewDecisionTree(nFeatures int, featureNames []string, nodes []TreeNode) (*DecisionTree, error) {
	dt := &DecisionTree{
		nodes:        nodes,
		nFeatures:    nFeatures,
		featureNames: featureNames,
	}
	if err := dt.validate(); err != nil {
		return nil, err
	}
	return dt, nil
}

func (dt *DecisionTree) Type() string           { return TypeDecisionTree }
func (dt *DecisionTree) NumFeatures() int       { return dt.nFeatures }
func (dt *DecisionTree) FeatureNames() []string { return append([]string(nil), dt.featureNames...) }

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	leaf, err := dt.leaf(features)
	if err != nil {
		return 0, err
	}
	if len(leaf.Value) == 0 {
		return leaf.ClassLabel, nil
	}
	return argmax(leafProba(leaf)), nil
}

func (dt *DecisionTree) PredictProba(features []float64) ([]float64, error) {
	leaf, err := dt.leaf(features)
	if err != nil {
		return nil, err
	}
	return leafProba(leaf), nil
}

func (dt *DecisionTree) leaf(features []float64) (TreeNode, error) {
	if len(dt.nodes) == 0 {
		return TreeNode{}, ErrNotLoaded
	}
	if err := checkLen(features, dt.nFeatures); err != nil {
		return TreeNode{}, err
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 {
		return ErrNotLoaded
	}
	payload, err := json.MarshalIndent(dt, "", "  ")
	if err != nil {
		return err
	}
	return writeLocked(path, payload)
}

func (dt *DecisionTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(treeArtifact{
		Type:         TypeDecisionTree,
		NFeatures:    dt.nFeatures,
		FeatureNames: dt.featureNames,
		Nodes:        dt.nodes,
	})
}

func (dt *DecisionTree) UnmarshalJSON(payload []byte) error {
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	loaded := DecisionTree{
		nodes:        artifact.Nodes,
		nFeatures:    artifact.NFeatures,
		featureNames: artifact.FeatureNames,
	}
	if loaded.nFeatures == 0 {
		loaded.nFeatures = len(artifact.FeatureNames)
	}
	if err := loaded.validate(); err != nil {
		return err
	}
	*dt = loaded
	return nil
}

func (dt *DecisionTree) validate() error {
	if len(dt.nodes) == 0 {
		return fmt.Errorf("%w: tree has no nodes", ErrInvalidModel)
	}
	if dt.nFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be positive", ErrInvalidModel)
	}
	if len(dt.featureNames) != 0 && len(dt.featureNames) != dt.nFeatures {
		return fmt.Errorf("%w: %d feature names for %d features", ErrInvalidModel, len(dt.featureNames), dt.nFeatures)
	}
	for i, node := range dt.nodes {
		if node.IsLeaf {
			if err := validateLeaf(node); err != nil {
				return fmt.Errorf("%w: node %d: %v", ErrInvalidModel, i, err)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= dt.nFeatures {
			return fmt.Errorf("%w: node %d: feature index %d out of range", ErrInvalidModel, i, node.FeatureIdx)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(dt.nodes) {
				return fmt.Errorf("%w: node %d: invalid child %d", ErrInvalidModel, i, child)
			}
		}
	}
	return nil
}

func validateLeaf(node TreeNode) error {
	if len(node.Value) == 0 {
		if node.ClassLabel != 0 && node.ClassLabel != 1 {
			return fmt.Errorf("class label %d is not binary", node.ClassLabel)
		}
		return nil
	}
	if len(node.Value) != 2 {
		return fmt.Errorf("leaf has %d class counts, want 2", len(node.Value))
	}
	total := 0.0
	for _, v := range node.Value {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("class counts must be finite and non-negative")
		}
		total += v
	}
	if total == 0 {
		return errors.New("class counts sum to zero")
	}
	return nil
}

func leafProba(node TreeNode) []float64 {
	if len(node.Value) == 0 {
		proba := []float64{0, 0}
		proba[node.ClassLabel] = 1
		return proba
	}
	total := node.Value[0] + node.Value[1]
	return []float64{node.Value[0] / total, node.Value[1] / total}
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
