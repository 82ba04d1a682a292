package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrNotLoaded = errors.New("model not loaded")

// Forest is a random-forest classifier restored from a training artifact.
// Leaves carry per-class sample counts so the forest can report a probability
// alongside the predicted class. The artifact is produced offline; a Forest
// is read-only once loaded.
type Forest struct {
	Trees       [][]TreeNode `json:"trees"`
	FeatureDim  int          `json:"feature_dim"`
	ClassCount  int          `json:"class_count"`
	TrainedWith string       `json:"trained_with,omitempty"`
}

// TreeNode is one node of a decision tree stored in flattened form. Child
// fields index into the tree's node slice; leaves have ClassCounts set.
type TreeNode struct {
	FeatureIdx  int     `json:"feature_idx"`
	Threshold   float64 `json:"threshold"`
	LeftChild   int     `json:"left_child"`
	RightChild  int     `json:"right_child"`
	ClassCounts []int   `json:"class_counts,omitempty"`
	IsLeaf      bool    `json:"is_leaf"`
}

// Predict runs the feature vector through every tree, averages the per-class
// distributions and returns the argmax class with its probability.
func (f *Forest) Predict(features []float64) (int, float64, error) {
	probs, err := f.PredictProba(features)
	if err != nil {
		return 0, 0, err
	}
	best := 0
	for class, p := range probs {
		if p > probs[best] {
			best = class
		}
	}
	return best, probs[best], nil
}

// PredictProba returns the averaged per-class probability distribution.
func (f *Forest) PredictProba(features []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotLoaded
	}
	if len(features) != f.FeatureDim {
		return nil, fmt.Errorf("expected %d features, got %d", f.FeatureDim, len(features))
	}

	probs := make([]float64, f.ClassCount)
	for _, tree := range f.Trees {
		counts, err := walkTree(tree, features)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, c := range counts {
			total += c
		}
		if total == 0 {
			continue
		}
		for class, c := range counts {
			if class >= f.ClassCount {
				return nil, fmt.Errorf("leaf class %d outside class count %d", class, f.ClassCount)
			}
			probs[class] += float64(c) / float64(total)
		}
	}
	for class := range probs {
		probs[class] /= float64(len(f.Trees))
	}
	return probs, nil
}

// NumFeatures returns the feature vector length the forest was trained on.
func (f *Forest) NumFeatures() int {
	return f.FeatureDim
}

// Save writes the forest artifact as JSON.
func (f *Forest) Save(path string) error {
	if len(f.Trees) == 0 {
		return ErrNotLoaded
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// Load reads a forest artifact from disk.
func (f *Forest) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return f.UnmarshalArtifact(payload)
}

// UnmarshalArtifact decodes and validates an artifact payload.
func (f *Forest) UnmarshalArtifact(payload []byte) error {
	var loaded Forest
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return fmt.Errorf("invalid model artifact: %w", err)
	}
	if len(loaded.Trees) == 0 {
		return errors.New("model artifact has no trees")
	}
	if loaded.FeatureDim <= 0 {
		return errors.New("model artifact missing feature dimension")
	}
	if loaded.ClassCount <= 0 {
		return errors.New("model artifact missing class count")
	}
	*f = loaded
	return nil
}

func walkTree(nodes []TreeNode, features []float64) ([]int, error) {
	idx := 0
	for {
		if idx < 0 || idx >= len(nodes) {
			return nil, errors.New("invalid tree state")
		}
		node := nodes[idx]
		if node.IsLeaf {
			return node.ClassCounts, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return nil, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
