package models

import "fmt"

// ForestNode is one record of a decision tree stored as a flat array. Interior
// nodes carry a feature index, a split threshold, and child positions; leaves
// carry only a value. Trees are immutable data walked generically, never
// hardcoded branch logic, so a retrained forest is a config swap.
type ForestNode struct {
	FeatureIndex int      `json:"feature_index,omitempty"`
	Threshold    float64  `json:"threshold,omitempty"`
	Left         int      `json:"left,omitempty"`
	Right        int      `json:"right,omitempty"`
	Leaf         *float64 `json:"leaf,omitempty"`
}

// IsLeaf reports whether the node is terminal.
func (n *ForestNode) IsLeaf() bool {
	return n.Leaf != nil
}

// DecisionTree is a single additive-forest member. Nodes[0] is the root and
// children always point forward in the array, which rules out cycles.
type DecisionTree struct {
	Nodes []ForestNode `json:"nodes"`
}

// DecisionForest is the full gradient-boosted ensemble: an ordered list of
// trees plus the training-time learning rate and base score. It is externally
// authored configuration; this service only evaluates it.
type DecisionForest struct {
	Version      string         `json:"version"`
	BaseScore    float64        `json:"base_score"`
	LearningRate float64        `json:"learning_rate"`
	Trees        []DecisionTree `json:"trees"`
}

// Validate checks structural invariants: non-empty trees, child indices in
// range and strictly increasing, feature indices inside the vector.
func (f *DecisionForest) Validate() error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	if f.LearningRate <= 0 || f.LearningRate > 1 {
		return fmt.Errorf("learning rate %v out of range (0, 1]", f.LearningRate)
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.IsLeaf() {
				continue
			}
			if node.FeatureIndex < 0 || node.FeatureIndex >= FeatureCount {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, node.FeatureIndex)
			}
			if node.Left <= ni || node.Left >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: left child %d invalid", ti, ni, node.Left)
			}
			if node.Right <= ni || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: right child %d invalid", ti, ni, node.Right)
			}
		}
	}
	return nil
}
