package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/parkcast/parkcast-go/internal/models"
)

// GradientBoostedModel evaluates a fixed, externally trained decision forest
// against a feature vector. Evaluation only; retraining happens offline and
// ships as new forest config.
type GradientBoostedModel struct {
	forest *models.DecisionForest
}

// NewGradientBoostedModel creates a model over a validated forest.
func NewGradientBoostedModel(forest *models.DecisionForest) (*GradientBoostedModel, error) {
	if err := forest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decision forest: %w", err)
	}
	return &GradientBoostedModel{forest: forest}, nil
}

// LoadForest reads a forest from a JSON config file. An empty path selects the
// embedded default forest.
func LoadForest(path string) (*models.DecisionForest, error) {
	if path == "" {
		return DefaultForest(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forest config %s: %w", path, err)
	}

	var forest models.DecisionForest
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("failed to parse forest config %s: %w", path, err)
	}
	return &forest, nil
}

// Version returns the version string of the loaded forest.
func (m *GradientBoostedModel) Version() string {
	return m.forest.Version
}

// Predict walks every tree root to leaf, comparing the node's feature value to
// its threshold (<= goes left, > goes right), accumulates leaf values scaled
// by the learning rate onto the base score, and clamps to [0, 100]. Pure
// function: identical input, identical output.
func (m *GradientBoostedModel) Predict(features []float64) float64 {
	score := m.forest.BaseScore
	for _, tree := range m.forest.Trees {
		score += m.evaluateTree(&tree, features) * m.forest.LearningRate
	}
	return clamp(score, 0, 100)
}

func (m *GradientBoostedModel) evaluateTree(tree *models.DecisionTree, features []float64) float64 {
	idx := 0
	// Validate guarantees children point strictly forward, so the walk is
	// bounded by the node count.
	for range tree.Nodes {
		node := &tree.Nodes[idx]
		if node.IsLeaf() {
			return *node.Leaf
		}
		if features[node.FeatureIndex] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0
}

func leaf(v float64) models.ForestNode {
	return models.ForestNode{Leaf: &v}
}

func split(feature int, threshold float64, left, right int) models.ForestNode {
	return models.ForestNode{FeatureIndex: feature, Threshold: threshold, Left: left, Right: right}
}

// DefaultForest is the embedded calibrated forest shipped with the service.
// It is configuration expressed as data: swap it by pointing
// prediction.forest_path at a retrained JSON export.
func DefaultForest() *models.DecisionForest {
	return &models.DecisionForest{
		Version:      "gbf-2025.09",
		BaseScore:    50,
		LearningRate: 0.3,
		Trees: []models.DecisionTree{
			// Class-day and hour of day dominate commuter demand.
			{Nodes: []models.ForestNode{
				split(models.FeatIsClassDay, 0.5, 1, 2),
				leaf(-30),
				split(models.FeatHour, 7.5, 3, 4),
				leaf(-25),
				split(models.FeatHour, 16.5, 5, 6),
				leaf(46),
				leaf(-10),
			}},
			// Weekends empty most lots.
			{Nodes: []models.ForestNode{
				split(models.FeatIsWeekend, 0.5, 1, 2),
				leaf(5),
				leaf(-20),
			}},
			// Event impact, already priority-selected upstream.
			{Nodes: []models.ForestNode{
				split(models.FeatEventImpact, 5, 1, 2),
				leaf(0),
				split(models.FeatEventImpact, 75, 3, 4),
				leaf(15),
				leaf(30),
			}},
			// Same-time-of-week history anchors the estimate.
			{Nodes: []models.ForestNode{
				split(models.FeatSameTimeAverage, 35, 1, 2),
				leaf(-25),
				split(models.FeatSameTimeAverage, 65, 3, 4),
				leaf(0),
				split(models.FeatSameTimeAverage, 85, 5, 6),
				leaf(34),
				leaf(44),
			}},
			// Fresh crowd reports outrank everything else when confident.
			{Nodes: []models.ForestNode{
				split(models.FeatRealtimeConf, 0.4, 1, 2),
				leaf(0),
				split(models.FeatLatestReport, 50, 3, 4),
				leaf(-15),
				leaf(18),
			}},
			// Current measured occupancy fraction.
			{Nodes: []models.ForestNode{
				split(models.FeatOccupancyFraction, 0.3, 1, 2),
				leaf(-12),
				split(models.FeatOccupancyFraction, 0.7, 3, 4),
				leaf(3),
				leaf(15),
			}},
			// Campus-wide ambient demand.
			{Nodes: []models.ForestNode{
				split(models.FeatCampusAverage, 40, 1, 2),
				leaf(-8),
				split(models.FeatCampusAverage, 75, 3, 4),
				leaf(4),
				leaf(12),
			}},
			// Bad weather shifts walkers into cars.
			{Nodes: []models.ForestNode{
				split(models.FeatWeatherImpact, 7.5, 1, 2),
				leaf(0),
				leaf(8),
			}},
			// Finals week keeps lots full into the evening.
			{Nodes: []models.ForestNode{
				split(models.FeatIsFinalsWeek, 0.5, 1, 2),
				leaf(0),
				leaf(10),
			}},
			// Commuter lots peak mid-morning through mid-afternoon.
			{Nodes: []models.ForestNode{
				split(models.FeatIsCommuter, 0.5, 1, 2),
				leaf(0),
				split(models.FeatHour, 8.5, 3, 4),
				leaf(-5),
				split(models.FeatHour, 15.5, 5, 6),
				leaf(14),
				leaf(-8),
			}},
		},
	}
}
