package model

import (
	"fmt"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
)

// forestParams is the flattened sklearn tree layout: parallel arrays per
// tree, with -1 children marking leaves and leaf values holding per-class
// sample counts.
type forestParams struct {
	Trees []treeParams `json:"trees"`
}

type treeParams struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Values        [][]float64 `json:"values"`
}

// Forest is a random-forest backend: the mean of per-tree leaf class
// distributions, matching sklearn's predict_proba.
type Forest struct {
	classes []string
	scaler  scaler
	trees   []treeParams
}

func newForest(classes []string, sc scaler, p forestParams) (*Forest, error) {
	if len(p.Trees) == 0 {
		return nil, fmt.Errorf("forest has no trees: %w", domain.ErrModelUnavailable)
	}
	for i, t := range p.Trees {
		n := len(t.ChildrenLeft)
		if n == 0 || len(t.ChildrenRight) != n || len(t.Feature) != n ||
			len(t.Threshold) != n || len(t.Values) != n {
			return nil, fmt.Errorf("forest tree %d has inconsistent node arrays: %w", i, domain.ErrModelUnavailable)
		}
	}
	return &Forest{classes: classes, scaler: sc, trees: p.Trees}, nil
}

// PredictProba normalizes the vector through the fitted scaler and averages
// the leaf distributions of every tree.
func (f *Forest) PredictProba(features []float64) ([]float64, error) {
	if len(features) != f.scaler.numFeatures() {
		return nil, fmt.Errorf("got %d features, want %d: %w",
			len(features), f.scaler.numFeatures(), domain.ErrInvalidInput)
	}

	x := f.scaler.transform(features)
	sum := make([]float64, len(f.classes))
	for i := range f.trees {
		leaf := f.trees[i].walk(x)
		dist := normalize(leaf)
		for c := range sum {
			if c < len(dist) {
				sum[c] += dist[c]
			}
		}
	}

	n := float64(len(f.trees))
	for c := range sum {
		sum[c] /= n
	}
	return sum, nil
}

// NumFeatures returns the trained feature count.
func (f *Forest) NumFeatures() int { return f.scaler.numFeatures() }

// Classes returns the trained class labels.
func (f *Forest) Classes() []string { return f.classes }

// walk descends from the root to a leaf and returns its class counts.
func (t *treeParams) walk(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] >= 0 {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Values[node]
}

func normalize(counts []float64) []float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return counts
	}
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}
