// Package model loads the trained classifier artifact and exposes it as a
// scoring backend. The pipeline never sees a concrete model family, only
// the Backend interface, so alternative classifiers can be swapped in
// without touching the mapping or import code.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
)

// Backend produces a class-probability distribution for one feature
// vector. The distribution is ordered Graduate/Dropout/Enrolled.
type Backend interface {
	PredictProba(features []float64) ([]float64, error)
	NumFeatures() int
	Classes() []string
}

// Artifact model types.
const (
	TypeRandomForest       = "random_forest"
	TypeLogisticRegression = "logistic_regression"
)

// artifact is the on-disk JSON layout produced by the offline training
// pipeline.
type artifact struct {
	ModelType string          `json:"model_type"`
	Classes   []string        `json:"classes"`
	Scaler    scalerParams    `json:"scaler"`
	Forest    *forestParams   `json:"forest,omitempty"`
	Logistic  *logisticParams `json:"logistic,omitempty"`
}

// Load reads the artifact at path and builds the matching backend. A
// missing file is ErrModelUnavailable: the service must refuse to start
// rather than return synthetic scores.
func Load(path string) (Backend, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no trained artifact at %s: %w", path, domain.ErrModelUnavailable)
		}
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w: %v", path, domain.ErrModelUnavailable, err)
	}

	scaler, err := newScaler(art.Scaler)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w: %v", path, domain.ErrModelUnavailable, err)
	}

	switch art.ModelType {
	case TypeRandomForest:
		if art.Forest == nil {
			return nil, fmt.Errorf("artifact %s: missing forest payload: %w", path, domain.ErrModelUnavailable)
		}
		return newForest(art.Classes, scaler, *art.Forest)
	case TypeLogisticRegression:
		if art.Logistic == nil {
			return nil, fmt.Errorf("artifact %s: missing logistic payload: %w", path, domain.ErrModelUnavailable)
		}
		return newLogistic(art.Classes, scaler, *art.Logistic)
	default:
		return nil, fmt.Errorf("artifact %s: unknown model type %q: %w", path, art.ModelType, domain.ErrModelUnavailable)
	}
}

// scalerParams holds the fitted standard-scaler statistics.
type scalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type scaler struct {
	mean  []float64
	scale []float64
}

func newScaler(p scalerParams) (scaler, error) {
	if len(p.Mean) == 0 || len(p.Mean) != len(p.Scale) {
		return scaler{}, fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(p.Mean), len(p.Scale))
	}
	return scaler{mean: p.Mean, scale: p.Scale}, nil
}

func (s scaler) numFeatures() int { return len(s.mean) }

// transform applies the fitted (x-mean)/scale normalization. Zero-variance
// features keep scale 1 the way sklearn stores them; a literal zero is
// guarded to avoid division blowups on hand-edited artifacts.
func (s scaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		sc := s.scale[i]
		if sc == 0 {
			sc = 1
		}
		out[i] = (v - s.mean[i]) / sc
	}
	return out
}
