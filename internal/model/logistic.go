package model

import (
	"fmt"
	"math"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
)

// logisticParams holds fitted logistic-regression weights: one coefficient
// row per class (or a single row for the sigmoid 2-class shape).
type logisticParams struct {
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// Logistic is a softmax logistic-regression backend.
type Logistic struct {
	classes    []string
	scaler     scaler
	coef       [][]float64
	intercepts []float64
}

func newLogistic(classes []string, sc scaler, p logisticParams) (*Logistic, error) {
	if len(p.Coefficients) == 0 || len(p.Coefficients) != len(p.Intercepts) {
		return nil, fmt.Errorf("logistic coefficient/intercept shape mismatch: %w", domain.ErrModelUnavailable)
	}
	for i, row := range p.Coefficients {
		if len(row) != sc.numFeatures() {
			return nil, fmt.Errorf("logistic row %d has %d weights, want %d: %w",
				i, len(row), sc.numFeatures(), domain.ErrModelUnavailable)
		}
	}
	return &Logistic{classes: classes, scaler: sc, coef: p.Coefficients, intercepts: p.Intercepts}, nil
}

// PredictProba normalizes the vector through the fitted scaler and applies
// softmax over the class logits. A single coefficient row is treated as the
// sklearn binary shape: sigmoid for the positive class.
func (l *Logistic) PredictProba(features []float64) ([]float64, error) {
	if len(features) != l.scaler.numFeatures() {
		return nil, fmt.Errorf("got %d features, want %d: %w",
			len(features), l.scaler.numFeatures(), domain.ErrInvalidInput)
	}

	x := l.scaler.transform(features)

	if len(l.coef) == 1 {
		p := sigmoid(dot(l.coef[0], x) + l.intercepts[0])
		return []float64{1 - p, p}, nil
	}

	logits := make([]float64, len(l.coef))
	maxLogit := math.Inf(-1)
	for i, row := range l.coef {
		logits[i] = dot(row, x) + l.intercepts[i]
		if logits[i] > maxLogit {
			maxLogit = logits[i]
		}
	}

	// Softmax with max-shift for numeric stability.
	sum := 0.0
	out := make([]float64, len(logits))
	for i, z := range logits {
		out[i] = math.Exp(z - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

// NumFeatures returns the trained feature count.
func (l *Logistic) NumFeatures() int { return l.scaler.numFeatures() }

// Classes returns the trained class labels.
func (l *Logistic) Classes() []string { return l.classes }

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
