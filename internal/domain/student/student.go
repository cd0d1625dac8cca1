// Package student defines the persisted student record aggregate.
package student

import (
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
)

// Student is a scored student record (immutable value object). Attributes
// are the coerced feature values in schema order; the score is the latest
// classifier result.
type Student struct {
	id          string
	name        string
	attrs       feature.Vector
	score       risk.Score
	predictedAt int64 // unix millis of the latest prediction
	createdAt   int64 // unix millis
}

// New creates a Student from an import or prediction result.
func New(id, name string, attrs feature.Vector, score risk.Score, nowMillis int64) Student {
	return Student{
		id:          id,
		name:        name,
		attrs:       attrs,
		score:       score,
		predictedAt: nowMillis,
		createdAt:   nowMillis,
	}
}

// Reconstruct rebuilds a Student from storage without validation.
func Reconstruct(id, name string, attrs feature.Vector, score risk.Score, predictedAt, createdAt int64) Student {
	return Student{id: id, name: name, attrs: attrs, score: score, predictedAt: predictedAt, createdAt: createdAt}
}

// ID returns the external student identifier.
func (s Student) ID() string { return s.id }

// Name returns the display name.
func (s Student) Name() string { return s.name }

// Attributes returns the feature values in schema order.
func (s Student) Attributes() feature.Vector { return s.attrs }

// Score returns the latest risk score.
func (s Student) Score() risk.Score { return s.score }

// PredictedAt returns the unix-millis timestamp of the latest prediction.
func (s Student) PredictedAt() int64 { return s.predictedAt }

// CreatedAt returns the unix-millis creation timestamp.
func (s Student) CreatedAt() int64 { return s.createdAt }

// WithScore returns a copy carrying a fresh score and prediction time.
func (s Student) WithScore(score risk.Score, nowMillis int64) Student {
	s.score = score
	s.predictedAt = nowMillis
	return s
}
