// Package scoring turns coerced feature vectors into risk scores via the
// trained classifier backend.
package scoring

import (
	"fmt"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	"github.com/23f2000400/student-dropout-prediction/internal/metrics"
)

// Service scores feature vectors.
type Service struct {
	backend Backend
}

// New creates a Service.
func New(backend Backend) *Service {
	return &Service{backend: backend}
}

// Score derives a risk score from a feature vector. The vector must match
// both the schema width and the backend's trained width.
func (s *Service) Score(vec feature.Vector) (risk.Score, error) {
	if vec.Len() != feature.Count() {
		return risk.Score{}, fmt.Errorf(
			"feature vector has %d values, schema defines %d: %w",
			vec.Len(), feature.Count(), domain.ErrInvalidInput,
		)
	}
	if n := s.backend.NumFeatures(); vec.Len() != n {
		return risk.Score{}, fmt.Errorf(
			"feature vector has %d values, model trained on %d: %w",
			vec.Len(), n, domain.ErrInvalidInput,
		)
	}

	dist, err := s.backend.PredictProba(vec.Values())
	if err != nil {
		return risk.Score{}, fmt.Errorf("predict: %w", err)
	}

	// Degenerate single-class artifacts cannot express a dropout
	// probability; score as zero rather than guessing.
	p := 0.0
	if len(dist) > risk.DropoutClassIndex {
		p = dist[risk.DropoutClassIndex]
	}

	score := risk.New(p)
	metrics.PredictionsTotal.WithLabelValues(string(score.Category())).Inc()
	return score, nil
}
