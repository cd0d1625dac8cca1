package scoring

import (
	"errors"
	"testing"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
)

type mockBackend struct {
	dist        []float64
	err         error
	numFeatures int
}

func (m *mockBackend) PredictProba(_ []float64) ([]float64, error) {
	return m.dist, m.err
}

func (m *mockBackend) NumFeatures() int { return m.numFeatures }

func fullVector() feature.Vector {
	vec := make(feature.Vector, feature.Count())
	for i, f := range feature.Fields() {
		vec[i] = f.Default()
	}
	return vec
}

func TestScore_DropoutProbabilityFromDistribution(t *testing.T) {
	svc := New(&mockBackend{dist: []float64{0.2, 0.75, 0.05}, numFeatures: feature.Count()})

	got, err := svc.Score(fullVector())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Probability() != 0.75 {
		t.Errorf("probability = %v, want 0.75", got.Probability())
	}
	if got.Category() != risk.High {
		t.Errorf("category = %v, want High", got.Category())
	}
}

func TestScore_WrongVectorLength(t *testing.T) {
	svc := New(&mockBackend{numFeatures: feature.Count()})

	_, err := svc.Score(make(feature.Vector, feature.Count()-1))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScore_BackendWidthMismatch(t *testing.T) {
	svc := New(&mockBackend{numFeatures: feature.Count() + 1})

	_, err := svc.Score(fullVector())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScore_DegenerateDistribution(t *testing.T) {
	svc := New(&mockBackend{dist: []float64{1.0}, numFeatures: feature.Count()})

	got, err := svc.Score(fullVector())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Probability() != 0 {
		t.Errorf("probability = %v, want 0", got.Probability())
	}
	if got.Category() != risk.Low {
		t.Errorf("category = %v, want Low", got.Category())
	}
}

func TestScore_BackendError(t *testing.T) {
	svc := New(&mockBackend{err: errors.New("corrupt tree"), numFeatures: feature.Count()})

	if _, err := svc.Score(fullVector()); err == nil {
		t.Fatal("expected error")
	}
}
