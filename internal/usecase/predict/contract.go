package predict

import (
	"context"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

// Scorer turns a feature vector into a risk score.
type Scorer interface {
	Score(vec feature.Vector) (risk.Score, error)
}

// StudentRepository reads and rescores stored students.
type StudentRepository interface {
	Get(ctx context.Context, id string) (domstudent.Student, error)
	UpdateScore(ctx context.Context, s domstudent.Student) error
}

// AlertDispatcher fans out notifications for high-risk students.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, st domstudent.Student) (int, error)
}
