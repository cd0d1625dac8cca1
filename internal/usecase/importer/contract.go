package importer

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

// StudentBatchRepository supports the replace-the-world import cycle.
type StudentBatchRepository interface {
	DeleteAll(ctx context.Context) (cleared int, err error)
	InsertAll(ctx context.Context, students []domstudent.Student) error
}

// AlertDispatcher fans out notifications for high-risk students.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, st domstudent.Student) (int, error)
}
