// Package analytics aggregates dashboard figures over the stored
// collection.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

// interventionWindow is how far back a notification still counts as an
// active intervention.
const interventionWindow = 30 * 24 * time.Hour

// StudentLister reads the full collection for aggregation.
type StudentLister interface {
	List(ctx context.Context) ([]domstudent.Student, error)
}

// NotificationCounter counts notifications created since a cutoff.
type NotificationCounter interface {
	CountSince(ctx context.Context, cutoffMillis int64) (int, error)
}

// Report is the dashboard aggregate.
type Report struct {
	Total               int
	ByCategory          map[risk.Category]int
	SuccessRate         float64 // percent, one decimal
	ActiveInterventions int
}

// Service computes dashboard analytics.
type Service struct {
	students      StudentLister
	notifications NotificationCounter
	now           func() time.Time
}

// New creates a Service.
func New(students StudentLister, notifications NotificationCounter) *Service {
	return &Service{students: students, notifications: notifications, now: time.Now}
}

// Snapshot aggregates the current collection. The success rate is the
// share of students below the high-risk threshold, as a percentage with
// one decimal; an empty collection reports zero rather than dividing.
func (s *Service) Snapshot(ctx context.Context) (Report, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list students: %w", err)
	}

	byCategory := map[risk.Category]int{
		risk.Low:    0,
		risk.Medium: 0,
		risk.High:   0,
	}
	for _, st := range students {
		byCategory[st.Score().Category()]++
	}

	total := len(students)
	successRate := 0.0
	if total > 0 {
		successRate = float64(total-byCategory[risk.High]) / float64(total) * 100
		successRate = math.Round(successRate*10) / 10
	}

	cutoff := s.now().Add(-interventionWindow).UnixMilli()
	active, err := s.notifications.CountSince(ctx, cutoff)
	if err != nil {
		return Report{}, fmt.Errorf("count interventions: %w", err)
	}

	return Report{
		Total:               total,
		ByCategory:          byCategory,
		SuccessRate:         successRate,
		ActiveInterventions: active,
	}, nil
}
