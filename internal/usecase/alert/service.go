// Package alert fans out high-risk notifications to every counselor.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/notify"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
	"github.com/23f2000400/student-dropout-prediction/internal/logger"
	"github.com/23f2000400/student-dropout-prediction/internal/metrics"
)

const messageFormat = "Student %s (%s) is at HIGH risk of dropout. Immediate intervention recommended."

// Service creates counselor notifications for high-risk students.
type Service struct {
	counselors    CounselorFinder
	notifications NotificationWriter
}

// New creates a Service.
func New(counselors CounselorFinder, notifications NotificationWriter) *Service {
	return &Service{counselors: counselors, notifications: notifications}
}

// Dispatch creates one notification per counselor when the student's score
// crosses the high threshold. Below-threshold students are a silent no-op.
// Returns the number of notifications created.
func (s *Service) Dispatch(ctx context.Context, st domstudent.Student) (int, error) {
	if !st.Score().IsHigh() {
		return 0, nil
	}

	counselors, err := s.counselors.FindCounselors(ctx)
	if err != nil {
		return 0, fmt.Errorf("find counselors: %w", err)
	}
	if len(counselors) == 0 {
		logger.FromContext(ctx).Warn("high-risk student has no counselors to notify",
			zap.String("student_id", st.ID()))
		return 0, nil
	}

	message := fmt.Sprintf(messageFormat, st.Name(), st.ID())
	now := time.Now().UnixMilli()

	created := 0
	for _, c := range counselors {
		n := notify.New(uuid.NewString(), st.ID(), c.ID(), message, notify.KindHighRiskAlert, now)
		if err := s.notifications.Add(ctx, n); err != nil {
			return created, fmt.Errorf("notify counselor %s: %w", c.ID(), err)
		}
		created++
		metrics.NotificationsTotal.Inc()
	}

	logger.FromContext(ctx).Info("dispatched high-risk alert",
		zap.String("student_id", st.ID()),
		zap.Int("notifications", created))
	return created, nil
}
