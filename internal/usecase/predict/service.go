// Package predict scores ad-hoc feature records submitted through the API,
// updating the stored student when the record names one.
package predict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	"github.com/23f2000400/student-dropout-prediction/internal/logger"
)

// quickDefaults is the base record for the quick-predict form: the handful
// of fields the form exposes, pre-filled with plausible mid-range values.
// Caller-supplied fields override these; everything else falls back to the
// schema defaults through the mapper.
var quickDefaults = feature.Record{
	"age_at_enrollment":                 20,
	"gender":                            0,
	"tuition_fees_up_to_date":           1,
	"scholarship_holder":                0,
	"curricular_units_1st_sem_approved": 5,
	"curricular_units_1st_sem_grade":    12,
	"curricular_units_2nd_sem_approved": 5,
	"curricular_units_2nd_sem_grade":    12,
}

// Result is the outcome of one prediction request.
type Result struct {
	Probability float64
	Category    risk.Category
	StudentID   string
	Updated     bool
	Alerts      int
}

// Service handles single-record predictions.
type Service struct {
	scorer   Scorer
	students StudentRepository
	alerts   AlertDispatcher
}

// New creates a Service.
func New(scorer Scorer, students StudentRepository, alerts AlertDispatcher) *Service {
	return &Service{scorer: scorer, students: students, alerts: alerts}
}

// Predict scores a snake_case-keyed record. When the record carries a
// student_id matching a stored student, the stored score is refreshed and
// high-risk alerting runs; an unknown student_id is not an error, the
// caller still gets the score.
func (s *Service) Predict(ctx context.Context, rec feature.Record) (Result, error) {
	if len(rec) == 0 {
		return Result{}, fmt.Errorf("empty record: %w", domain.ErrInvalidInput)
	}

	vec := feature.MapKeys(rec)
	score, err := s.scorer.Score(vec)
	if err != nil {
		return Result{}, err
	}

	res := Result{Probability: score.Probability(), Category: score.Category()}

	id := recordID(rec)
	if id == "" {
		return res, nil
	}
	res.StudentID = id

	stored, err := s.students.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return res, nil
		}
		return Result{}, fmt.Errorf("load student %s: %w", id, err)
	}

	updated := stored.WithScore(score, time.Now().UnixMilli())
	if err := s.students.UpdateScore(ctx, updated); err != nil {
		return Result{}, fmt.Errorf("update student %s: %w", id, err)
	}
	res.Updated = true

	alerts, err := s.alerts.Dispatch(ctx, updated)
	if err != nil {
		// The score is already stored; a failed fan-out should not fail
		// the prediction.
		logger.FromContext(ctx).Error("alert dispatch failed",
			zap.String("student_id", id), zap.Error(err))
		return res, nil
	}
	res.Alerts = alerts
	return res, nil
}

// Quick scores the reduced quick-predict form. The supplied record may
// override any of the form's fields; it never persists anything.
func (s *Service) Quick(ctx context.Context, rec feature.Record) (Result, error) {
	merged := make(feature.Record, len(quickDefaults)+len(rec))
	for k, v := range quickDefaults {
		merged[k] = v
	}
	for k, v := range rec {
		merged[k] = v
	}
	delete(merged, feature.IDColumn) // quick predictions are anonymous

	return s.Predict(ctx, merged)
}

func recordID(rec feature.Record) string {
	raw, ok := rec[feature.IDColumn].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}
