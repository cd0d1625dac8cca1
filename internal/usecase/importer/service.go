// Package importer replaces the whole student collection from an uploaded
// CSV, scoring every row on the way in.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
	"github.com/23f2000400/student-dropout-prediction/internal/logger"
	"github.com/23f2000400/student-dropout-prediction/internal/metrics"
)

// previewLimit caps the number of rows echoed back in the import summary.
const previewLimit = 50

// Summary describes one completed import.
type Summary struct {
	Created        int
	Cleared        int
	MissingColumns []string
	Preview        []domstudent.Student
	SourceName     string
	ImportedAt     int64 // unix millis
}

// Service runs CSV imports. Imports replace the entire collection, so only
// one may run at a time; the mutex serializes concurrent uploads rather
// than letting two replace cycles interleave.
type Service struct {
	mu       sync.Mutex
	scorer   Scorer
	students StudentBatchRepository
	alerts   AlertDispatcher
}

// New creates a Service.
func New(scorer Scorer, students StudentBatchRepository, alerts AlertDispatcher) *Service {
	return &Service{scorer: scorer, students: students, alerts: alerts}
}

// Import parses, scores, and stores the CSV in three phases: parse and
// score everything first (no storage touched on malformed input), then
// clear the old collection, then commit the new one in a single
// transaction. A failed commit after a successful clear is reported as a
// PartialStateError carrying how many records were already gone.
func (s *Service) Import(ctx context.Context, r io.Reader, sourceName string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, missing, err := parse(r)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("rejected").Inc()
		return Summary{}, err
	}

	now := time.Now().UnixMilli()
	students := make([]domstudent.Student, 0, len(rows))
	for ordinal, rec := range rows {
		vec := feature.Map(rec)
		score, err := s.scorer.Score(vec)
		if err != nil {
			metrics.ImportsTotal.WithLabelValues("rejected").Inc()
			return Summary{}, fmt.Errorf("score row %d: %w", ordinal+1, err)
		}
		id, name := feature.Identity(rec, ordinal)
		students = append(students, domstudent.New(id, name, vec, score, now))
	}

	cleared, err := s.students.DeleteAll(ctx)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("failed").Inc()
		return Summary{}, fmt.Errorf("clear existing students: %w: %v", domain.ErrImportFailed, err)
	}

	if err := s.students.InsertAll(ctx, students); err != nil {
		metrics.ImportsTotal.WithLabelValues("failed").Inc()
		return Summary{}, domain.NewPartialState(cleared, err)
	}

	metrics.ImportsTotal.WithLabelValues("ok").Inc()
	metrics.ImportRowsTotal.Add(float64(len(students)))

	log := logger.FromContext(ctx)
	log.Info("import committed",
		zap.String("source", sourceName),
		zap.Int("created", len(students)),
		zap.Int("cleared", cleared),
		zap.Strings("missing_columns", missing))

	// Alerts run after the commit so notifications never reference
	// students that failed to land. A fan-out failure is logged, not
	// surfaced: the import itself succeeded.
	for _, st := range students {
		if !st.Score().IsHigh() {
			continue
		}
		if _, err := s.alerts.Dispatch(ctx, st); err != nil {
			log.Error("alert dispatch failed",
				zap.String("student_id", st.ID()), zap.Error(err))
		}
	}

	preview := students
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	return Summary{
		Created:        len(students),
		Cleared:        cleared,
		MissingColumns: missing,
		Preview:        preview,
		SourceName:     sourceName,
		ImportedAt:     now,
	}, nil
}

// parse reads the CSV into header-keyed records. Headers are trimmed;
// schema columns absent from the header are reported, not rejected — the
// mapper substitutes their defaults.
func parse(r io.Reader) ([]feature.Record, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are padded with defaults downstream

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w: %v", domain.ErrInvalidInput, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, h := range feature.Headers() {
		if !present[h] {
			missing = append(missing, h)
		}
	}

	var rows []feature.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w: %v", len(rows)+1, domain.ErrInvalidInput, err)
		}

		rec := make(feature.Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data rows: %w", domain.ErrInvalidInput)
	}
	return rows, missing, nil
}
