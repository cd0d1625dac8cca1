// Package student persists scored student records as store hashes plus an
// identifier index set.
package student

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/23f2000400/student-dropout-prediction/internal/db"
	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

// store is the consumer interface for student persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int, error)
	TxDel(ctx context.Context, keys []string) error
	TxHSetMulti(ctx context.Context, items []db.HashSetItem, sets []db.SetAddItem) error
}

// Repo implements the student storage contracts used by the prediction and
// import use cases.
type Repo struct {
	store store
}

// New creates a student repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns a student by external identifier.
func (r *Repo) Get(ctx context.Context, id string) (domstudent.Student, error) {
	m, err := r.store.HGetAll(ctx, studentKey(id))
	if err != nil {
		return domstudent.Student{}, fmt.Errorf("hgetall %s: %w", studentKey(id), err)
	}
	if len(m) == 0 {
		return domstudent.Student{}, domain.ErrStudentNotFound
	}
	return studentFromHash(m)
}

// List returns all students ordered by identifier.
func (r *Repo) List(ctx context.Context) ([]domstudent.Student, error) {
	ids, err := r.store.SMembers(ctx, indexKey())
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", indexKey(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = studentKey(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	out := make([]domstudent.Student, 0, len(hashes))
	for _, m := range hashes {
		if len(m) == 0 {
			continue // index member without a hash; skip rather than fail the listing
		}
		s, err := studentFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("hydrate student: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Count returns the number of stored students.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SCard(ctx, indexKey())
	if err != nil {
		return 0, fmt.Errorf("scard %s: %w", indexKey(), err)
	}
	return n, nil
}

// UpdateScore overwrites the score fields of an existing record.
func (r *Repo) UpdateScore(ctx context.Context, s domstudent.Student) error {
	fields := map[string]string{
		"risk_score":    strconv.FormatFloat(s.Score().Probability(), 'f', -1, 64),
		"risk_category": string(s.Score().Category()),
		"predicted_at":  strconv.FormatInt(s.PredictedAt(), 10),
	}
	if err := r.store.HSet(ctx, studentKey(s.ID()), fields); err != nil {
		return fmt.Errorf("hset %s: %w", studentKey(s.ID()), err)
	}
	return nil
}

// DeleteAll removes every student record and the index set in one
// transaction, returning how many records were cleared. Must succeed
// before InsertAll is attempted: partial-clear + partial-insert is the one
// state the import design must never leave behind.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	ids, err := r.store.SMembers(ctx, indexKey())
	if err != nil {
		return 0, fmt.Errorf("smembers %s: %w", indexKey(), err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, studentKey(id))
	}
	keys = append(keys, indexKey())

	if err := r.store.TxDel(ctx, keys); err != nil {
		return 0, fmt.Errorf("clear students: %w", err)
	}
	return len(ids), nil
}

// InsertAll writes the whole batch and its index in one transaction, so
// concurrent readers never observe a partially imported collection.
func (r *Repo) InsertAll(ctx context.Context, students []domstudent.Student) error {
	if len(students) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(students))
	members := make([]string, len(students))
	for i, s := range students {
		items[i] = db.HashSetItem{Key: studentKey(s.ID()), Fields: studentToHash(s)}
		members[i] = s.ID()
	}

	sets := []db.SetAddItem{{Key: indexKey(), Members: members}}
	if err := r.store.TxHSetMulti(ctx, items, sets); err != nil {
		return fmt.Errorf("commit %d students: %w", len(students), err)
	}
	return nil
}

func studentKey(id string) string {
	return fmt.Sprintf("%sstudent:%s", domain.KeyPrefix, id)
}

func indexKey() string {
	return domain.KeyPrefix + "students"
}
