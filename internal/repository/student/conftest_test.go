package student

import (
	"context"
	"testing"

	"github.com/23f2000400/student-dropout-prediction/internal/db"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	smembersFn     func(ctx context.Context, key string) ([]string, error)
	scardFn        func(ctx context.Context, key string) (int, error)
	txDelFn        func(ctx context.Context, keys []string) error
	txHSetMultiFn  func(ctx context.Context, items []db.HashSetItem, sets []db.SetAddItem) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SCard(ctx context.Context, key string) (int, error) {
	if m.scardFn != nil {
		return m.scardFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) TxDel(ctx context.Context, keys []string) error {
	if m.txDelFn != nil {
		return m.txDelFn(ctx, keys)
	}
	return nil
}

func (m *mockStore) TxHSetMulti(ctx context.Context, items []db.HashSetItem, sets []db.SetAddItem) error {
	if m.txHSetMultiFn != nil {
		return m.txHSetMultiFn(ctx, items, sets)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testStudent(t *testing.T, id string) domstudent.Student {
	t.Helper()
	attrs := make(feature.Vector, feature.Count())
	for i, f := range feature.Fields() {
		attrs[i] = f.Default()
	}
	return domstudent.Reconstruct(id, "Student One", attrs, risk.Reconstruct(0.82, risk.High), 1700000000000, 1700000000000)
}
