package notification

import (
	"context"
	"testing"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/notify"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	saddFn         func(ctx context.Context, key string, members ...string) error
	smembersFn     func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func testNotification(id, counselorID string, read bool, createdAt int64) notify.Notification {
	return notify.Reconstruct(id, "CSV00001", counselorID, "msg", notify.KindHighRiskAlert, read, createdAt)
}

func TestAdd_RegistersBothIndexes(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	var saddKeys []string
	ms.saddFn = func(_ context.Context, key string, _ ...string) error {
		saddKeys = append(saddKeys, key)
		return nil
	}

	n := testNotification("n1", "c1", false, 100)
	if err := repo.Add(context.Background(), n); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(saddKeys) != 2 {
		t.Fatalf("sadd calls = %v", saddKeys)
	}
	if saddKeys[0] != "dropout:notifications:c1" || saddKeys[1] != "dropout:notifications" {
		t.Errorf("sadd keys = %v", saddKeys)
	}
}

func TestListUnread_NewestFirstCapped(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ms.smembersFn = func(_ context.Context, key string) ([]string, error) {
		if key != "dropout:notifications:c1" {
			t.Errorf("index key = %q", key)
		}
		return []string{"n1", "n2", "n3"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{
			notificationToHash(testNotification("n1", "c1", false, 100)),
			notificationToHash(testNotification("n2", "c1", true, 200)),
			notificationToHash(testNotification("n3", "c1", false, 300)),
		}, nil
	}

	got, err := repo.ListUnread(context.Background(), "c1", 2)
	if err != nil {
		t.Fatalf("ListUnread: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID() != "n3" || got[1].ID() != "n1" {
		t.Errorf("order = %s, %s", got[0].ID(), got[1].ID())
	}
}

func TestCountSince(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ms.smembersFn = func(_ context.Context, key string) ([]string, error) {
		if key != "dropout:notifications" {
			t.Errorf("index key = %q", key)
		}
		return []string{"n1", "n2", "n3"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{
			notificationToHash(testNotification("n1", "c1", false, 100)),
			notificationToHash(testNotification("n2", "c1", false, 200)),
			notificationToHash(testNotification("n3", "c2", true, 300)),
		}, nil
	}

	got, err := repo.CountSince(context.Background(), 200)
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}
