package student

import (
	"context"
	"errors"
	"testing"

	"github.com/23f2000400/student-dropout-prediction/internal/db"
	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(context.Background(), "CSV00001")
	if !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)
	want := testStudent(t, "CSV00001")

	var requestedKey string
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		requestedKey = key
		return studentToHash(want), nil
	}

	got, err := repo.Get(context.Background(), "CSV00001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if requestedKey != "dropout:student:CSV00001" {
		t.Errorf("key = %q, want dropout:student:CSV00001", requestedKey)
	}
	if got.ID() != want.ID() || got.Name() != want.Name() {
		t.Errorf("identity mismatch: got %s/%s", got.ID(), got.Name())
	}
	if got.Score().Probability() != want.Score().Probability() {
		t.Errorf("probability = %v, want %v", got.Score().Probability(), want.Score().Probability())
	}
	if got.Score().Category() != want.Score().Category() {
		t.Errorf("category = %v, want %v", got.Score().Category(), want.Score().Category())
	}
	if got.Attributes().Len() != want.Attributes().Len() {
		t.Fatalf("attrs len = %d, want %d", got.Attributes().Len(), want.Attributes().Len())
	}
	for i, v := range want.Attributes() {
		if got.Attributes()[i] != v {
			t.Errorf("attr[%d] = %v, want %v", i, got.Attributes()[i], v)
		}
	}
}

func TestList_SortedByID(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.smembersFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"CSV00002", "CSV00001"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		if keys[0] != "dropout:student:CSV00001" || keys[1] != "dropout:student:CSV00002" {
			t.Errorf("keys not sorted: %v", keys)
		}
		return []map[string]string{
			studentToHash(testStudent(t, "CSV00001")),
			studentToHash(testStudent(t, "CSV00002")),
		}, nil
	}

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID() != "CSV00001" || got[1].ID() != "CSV00002" {
		t.Errorf("order = %s, %s", got[0].ID(), got[1].ID())
	}
}

func TestList_SkipsMissingHashes(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.smembersFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"CSV00001", "CSV00002"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{
			studentToHash(testStudent(t, "CSV00001")),
			{},
		}, nil
	}

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestDeleteAll_ClearsRecordsAndIndex(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.smembersFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"CSV00001", "CSV00002"}, nil
	}

	var delKeys []string
	ms.txDelFn = func(_ context.Context, keys []string) error {
		delKeys = keys
		return nil
	}

	cleared, err := repo.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}
	if len(delKeys) != 3 || delKeys[2] != "dropout:students" {
		t.Errorf("del keys = %v", delKeys)
	}
}

func TestDeleteAll_TxError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.smembersFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"CSV00001"}, nil
	}
	ms.txDelFn = func(_ context.Context, _ []string) error {
		return errors.New("exec failed")
	}

	if _, err := repo.DeleteAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestInsertAll_WritesBatchAndIndex(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotItems []db.HashSetItem
	var gotSets []db.SetAddItem
	ms.txHSetMultiFn = func(_ context.Context, items []db.HashSetItem, sets []db.SetAddItem) error {
		gotItems, gotSets = items, sets
		return nil
	}

	batch := []domstudent.Student{testStudent(t, "CSV00001"), testStudent(t, "CSV00002")}
	if err := repo.InsertAll(context.Background(), batch); err != nil {
		t.Fatalf("InsertAll: %v", err)
	}

	if len(gotItems) != 2 {
		t.Fatalf("items = %d, want 2", len(gotItems))
	}
	if len(gotSets) != 1 || gotSets[0].Key != "dropout:students" {
		t.Fatalf("sets = %v", gotSets)
	}
	if len(gotSets[0].Members) != 2 {
		t.Errorf("members = %v", gotSets[0].Members)
	}
}

func TestUpdateScore_WritesScoreFieldsOnly(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	var gotFields map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey, gotFields = key, fields
		return nil
	}

	s := testStudent(t, "CSV00001")
	if err := repo.UpdateScore(context.Background(), s); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}
	if gotKey != "dropout:student:CSV00001" {
		t.Errorf("key = %q", gotKey)
	}
	if gotFields["risk_category"] != "High" {
		t.Errorf("risk_category = %q", gotFields["risk_category"])
	}
	if _, ok := gotFields["name"]; ok {
		t.Error("UpdateScore must not rewrite identity fields")
	}
}
