package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/23f2000400/student-dropout-prediction/internal/domain"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

type mockScorer struct {
	score   risk.Score
	scoreFn func(vec feature.Vector) (risk.Score, error)
}

func (m *mockScorer) Score(vec feature.Vector) (risk.Score, error) {
	if m.scoreFn != nil {
		return m.scoreFn(vec)
	}
	return m.score, nil
}

type mockStudents struct {
	cleared   int
	deleteErr error
	insertErr error
	deleted   bool
	inserted  []domstudent.Student
}

func (m *mockStudents) DeleteAll(_ context.Context) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	m.deleted = true
	return m.cleared, nil
}

func (m *mockStudents) InsertAll(_ context.Context, students []domstudent.Student) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = students
	return nil
}

type mockAlerts struct {
	dispatched []domstudent.Student
}

func (m *mockAlerts) Dispatch(_ context.Context, st domstudent.Student) (int, error) {
	m.dispatched = append(m.dispatched, st)
	return 1, nil
}

func newService(score float64) (*Service, *mockStudents, *mockAlerts) {
	st := &mockStudents{}
	al := &mockAlerts{}
	return New(&mockScorer{score: risk.New(score)}, st, al), st, al
}

// fullCSV renders a CSV carrying every schema column with the given value.
func fullCSV(t *testing.T, rows int, value string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(feature.Headers(), ","))
	b.WriteString("\n")
	for i := 0; i < rows; i++ {
		cells := make([]string, feature.Count())
		for j := range cells {
			cells[j] = value
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func TestImport_CreatesOneStudentPerRow(t *testing.T) {
	svc, st, _ := newService(0.5)
	st.cleared = 4

	sum, err := svc.Import(context.Background(), strings.NewReader(fullCSV(t, 3, "1")), "upload.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if sum.Created != 3 {
		t.Errorf("created = %d, want 3", sum.Created)
	}
	if sum.Cleared != 4 {
		t.Errorf("cleared = %d, want 4", sum.Cleared)
	}
	if len(sum.MissingColumns) != 0 {
		t.Errorf("missing = %v", sum.MissingColumns)
	}
	if len(st.inserted) != 3 {
		t.Fatalf("inserted = %d, want 3", len(st.inserted))
	}
	if st.inserted[0].ID() != "CSV00001" || st.inserted[0].Name() != "Student 1" {
		t.Errorf("identity = %s/%s", st.inserted[0].ID(), st.inserted[0].Name())
	}
	if st.inserted[2].ID() != "CSV00003" {
		t.Errorf("third id = %s", st.inserted[2].ID())
	}
}

func TestImport_MissingColumnsDefaultAndReport(t *testing.T) {
	svc, st, _ := newService(0.5)

	csvData := "Gender,Age at enrollment\n1,25\n"
	sum, err := svc.Import(context.Background(), strings.NewReader(csvData), "partial.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(sum.MissingColumns) != feature.Count()-2 {
		t.Errorf("missing = %d columns, want %d", len(sum.MissingColumns), feature.Count()-2)
	}

	attrs := st.inserted[0].Attributes()
	for i, f := range feature.Fields() {
		switch f.Header() {
		case "Gender":
			if attrs[i] != 1 {
				t.Errorf("gender = %v, want 1", attrs[i])
			}
		case "Age at enrollment":
			if attrs[i] != 25 {
				t.Errorf("age = %v, want 25", attrs[i])
			}
		default:
			if attrs[i] != f.Default() {
				t.Errorf("%s = %v, want default %v", f.Key(), attrs[i], f.Default())
			}
		}
	}
}

func TestImport_EmptyFile(t *testing.T) {
	svc, st, _ := newService(0.5)

	_, err := svc.Import(context.Background(), strings.NewReader(""), "empty.csv")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if st.deleted {
		t.Error("malformed input must not clear storage")
	}
}

func TestImport_HeaderOnly(t *testing.T) {
	svc, st, _ := newService(0.5)

	csvData := strings.Join(feature.Headers(), ",") + "\n"
	_, err := svc.Import(context.Background(), strings.NewReader(csvData), "header.csv")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if st.deleted {
		t.Error("header-only input must not clear storage")
	}
}

func TestImport_DeleteFailureLeavesDataIntact(t *testing.T) {
	svc, st, _ := newService(0.5)
	st.deleteErr = errors.New("store down")

	_, err := svc.Import(context.Background(), strings.NewReader(fullCSV(t, 1, "1")), "u.csv")
	if !errors.Is(err, domain.ErrImportFailed) {
		t.Fatalf("expected ErrImportFailed, got %v", err)
	}
	var partial *domain.PartialStateError
	if errors.As(err, &partial) {
		t.Error("delete failure is not a partial state")
	}
	if len(st.inserted) != 0 {
		t.Error("must not insert after failed clear")
	}
}

func TestImport_CommitFailureIsPartialState(t *testing.T) {
	svc, st, _ := newService(0.5)
	st.cleared = 7
	st.insertErr = errors.New("exec aborted")

	_, err := svc.Import(context.Background(), strings.NewReader(fullCSV(t, 2, "1")), "u.csv")
	if !errors.Is(err, domain.ErrImportFailed) {
		t.Fatalf("expected ErrImportFailed, got %v", err)
	}

	var partial *domain.PartialStateError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialStateError, got %v", err)
	}
	if partial.ClearedCount != 7 {
		t.Errorf("cleared = %d, want 7", partial.ClearedCount)
	}
}

func TestImport_DispatchesAlertsForHighRiskOnly(t *testing.T) {
	st := &mockStudents{}
	al := &mockAlerts{}
	calls := 0
	scorer := &mockScorer{scoreFn: func(_ feature.Vector) (risk.Score, error) {
		calls++
		if calls == 2 {
			return risk.New(0.9), nil
		}
		return risk.New(0.1), nil
	}}
	svc := New(scorer, st, al)

	_, err := svc.Import(context.Background(), strings.NewReader(fullCSV(t, 3, "1")), "u.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(al.dispatched) != 1 {
		t.Fatalf("dispatched = %d, want 1", len(al.dispatched))
	}
	if al.dispatched[0].ID() != "CSV00002" {
		t.Errorf("dispatched id = %s", al.dispatched[0].ID())
	}
}

func TestImport_PreviewCapped(t *testing.T) {
	svc, _, _ := newService(0.5)

	sum, err := svc.Import(context.Background(), strings.NewReader(fullCSV(t, 60, "1")), "big.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if sum.Created != 60 {
		t.Errorf("created = %d, want 60", sum.Created)
	}
	if len(sum.Preview) != previewLimit {
		t.Errorf("preview = %d, want %d", len(sum.Preview), previewLimit)
	}
}

func TestImport_IdentityColumnsRespected(t *testing.T) {
	svc, st, _ := newService(0.5)

	csvData := "student_id,name,Gender\nS-77,Ana Lima,1\n,,0\n"
	_, err := svc.Import(context.Background(), strings.NewReader(csvData), "named.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if st.inserted[0].ID() != "S-77" || st.inserted[0].Name() != "Ana Lima" {
		t.Errorf("row 1 identity = %s/%s", st.inserted[0].ID(), st.inserted[0].Name())
	}
	if st.inserted[1].ID() != "CSV00002" || st.inserted[1].Name() != "Student 2" {
		t.Errorf("row 2 identity = %s/%s", st.inserted[1].ID(), st.inserted[1].Name())
	}
}
