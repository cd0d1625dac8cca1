package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockModel struct {
	n int
}

func (m *mockModel) NumFeatures() int { return m.n }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockModel{n: 34})

	got := svc.Check(context.Background())
	if got.Status != Healthy {
		t.Errorf("status = %v, want Healthy", got.Status)
	}
	if got.Checks["database"] != CheckOK || got.Checks["model"] != CheckOK {
		t.Errorf("checks = %v", got.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("refused")}, &mockModel{n: 34})

	got := svc.Check(context.Background())
	if got.Status != Degraded {
		t.Errorf("status = %v, want Degraded", got.Status)
	}
	if got.Checks["database"] != CheckError {
		t.Errorf("checks = %v", got.Checks)
	}
}

func TestCheck_NilModel(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	got := svc.Check(context.Background())
	if got.Status != Degraded || got.Checks["model"] != CheckError {
		t.Errorf("report = %+v", got)
	}
}
