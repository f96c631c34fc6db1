package inbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smkbisa/backend/internal/model"
)

type fakeAdmissionGateway struct {
	listFunc         func(ctx context.Context) ([]model.PPDBPendaftar, error)
	updateStatusFunc func(ctx context.Context, id, status string) (*model.PPDBPendaftar, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (g *fakeAdmissionGateway) List(ctx context.Context) ([]model.PPDBPendaftar, error) {
	if g.listFunc != nil {
		return g.listFunc(ctx)
	}
	return nil, nil
}

func (g *fakeAdmissionGateway) UpdateStatus(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
	if g.updateStatusFunc != nil {
		return g.updateStatusFunc(ctx, id, status)
	}
	return &model.PPDBPendaftar{ID: id, Status: status}, nil
}

func (g *fakeAdmissionGateway) Delete(ctx context.Context, id string) error {
	if g.deleteFunc != nil {
		return g.deleteFunc(ctx, id)
	}
	return nil
}

func ppdbRow(id, status string) model.PPDBPendaftar {
	return model.PPDBPendaftar{
		ID:          id,
		Nama:        "Calon " + id,
		Status:      status,
		NamaJurusan: "Teknik Komputer dan Jaringan",
		CreatedAt:   time.Now(),
	}
}

func loadedController(t *testing.T, gw *fakeAdmissionGateway, rows ...model.PPDBPendaftar) *StatusController {
	t.Helper()
	prev := gw.listFunc
	gw.listFunc = func(ctx context.Context) ([]model.PPDBPendaftar, error) {
		if prev != nil {
			return prev(ctx)
		}
		return rows, nil
	}
	c := NewStatusController(gw)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return c
}

func TestStatusController_SetStatus_ConfirmedInstallsReturnedRow(t *testing.T) {
	gw := &fakeAdmissionGateway{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
			// Update result carries no joined program name.
			return &model.PPDBPendaftar{ID: id, Nama: "Calon " + id, Status: status}, nil
		},
	}
	c := loadedController(t, gw, ppdbRow("a", model.PPDBStatusBaru))

	row, err := c.SetStatus(context.Background(), "a", model.PPDBStatusDiterima)
	if err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	if row.Status != model.PPDBStatusDiterima {
		t.Errorf("expected returned status diterima, got %q", row.Status)
	}

	snap := c.Snapshot()
	if snap[0].Status != model.PPDBStatusDiterima {
		t.Errorf("expected local status diterima, got %q", snap[0].Status)
	}
	if snap[0].NamaJurusan != "Teknik Komputer dan Jaringan" {
		t.Errorf("expected joined program name preserved, got %q", snap[0].NamaJurusan)
	}
}

func TestStatusController_SetStatus_FailureRollsBackExactPriorValue(t *testing.T) {
	remoteErr := errors.New("backend unavailable")
	gw := &fakeAdmissionGateway{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
			return nil, remoteErr
		},
	}
	c := loadedController(t, gw, ppdbRow("a", model.PPDBStatusVerifikasi))

	if _, err := c.SetStatus(context.Background(), "a", model.PPDBStatusDitolak); !errors.Is(err, remoteErr) {
		t.Fatalf("expected remote error, got %v", err)
	}

	// Not the default "baru", not the attempted "ditolak": the exact prior value.
	if got := c.Snapshot()[0].Status; got != model.PPDBStatusVerifikasi {
		t.Errorf("expected rollback to verifikasi, got %q", got)
	}
}

func TestStatusController_SetStatus_AppliesOptimisticallyBeforeConfirmation(t *testing.T) {
	observed := make(chan string, 1)
	var c *StatusController
	gw := &fakeAdmissionGateway{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
			// Observed mid-call: the local value is already the new status.
			observed <- c.Snapshot()[0].Status
			return &model.PPDBPendaftar{ID: id, Status: status}, nil
		},
	}
	c = loadedController(t, gw, ppdbRow("a", model.PPDBStatusBaru))

	if _, err := c.SetStatus(context.Background(), "a", model.PPDBStatusVerifikasi); err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	if got := <-observed; got != model.PPDBStatusVerifikasi {
		t.Errorf("expected optimistic apply before remote call returned, got %q", got)
	}
}

func TestStatusController_SetStatus_RejectsUnknownStatus(t *testing.T) {
	gw := &fakeAdmissionGateway{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
			t.Error("unexpected remote call for invalid status")
			return nil, nil
		},
	}
	c := loadedController(t, gw, ppdbRow("a", model.PPDBStatusBaru))

	if _, err := c.SetStatus(context.Background(), "a", "lulus"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
	if got := c.Snapshot()[0].Status; got != model.PPDBStatusBaru {
		t.Errorf("expected status untouched, got %q", got)
	}
}

func TestStatusController_SetStatus_AnyToAnyTransitionAllowed(t *testing.T) {
	gw := &fakeAdmissionGateway{}
	c := loadedController(t, gw, ppdbRow("a", model.PPDBStatusDiterima))

	// Correcting a finalized decision back to an earlier stage is allowed.
	if _, err := c.SetStatus(context.Background(), "a", model.PPDBStatusBaru); err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	if got := c.Snapshot()[0].Status; got != model.PPDBStatusBaru {
		t.Errorf("expected baru, got %q", got)
	}
}

func TestStatusController_SetStatus_UnknownIDStillConfirmsRemotely(t *testing.T) {
	called := false
	gw := &fakeAdmissionGateway{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
			called = true
			return &model.PPDBPendaftar{ID: id, Status: status}, nil
		},
	}
	c := loadedController(t, gw, ppdbRow("a", model.PPDBStatusBaru))

	if _, err := c.SetStatus(context.Background(), "other", model.PPDBStatusDitolak); err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	if !called {
		t.Error("expected remote update even when the id is not in local state")
	}
	// Local list is untouched: nothing to patch.
	if n := len(c.Snapshot()); n != 1 {
		t.Errorf("expected 1 local record, got %d", n)
	}
}

func TestStatusController_Delete_RemovesLocallyOnSuccess(t *testing.T) {
	gw := &fakeAdmissionGateway{}
	c := loadedController(t, gw,
		ppdbRow("a", model.PPDBStatusBaru),
		ppdbRow("b", model.PPDBStatusDiterima),
	)

	if err := c.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	snap := c.Snapshot()
	if len(snap) != 1 || snap[0].ID != "b" {
		t.Errorf("expected only b left, got %+v", snap)
	}
}

func TestStatusController_Delete_FailureLeavesLocalStateUntouched(t *testing.T) {
	gw := &fakeAdmissionGateway{
		deleteFunc: func(ctx context.Context, id string) error {
			return errors.New("backend unavailable")
		},
	}
	c := loadedController(t, gw, ppdbRow("a", model.PPDBStatusBaru))

	if err := c.Delete(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
	if n := len(c.Snapshot()); n != 1 {
		t.Errorf("expected record retained after failed delete, got %d", n)
	}
}
