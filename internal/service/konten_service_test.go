package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
)

type mockSekolahRepository struct {
	getIdentitasFunc  func(ctx context.Context) (*model.IdentitasSekolah, error)
	saveIdentitasFunc func(ctx context.Context, s *model.IdentitasSekolah) error
	getMedsosFunc     func(ctx context.Context) (*model.MedsosSekolah, error)
	saveMedsosFunc    func(ctx context.Context, m *model.MedsosSekolah) error
}

func (m *mockSekolahRepository) GetIdentitas(ctx context.Context) (*model.IdentitasSekolah, error) {
	return m.getIdentitasFunc(ctx)
}

func (m *mockSekolahRepository) SaveIdentitas(ctx context.Context, s *model.IdentitasSekolah) error {
	return m.saveIdentitasFunc(ctx, s)
}

func (m *mockSekolahRepository) GetMedsos(ctx context.Context) (*model.MedsosSekolah, error) {
	return m.getMedsosFunc(ctx)
}

func (m *mockSekolahRepository) SaveMedsos(ctx context.Context, mm *model.MedsosSekolah) error {
	return m.saveMedsosFunc(ctx, mm)
}

func TestSekolahService_GetIdentitas_NotFoundPassesThrough(t *testing.T) {
	svc := NewSekolahService(&mockSekolahRepository{
		getIdentitasFunc: func(ctx context.Context) (*model.IdentitasSekolah, error) {
			return nil, repository.ErrNotFound
		},
	})

	_, err := svc.GetIdentitas(context.Background())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound unwrapped, got %v", err)
	}
}

func TestSekolahService_GetIdentitas_BackendErrorWrapped(t *testing.T) {
	svc := NewSekolahService(&mockSekolahRepository{
		getIdentitasFunc: func(ctx context.Context) (*model.IdentitasSekolah, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := svc.GetIdentitas(context.Background())
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Op != "get" || re.Entity != "identitas_sekolah" {
		t.Errorf("expected (get, identitas_sekolah), got (%q, %q)", re.Op, re.Entity)
	}
}

func TestSekolahService_GetMedsos_BackendErrorWrapped(t *testing.T) {
	svc := NewSekolahService(&mockSekolahRepository{
		getMedsosFunc: func(ctx context.Context) (*model.MedsosSekolah, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := svc.GetMedsos(context.Background())
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Op != "get" || re.Entity != "medsos_sekolah" {
		t.Errorf("expected (get, medsos_sekolah), got (%q, %q)", re.Op, re.Entity)
	}
}
