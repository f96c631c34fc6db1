package service

import (
	"context"
	"time"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
)

const pengumumanEntity = "pengumuman"

// PengumumanService is the gateway for announcements.
type PengumumanService interface {
	ListAll(ctx context.Context) ([]model.Pengumuman, error)
	// ListActive returns announcements visible on the public site today.
	ListActive(ctx context.Context) ([]model.Pengumuman, error)
	Create(ctx context.Context, p *model.Pengumuman) error
	Update(ctx context.Context, p *model.Pengumuman) error
	Delete(ctx context.Context, id string) error
}

type pengumumanServiceImpl struct {
	repo repository.PengumumanRepository
	// now is swappable in tests.
	now func() time.Time
}

// NewPengumumanService creates a PengumumanService backed by the given repository.
func NewPengumumanService(repo repository.PengumumanRepository) PengumumanService {
	return &pengumumanServiceImpl{repo: repo, now: time.Now}
}

func (s *pengumumanServiceImpl) ListAll(ctx context.Context) ([]model.Pengumuman, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, remoteErr("list", pengumumanEntity, err)
	}
	return out, nil
}

func (s *pengumumanServiceImpl) ListActive(ctx context.Context) ([]model.Pengumuman, error) {
	// Compare on whole days: an announcement starting today is already active.
	today := s.now().UTC().Truncate(24 * time.Hour)
	out, err := s.repo.ListActive(ctx, today)
	if err != nil {
		return nil, remoteErr("list", pengumumanEntity, err)
	}
	return out, nil
}

func (s *pengumumanServiceImpl) Create(ctx context.Context, p *model.Pengumuman) error {
	return remoteErr("create", pengumumanEntity, s.repo.Create(ctx, p))
}

func (s *pengumumanServiceImpl) Update(ctx context.Context, p *model.Pengumuman) error {
	err := s.repo.Update(ctx, p)
	if err == repository.ErrNotFound {
		return err
	}
	return remoteErr("update", pengumumanEntity, err)
}

func (s *pengumumanServiceImpl) Delete(ctx context.Context, id string) error {
	return remoteErr("delete", pengumumanEntity, s.repo.Delete(ctx, id))
}
