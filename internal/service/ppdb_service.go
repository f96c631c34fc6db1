package service

import (
	"context"
	"errors"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
)

const ppdbEntity = "ppdb_pendaftar"

// PPDBService is the gateway for admission records. Unlike pesan, no realtime
// channel is defined for this entity; status changes are reconciled directly
// from the call result by the status controller.
type PPDBService interface {
	Submit(ctx context.Context, p *model.PPDBPendaftar) error
	List(ctx context.Context) ([]model.PPDBPendaftar, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.PPDBPendaftar, error)
	Delete(ctx context.Context, id string) error
}

type ppdbServiceImpl struct {
	repo repository.PPDBRepository
}

// NewPPDBService creates a PPDBService backed by the given repository.
func NewPPDBService(repo repository.PPDBRepository) PPDBService {
	return &ppdbServiceImpl{repo: repo}
}

// Submit stores a new public admission submission with status forced to "baru".
func (s *ppdbServiceImpl) Submit(ctx context.Context, p *model.PPDBPendaftar) error {
	p.Status = model.PPDBStatusBaru
	if err := s.repo.Create(ctx, p); err != nil {
		return remoteErr("create", ppdbEntity, err)
	}
	return nil
}

func (s *ppdbServiceImpl) List(ctx context.Context) ([]model.PPDBPendaftar, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, remoteErr("list", ppdbEntity, err)
	}
	return out, nil
}

// UpdateStatus sets the applicant status. Any-to-any transitions are allowed;
// operators use this for manual corrections as well as the normal workflow.
func (s *ppdbServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
	if !model.ValidPPDBStatus(status) {
		return nil, ErrInvalidStatus
	}
	p, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, remoteErr("update", ppdbEntity, err)
	}
	return p, nil
}

func (s *ppdbServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return remoteErr("delete", ppdbEntity, err)
	}
	return nil
}
