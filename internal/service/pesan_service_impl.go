package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/realtime"
	"github.com/smkbisa/backend/internal/repository"
)

// PesanTable is the broker channel key for contact messages.
const PesanTable = "pesan"

type pesanServiceImpl struct {
	repo   repository.PesanRepository
	broker realtime.Broker
}

// NewPesanService creates a PesanService backed by the given repository and broker.
func NewPesanService(repo repository.PesanRepository, broker realtime.Broker) PesanService {
	return &pesanServiceImpl{repo: repo, broker: broker}
}

// publish broadcasts a change event. Publish failures are logged, not
// returned: the mutation has already been persisted and the synchronizer
// recovers missed events on its next full re-fetch.
func (s *pesanServiceImpl) publish(ctx context.Context, ev realtime.Event, err error) {
	if err != nil {
		slog.Error("pesan: building change event failed", "type", ev.Type, "error", err)
		return
	}
	if err := s.broker.Publish(ctx, ev); err != nil {
		slog.Error("pesan: publishing change event failed", "type", ev.Type, "error", err)
	}
}

// Submit stores a new inbound message. Status is always forced to "unread"
// regardless of what the caller set.
func (s *pesanServiceImpl) Submit(ctx context.Context, p *model.Pesan) error {
	p.Status = model.PesanStatusUnread
	if err := s.repo.Create(ctx, p); err != nil {
		return remoteErr("create", PesanTable, err)
	}
	ev, err := realtime.NewInsert(PesanTable, p)
	s.publish(ctx, ev, err)
	return nil
}

// List returns all messages, newest first.
func (s *pesanServiceImpl) List(ctx context.Context) ([]model.Pesan, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, remoteErr("list", PesanTable, err)
	}
	return out, nil
}

// UpdateStatus sets a message's lifecycle status and returns the stored row.
// Any member of the enum may be set directly; no transition graph is enforced.
func (s *pesanServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*model.Pesan, error) {
	if !model.ValidPesanStatus(status) {
		return nil, ErrInvalidStatus
	}
	p, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, remoteErr("update", PesanTable, err)
	}
	ev, evErr := realtime.NewUpdate(PesanTable, p)
	s.publish(ctx, ev, evErr)
	return p, nil
}

// Delete removes a message. Deleting an id that is already gone succeeds
// (stale references reconcile as no-ops); the delete event is broadcast
// either way since applying it is idempotent.
func (s *pesanServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return remoteErr("delete", PesanTable, err)
	}
	s.publish(ctx, realtime.NewDelete(PesanTable, id), nil)
	return nil
}
