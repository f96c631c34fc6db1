package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/realtime"
	"github.com/smkbisa/backend/internal/repository"
)

type mockPesanRepository struct {
	listFunc         func(ctx context.Context) ([]model.Pesan, error)
	createFunc       func(ctx context.Context, p *model.Pesan) error
	updateStatusFunc func(ctx context.Context, id, status string) (*model.Pesan, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockPesanRepository) List(ctx context.Context) ([]model.Pesan, error) {
	return m.listFunc(ctx)
}

func (m *mockPesanRepository) Create(ctx context.Context, p *model.Pesan) error {
	return m.createFunc(ctx, p)
}

func (m *mockPesanRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Pesan, error) {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockPesanRepository) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

// recordingBroker captures published events.
type recordingBroker struct {
	events     []realtime.Event
	publishErr error
}

func (b *recordingBroker) Publish(ctx context.Context, ev realtime.Event) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBroker) Subscribe(ctx context.Context, table string) (<-chan realtime.Event, func(), error) {
	ch := make(chan realtime.Event)
	return ch, func() {}, nil
}

func TestPesanService_Submit_ForcesUnreadAndPublishesInsert(t *testing.T) {
	broker := &recordingBroker{}
	repo := &mockPesanRepository{
		createFunc: func(ctx context.Context, p *model.Pesan) error {
			p.ID = "id-1"
			p.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewPesanService(repo, broker)

	p := &model.Pesan{
		Nama:   "Budi",
		Email:  "budi@example.com",
		Subjek: "Informasi PPDB",
		Isi:    "Kapan pendaftaran dibuka?",
		Status: model.PesanStatusReplied, // caller-set status must be ignored
	}
	if err := svc.Submit(context.Background(), p); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if p.Status != model.PesanStatusUnread {
		t.Errorf("expected status forced to unread, got %q", p.Status)
	}

	if len(broker.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(broker.events))
	}
	ev := broker.events[0]
	if ev.Table != PesanTable || ev.Type != realtime.EventInsert {
		t.Errorf("expected pesan insert event, got %s/%s", ev.Table, ev.Type)
	}
	var row model.Pesan
	if err := ev.DecodeNew(&row); err != nil {
		t.Fatalf("DecodeNew() error: %v", err)
	}
	if row.ID != "id-1" {
		t.Errorf("expected event to carry the stored row, got id %q", row.ID)
	}
}

func TestPesanService_Submit_RepoErrorWrapped(t *testing.T) {
	broker := &recordingBroker{}
	repo := &mockPesanRepository{
		createFunc: func(ctx context.Context, p *model.Pesan) error {
			return errors.New("connection refused")
		},
	}
	svc := NewPesanService(repo, broker)

	err := svc.Submit(context.Background(), &model.Pesan{Nama: "Budi"})
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Op != "create" || re.Entity != PesanTable {
		t.Errorf("expected create/pesan, got %s/%s", re.Op, re.Entity)
	}
	if len(broker.events) != 0 {
		t.Error("expected no event published after failed create")
	}
}

func TestPesanService_UpdateStatus_PublishesUpdate(t *testing.T) {
	broker := &recordingBroker{}
	repo := &mockPesanRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Pesan, error) {
			return &model.Pesan{ID: id, Status: status}, nil
		},
	}
	svc := NewPesanService(repo, broker)

	p, err := svc.UpdateStatus(context.Background(), "id-1", model.PesanStatusRead)
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if p.Status != model.PesanStatusRead {
		t.Errorf("expected returned row status read, got %q", p.Status)
	}
	if len(broker.events) != 1 || broker.events[0].Type != realtime.EventUpdate {
		t.Fatalf("expected 1 update event, got %+v", broker.events)
	}
}

func TestPesanService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	broker := &recordingBroker{}
	repo := &mockPesanRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Pesan, error) {
			t.Error("unexpected repository call for invalid status")
			return nil, nil
		},
	}
	svc := NewPesanService(repo, broker)

	if _, err := svc.UpdateStatus(context.Background(), "id-1", "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestPesanService_UpdateStatus_NotFoundPassesThrough(t *testing.T) {
	broker := &recordingBroker{}
	repo := &mockPesanRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Pesan, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewPesanService(repo, broker)

	if _, err := svc.UpdateStatus(context.Background(), "gone", model.PesanStatusRead); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound unwrapped, got %v", err)
	}
	if len(broker.events) != 0 {
		t.Error("expected no event for a missing row")
	}
}

func TestPesanService_Delete_PublishesDeleteEvenWhenRowAbsent(t *testing.T) {
	broker := &recordingBroker{}
	repo := &mockPesanRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			// Row already gone: repository treats this as success.
			return nil
		},
	}
	svc := NewPesanService(repo, broker)

	if err := svc.Delete(context.Background(), "id-1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(broker.events) != 1 || broker.events[0].Type != realtime.EventDelete {
		t.Fatalf("expected 1 delete event, got %+v", broker.events)
	}
	if got := broker.events[0].OldID(); got != "id-1" {
		t.Errorf("expected old id id-1, got %q", got)
	}
}

func TestPesanService_PublishFailureDoesNotFailMutation(t *testing.T) {
	broker := &recordingBroker{publishErr: errors.New("redis down")}
	repo := &mockPesanRepository{
		createFunc: func(ctx context.Context, p *model.Pesan) error { return nil },
	}
	svc := NewPesanService(repo, broker)

	if err := svc.Submit(context.Background(), &model.Pesan{Nama: "Budi"}); err != nil {
		t.Errorf("expected mutation to succeed despite publish failure, got %v", err)
	}
}
