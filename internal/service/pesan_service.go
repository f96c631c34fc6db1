package service

import (
	"context"

	"github.com/smkbisa/backend/internal/model"
)

// PesanService is the gateway for inbound contact messages. Every successful
// mutation is broadcast on the realtime broker; the inbox synchronizer is the
// only component that applies those events to live list state.
type PesanService interface {
	Submit(ctx context.Context, p *model.Pesan) error
	List(ctx context.Context) ([]model.Pesan, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Pesan, error)
	Delete(ctx context.Context, id string) error
}
