package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// PesanRepository defines the persistence interface for inbound messages.
type PesanRepository interface {
	List(ctx context.Context) ([]model.Pesan, error)
	Create(ctx context.Context, p *model.Pesan) error
	UpdateStatus(ctx context.Context, id, status string) (*model.Pesan, error)
	// Delete removes a row. Deleting an id that is already gone is a no-op,
	// not an error, so that concurrent deletions reconcile cleanly.
	Delete(ctx context.Context, id string) error
}

// PgPesanRepository is the PostgreSQL implementation of PesanRepository.
type PgPesanRepository struct {
	pool *pgxpool.Pool
}

func NewPgPesanRepository(pool *pgxpool.Pool) *PgPesanRepository {
	return &PgPesanRepository{pool: pool}
}

var _ PesanRepository = (*PgPesanRepository)(nil)

const pesanSelectCols = `id, nama, email, COALESCE(no_hp, ''), subjek, isi, status, created_at`

func scanPesan(scan func(...any) error) (*model.Pesan, error) {
	var p model.Pesan
	if err := scan(&p.ID, &p.Nama, &p.Email, &p.NoHP, &p.Subjek, &p.Isi, &p.Status, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every message, newest first.
func (r *PgPesanRepository) List(ctx context.Context) ([]model.Pesan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pesanSelectCols+` FROM pesan ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Pesan
	for rows.Next() {
		p, err := scanPesan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create inserts a new pesan row and populates p.ID/CreatedAt from RETURNING.
func (r *PgPesanRepository) Create(ctx context.Context, p *model.Pesan) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO pesan (nama, email, no_hp, subjek, isi, status)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		 RETURNING id, created_at`,
		p.Nama, p.Email, p.NoHP, p.Subjek, p.Isi, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

// UpdateStatus sets the lifecycle status and returns the updated row.
func (r *PgPesanRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Pesan, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE pesan SET status = $2 WHERE id = $1
		 RETURNING `+pesanSelectCols, id, status)
	p, err := scanPesan(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgPesanRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pesan WHERE id = $1`, id)
	return err
}
