package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// PengumumanRepository defines the persistence interface for announcements.
type PengumumanRepository interface {
	ListAll(ctx context.Context) ([]model.Pengumuman, error)
	// ListActive is the public subset: status true, start date reached,
	// end date absent or not yet passed.
	ListActive(ctx context.Context, today time.Time) ([]model.Pengumuman, error)
	Create(ctx context.Context, p *model.Pengumuman) error
	Update(ctx context.Context, p *model.Pengumuman) error
	Delete(ctx context.Context, id string) error
}

// PgPengumumanRepository is the PostgreSQL implementation of PengumumanRepository.
type PgPengumumanRepository struct {
	pool *pgxpool.Pool
}

func NewPgPengumumanRepository(pool *pgxpool.Pool) *PgPengumumanRepository {
	return &PgPengumumanRepository{pool: pool}
}

var _ PengumumanRepository = (*PgPengumumanRepository)(nil)

const pengumumanSelectCols = `id, judul, isi, tanggal_mulai, tanggal_selesai, status, created_at`

func (r *PgPengumumanRepository) list(ctx context.Context, query string, args ...any) ([]model.Pengumuman, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Pengumuman
	for rows.Next() {
		var p model.Pengumuman
		if err := rows.Scan(&p.ID, &p.Judul, &p.Isi, &p.TanggalMulai,
			&p.TanggalSelesai, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PgPengumumanRepository) ListAll(ctx context.Context) ([]model.Pengumuman, error) {
	return r.list(ctx, `SELECT `+pengumumanSelectCols+` FROM pengumuman ORDER BY created_at DESC`)
}

func (r *PgPengumumanRepository) ListActive(ctx context.Context, today time.Time) ([]model.Pengumuman, error) {
	return r.list(ctx,
		`SELECT `+pengumumanSelectCols+` FROM pengumuman
		 WHERE status = TRUE
		   AND tanggal_mulai <= $1
		   AND (tanggal_selesai IS NULL OR tanggal_selesai >= $1)
		 ORDER BY created_at DESC`,
		today)
}

func (r *PgPengumumanRepository) Create(ctx context.Context, p *model.Pengumuman) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO pengumuman (judul, isi, tanggal_mulai, tanggal_selesai, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.Judul, p.Isi, p.TanggalMulai, p.TanggalSelesai, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PgPengumumanRepository) Update(ctx context.Context, p *model.Pengumuman) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pengumuman SET judul = $2, isi = $3, tanggal_mulai = $4,
		        tanggal_selesai = $5, status = $6
		 WHERE id = $1`,
		p.ID, p.Judul, p.Isi, p.TanggalMulai, p.TanggalSelesai, p.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgPengumumanRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pengumuman WHERE id = $1`, id)
	return err
}
