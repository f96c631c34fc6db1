package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// PPDBRepository defines the persistence interface for admission records.
type PPDBRepository interface {
	List(ctx context.Context) ([]model.PPDBPendaftar, error)
	Create(ctx context.Context, p *model.PPDBPendaftar) error
	UpdateStatus(ctx context.Context, id, status string) (*model.PPDBPendaftar, error)
	Delete(ctx context.Context, id string) error
}

// PgPPDBRepository is the PostgreSQL implementation of PPDBRepository.
type PgPPDBRepository struct {
	pool *pgxpool.Pool
}

func NewPgPPDBRepository(pool *pgxpool.Pool) *PgPPDBRepository {
	return &PgPPDBRepository{pool: pool}
}

var _ PPDBRepository = (*PgPPDBRepository)(nil)

// List returns every applicant, newest first, with the chosen program name joined in.
func (r *PgPPDBRepository) List(ctx context.Context) ([]model.PPDBPendaftar, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.nama, p.asal_sekolah, COALESCE(p.jurusan_pilihan::text, ''), p.no_hp,
		        COALESCE(p.alamat, ''), p.status, p.created_at,
		        COALESCE(j.nama_jurusan, '')
		 FROM ppdb_pendaftar p
		 LEFT JOIN jurusan j ON j.id = p.jurusan_pilihan
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PPDBPendaftar
	for rows.Next() {
		var p model.PPDBPendaftar
		if err := rows.Scan(&p.ID, &p.Nama, &p.AsalSekolah, &p.JurusanPilihan,
			&p.NoHP, &p.Alamat, &p.Status, &p.CreatedAt, &p.NamaJurusan); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a new applicant row and populates p.ID/CreatedAt from RETURNING.
func (r *PgPPDBRepository) Create(ctx context.Context, p *model.PPDBPendaftar) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO ppdb_pendaftar (nama, asal_sekolah, jurusan_pilihan, no_hp, alamat, status)
		 VALUES ($1, $2, NULLIF($3, '')::uuid, $4, NULLIF($5, ''), $6)
		 RETURNING id, created_at`,
		p.Nama, p.AsalSekolah, p.JurusanPilihan, p.NoHP, p.Alamat, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

// UpdateStatus sets the applicant status and returns the updated row.
func (r *PgPPDBRepository) UpdateStatus(ctx context.Context, id, status string) (*model.PPDBPendaftar, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE ppdb_pendaftar SET status = $2 WHERE id = $1
		 RETURNING id, nama, asal_sekolah, COALESCE(jurusan_pilihan::text, ''), no_hp,
		           COALESCE(alamat, ''), status, created_at`, id, status)

	var p model.PPDBPendaftar
	err := row.Scan(&p.ID, &p.Nama, &p.AsalSekolah, &p.JurusanPilihan,
		&p.NoHP, &p.Alamat, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgPPDBRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ppdb_pendaftar WHERE id = $1`, id)
	return err
}
