package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// JurusanRepository defines the persistence interface for academic programs.
type JurusanRepository interface {
	List(ctx context.Context) ([]model.Jurusan, error)
	Create(ctx context.Context, j *model.Jurusan) error
	Update(ctx context.Context, j *model.Jurusan) error
	Delete(ctx context.Context, id string) error
}

// PgJurusanRepository is the PostgreSQL implementation of JurusanRepository.
type PgJurusanRepository struct {
	pool *pgxpool.Pool
}

func NewPgJurusanRepository(pool *pgxpool.Pool) *PgJurusanRepository {
	return &PgJurusanRepository{pool: pool}
}

var _ JurusanRepository = (*PgJurusanRepository)(nil)

func (r *PgJurusanRepository) List(ctx context.Context) ([]model.Jurusan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nama_jurusan, singkatan, COALESCE(deskripsi, ''), COALESCE(icon, '')
		 FROM jurusan ORDER BY nama_jurusan`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Jurusan
	for rows.Next() {
		var j model.Jurusan
		if err := rows.Scan(&j.ID, &j.NamaJurusan, &j.Singkatan, &j.Deskripsi, &j.Icon); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *PgJurusanRepository) Create(ctx context.Context, j *model.Jurusan) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO jurusan (nama_jurusan, singkatan, deskripsi, icon)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		 RETURNING id`,
		j.NamaJurusan, j.Singkatan, j.Deskripsi, j.Icon,
	).Scan(&j.ID)
}

func (r *PgJurusanRepository) Update(ctx context.Context, j *model.Jurusan) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jurusan SET nama_jurusan = $2, singkatan = $3,
		        deskripsi = NULLIF($4, ''), icon = NULLIF($5, '')
		 WHERE id = $1`,
		j.ID, j.NamaJurusan, j.Singkatan, j.Deskripsi, j.Icon)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgJurusanRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM jurusan WHERE id = $1`, id)
	return err
}
