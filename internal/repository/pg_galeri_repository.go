package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// GaleriRepository defines the persistence interface for gallery entries.
type GaleriRepository interface {
	List(ctx context.Context) ([]model.Galeri, error)
	Create(ctx context.Context, g *model.Galeri) error
	Update(ctx context.Context, g *model.Galeri) error
	Delete(ctx context.Context, id string) error
}

// PgGaleriRepository is the PostgreSQL implementation of GaleriRepository.
type PgGaleriRepository struct {
	pool *pgxpool.Pool
}

func NewPgGaleriRepository(pool *pgxpool.Pool) *PgGaleriRepository {
	return &PgGaleriRepository{pool: pool}
}

var _ GaleriRepository = (*PgGaleriRepository)(nil)

func (r *PgGaleriRepository) List(ctx context.Context) ([]model.Galeri, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, judul, COALESCE(deskripsi, ''), image_url, created_at
		 FROM galeri ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Galeri
	for rows.Next() {
		var g model.Galeri
		if err := rows.Scan(&g.ID, &g.Judul, &g.Deskripsi, &g.ImageURL, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PgGaleriRepository) Create(ctx context.Context, g *model.Galeri) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO galeri (judul, deskripsi, image_url)
		 VALUES ($1, NULLIF($2, ''), $3)
		 RETURNING id, created_at`,
		g.Judul, g.Deskripsi, g.ImageURL,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *PgGaleriRepository) Update(ctx context.Context, g *model.Galeri) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE galeri SET judul = $2, deskripsi = NULLIF($3, ''), image_url = $4
		 WHERE id = $1`,
		g.ID, g.Judul, g.Deskripsi, g.ImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgGaleriRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM galeri WHERE id = $1`, id)
	return err
}
