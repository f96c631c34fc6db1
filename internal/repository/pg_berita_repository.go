package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// BeritaRepository defines the persistence interface for news articles.
type BeritaRepository interface {
	ListAll(ctx context.Context) ([]model.Berita, error)
	// ListPublished is the public subset: status = "publish" only.
	ListPublished(ctx context.Context) ([]model.Berita, error)
	FindBySlug(ctx context.Context, slug string) (*model.Berita, error)
	Create(ctx context.Context, b *model.Berita) error
	Update(ctx context.Context, b *model.Berita) error
	Delete(ctx context.Context, id string) error
}

// PgBeritaRepository is the PostgreSQL implementation of BeritaRepository.
type PgBeritaRepository struct {
	pool *pgxpool.Pool
}

func NewPgBeritaRepository(pool *pgxpool.Pool) *PgBeritaRepository {
	return &PgBeritaRepository{pool: pool}
}

var _ BeritaRepository = (*PgBeritaRepository)(nil)

const beritaSelectCols = `id, judul, slug, konten, COALESCE(thumbnail, ''), status, COALESCE(penulis, ''), created_at`

func (r *PgBeritaRepository) list(ctx context.Context, query string, args ...any) ([]model.Berita, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Berita
	for rows.Next() {
		var b model.Berita
		if err := rows.Scan(&b.ID, &b.Judul, &b.Slug, &b.Konten, &b.Thumbnail,
			&b.Status, &b.Penulis, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PgBeritaRepository) ListAll(ctx context.Context) ([]model.Berita, error) {
	return r.list(ctx, `SELECT `+beritaSelectCols+` FROM berita ORDER BY created_at DESC`)
}

func (r *PgBeritaRepository) ListPublished(ctx context.Context) ([]model.Berita, error) {
	return r.list(ctx,
		`SELECT `+beritaSelectCols+` FROM berita WHERE status = $1 ORDER BY created_at DESC`,
		model.BeritaStatusPublish)
}

func (r *PgBeritaRepository) FindBySlug(ctx context.Context, slug string) (*model.Berita, error) {
	var b model.Berita
	err := r.pool.QueryRow(ctx,
		`SELECT `+beritaSelectCols+` FROM berita WHERE slug = $1`, slug,
	).Scan(&b.ID, &b.Judul, &b.Slug, &b.Konten, &b.Thumbnail, &b.Status, &b.Penulis, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PgBeritaRepository) Create(ctx context.Context, b *model.Berita) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO berita (judul, slug, konten, thumbnail, status, penulis)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))
		 RETURNING id, created_at`,
		b.Judul, b.Slug, b.Konten, b.Thumbnail, b.Status, b.Penulis,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *PgBeritaRepository) Update(ctx context.Context, b *model.Berita) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE berita SET judul = $2, slug = $3, konten = $4,
		        thumbnail = NULLIF($5, ''), status = $6, penulis = NULLIF($7, '')
		 WHERE id = $1`,
		b.ID, b.Judul, b.Slug, b.Konten, b.Thumbnail, b.Status, b.Penulis)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgBeritaRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM berita WHERE id = $1`, id)
	return err
}
