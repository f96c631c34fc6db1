package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// GuruRepository defines the persistence interface for staff directory entries.
type GuruRepository interface {
	List(ctx context.Context) ([]model.Guru, error)
	Create(ctx context.Context, g *model.Guru) error
	Update(ctx context.Context, g *model.Guru) error
	Delete(ctx context.Context, id string) error
}

// PgGuruRepository is the PostgreSQL implementation of GuruRepository.
type PgGuruRepository struct {
	pool *pgxpool.Pool
}

func NewPgGuruRepository(pool *pgxpool.Pool) *PgGuruRepository {
	return &PgGuruRepository{pool: pool}
}

var _ GuruRepository = (*PgGuruRepository)(nil)

func (r *PgGuruRepository) List(ctx context.Context) ([]model.Guru, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.nama, COALESCE(g.nip, ''), COALESCE(g.mapel, ''),
		        COALESCE(g.jurusan_id::text, ''), COALESCE(g.foto, ''),
		        COALESCE(j.nama_jurusan, '')
		 FROM guru g
		 LEFT JOIN jurusan j ON j.id = g.jurusan_id
		 ORDER BY g.nama`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Guru
	for rows.Next() {
		var g model.Guru
		if err := rows.Scan(&g.ID, &g.Nama, &g.NIP, &g.Mapel, &g.JurusanID,
			&g.Foto, &g.NamaJurusan); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PgGuruRepository) Create(ctx context.Context, g *model.Guru) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO guru (nama, nip, mapel, jurusan_id, foto)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, '')::uuid, NULLIF($5, ''))
		 RETURNING id`,
		g.Nama, g.NIP, g.Mapel, g.JurusanID, g.Foto,
	).Scan(&g.ID)
}

func (r *PgGuruRepository) Update(ctx context.Context, g *model.Guru) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE guru SET nama = $2, nip = NULLIF($3, ''), mapel = NULLIF($4, ''),
		        jurusan_id = NULLIF($5, '')::uuid, foto = NULLIF($6, '')
		 WHERE id = $1`,
		g.ID, g.Nama, g.NIP, g.Mapel, g.JurusanID, g.Foto)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgGuruRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM guru WHERE id = $1`, id)
	return err
}
