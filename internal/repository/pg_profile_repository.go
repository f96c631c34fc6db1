package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// ProfileRepository defines the persistence interface for operator accounts.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]model.Profile, error)
	Create(ctx context.Context, p *model.Profile) error
	Update(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, id string) error
}

// PgProfileRepository is the PostgreSQL implementation of ProfileRepository.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// Ping verifies DB connectivity (used by the health endpoint).
func (r *PgProfileRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var _ ProfileRepository = (*PgProfileRepository)(nil)

const profileSelectCols = `id, nama, email, role, password_hash, created_at`

func scanProfile(scan func(...any) error) (*model.Profile, error) {
	var p model.Profile
	if err := scan(&p.ID, &p.Nama, &p.Email, &p.Role, &p.PasswordHash, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileSelectCols+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileSelectCols+` FROM profiles WHERE email = $1`, email)
	p, err := scanProfile(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PgProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, err
}

func (r *PgProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileSelectCols+` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PgProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO profiles (nama, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.Nama, p.Email, p.Role, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt)
}

// Update changes nama and role only; email and password are immutable here.
func (r *PgProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET nama = $2, role = $3 WHERE id = $1`,
		p.ID, p.Nama, p.Role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProfileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	return err
}
