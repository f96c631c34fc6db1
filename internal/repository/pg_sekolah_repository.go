package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smkbisa/backend/internal/model"
)

// SekolahRepository holds the two single-row site settings tables:
// identitas_sekolah (branding) and medsos_sekolah (social links).
type SekolahRepository interface {
	GetIdentitas(ctx context.Context) (*model.IdentitasSekolah, error)
	SaveIdentitas(ctx context.Context, s *model.IdentitasSekolah) error
	GetMedsos(ctx context.Context) (*model.MedsosSekolah, error)
	SaveMedsos(ctx context.Context, m *model.MedsosSekolah) error
}

// PgSekolahRepository is the PostgreSQL implementation of SekolahRepository.
type PgSekolahRepository struct {
	pool *pgxpool.Pool
}

func NewPgSekolahRepository(pool *pgxpool.Pool) *PgSekolahRepository {
	return &PgSekolahRepository{pool: pool}
}

var _ SekolahRepository = (*PgSekolahRepository)(nil)

func (r *PgSekolahRepository) GetIdentitas(ctx context.Context) (*model.IdentitasSekolah, error) {
	var s model.IdentitasSekolah
	err := r.pool.QueryRow(ctx,
		`SELECT id, nama_sekolah, npsn, alamat, email, no_tlp,
		        COALESCE(koordinat_ls, ''), COALESCE(koordinat_lb, ''),
		        nama_kepsek, COALESCE(nip_kepsek, ''),
		        COALESCE(foto_kepsek, ''), COALESCE(logo_sekolah, '')
		 FROM identitas_sekolah LIMIT 1`,
	).Scan(&s.ID, &s.NamaSekolah, &s.NPSN, &s.Alamat, &s.Email, &s.NoTlp,
		&s.KoordinatLS, &s.KoordinatLB, &s.NamaKepsek, &s.NIPKepsek,
		&s.FotoKepsek, &s.LogoSekolah)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveIdentitas inserts the row on first save, then updates it in place.
func (r *PgSekolahRepository) SaveIdentitas(ctx context.Context, s *model.IdentitasSekolah) error {
	if s.ID == "" {
		existing, err := r.GetIdentitas(ctx)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if existing != nil {
			s.ID = existing.ID
		}
	}

	if s.ID == "" {
		return r.pool.QueryRow(ctx,
			`INSERT INTO identitas_sekolah
			   (nama_sekolah, npsn, alamat, email, no_tlp, koordinat_ls, koordinat_lb,
			    nama_kepsek, nip_kepsek, foto_kepsek, logo_sekolah)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''),
			         $8, NULLIF($9,''), NULLIF($10,''), NULLIF($11,''))
			 RETURNING id`,
			s.NamaSekolah, s.NPSN, s.Alamat, s.Email, s.NoTlp, s.KoordinatLS,
			s.KoordinatLB, s.NamaKepsek, s.NIPKepsek, s.FotoKepsek, s.LogoSekolah,
		).Scan(&s.ID)
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE identitas_sekolah SET
		   nama_sekolah = $2, npsn = $3, alamat = $4, email = $5, no_tlp = $6,
		   koordinat_ls = NULLIF($7,''), koordinat_lb = NULLIF($8,''),
		   nama_kepsek = $9, nip_kepsek = NULLIF($10,''),
		   foto_kepsek = NULLIF($11,''), logo_sekolah = NULLIF($12,'')
		 WHERE id = $1`,
		s.ID, s.NamaSekolah, s.NPSN, s.Alamat, s.Email, s.NoTlp, s.KoordinatLS,
		s.KoordinatLB, s.NamaKepsek, s.NIPKepsek, s.FotoKepsek, s.LogoSekolah)
	return err
}

func (r *PgSekolahRepository) GetMedsos(ctx context.Context) (*model.MedsosSekolah, error) {
	var m model.MedsosSekolah
	err := r.pool.QueryRow(ctx,
		`SELECT id, COALESCE(instagram, ''), COALESCE(whatsapp, ''),
		        COALESCE(facebook, ''), COALESCE(youtube, ''), COALESCE(tiktok, '')
		 FROM medsos_sekolah LIMIT 1`,
	).Scan(&m.ID, &m.Instagram, &m.Whatsapp, &m.Facebook, &m.Youtube, &m.Tiktok)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMedsos inserts the row on first save, then updates it in place.
func (r *PgSekolahRepository) SaveMedsos(ctx context.Context, m *model.MedsosSekolah) error {
	if m.ID == "" {
		existing, err := r.GetMedsos(ctx)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if existing != nil {
			m.ID = existing.ID
		}
	}

	if m.ID == "" {
		return r.pool.QueryRow(ctx,
			`INSERT INTO medsos_sekolah (instagram, whatsapp, facebook, youtube, tiktok)
			 VALUES (NULLIF($1,''), NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), NULLIF($5,''))
			 RETURNING id`,
			m.Instagram, m.Whatsapp, m.Facebook, m.Youtube, m.Tiktok,
		).Scan(&m.ID)
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE medsos_sekolah SET
		   instagram = NULLIF($2,''), whatsapp = NULLIF($3,''),
		   facebook = NULLIF($4,''), youtube = NULLIF($5,''), tiktok = NULLIF($6,'')
		 WHERE id = $1`,
		m.ID, m.Instagram, m.Whatsapp, m.Facebook, m.Youtube, m.Tiktok)
	return err
}
