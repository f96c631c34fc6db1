package service

import (
	"context"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
)

// JurusanService is the gateway for academic programs.
type JurusanService interface {
	List(ctx context.Context) ([]model.Jurusan, error)
	Create(ctx context.Context, j *model.Jurusan) error
	Update(ctx context.Context, j *model.Jurusan) error
	Delete(ctx context.Context, id string) error
}

type jurusanServiceImpl struct {
	repo repository.JurusanRepository
}

func NewJurusanService(repo repository.JurusanRepository) JurusanService {
	return &jurusanServiceImpl{repo: repo}
}

func (s *jurusanServiceImpl) List(ctx context.Context) ([]model.Jurusan, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, remoteErr("list", "jurusan", err)
	}
	return out, nil
}

func (s *jurusanServiceImpl) Create(ctx context.Context, j *model.Jurusan) error {
	return remoteErr("create", "jurusan", s.repo.Create(ctx, j))
}

func (s *jurusanServiceImpl) Update(ctx context.Context, j *model.Jurusan) error {
	err := s.repo.Update(ctx, j)
	if err == repository.ErrNotFound {
		return err
	}
	return remoteErr("update", "jurusan", err)
}

func (s *jurusanServiceImpl) Delete(ctx context.Context, id string) error {
	return remoteErr("delete", "jurusan", s.repo.Delete(ctx, id))
}

// GuruService is the gateway for the staff directory.
type GuruService interface {
	List(ctx context.Context) ([]model.Guru, error)
	Create(ctx context.Context, g *model.Guru) error
	Update(ctx context.Context, g *model.Guru) error
	Delete(ctx context.Context, id string) error
}

type guruServiceImpl struct {
	repo repository.GuruRepository
}

func NewGuruService(repo repository.GuruRepository) GuruService {
	return &guruServiceImpl{repo: repo}
}

func (s *guruServiceImpl) List(ctx context.Context) ([]model.Guru, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, remoteErr("list", "guru", err)
	}
	return out, nil
}

func (s *guruServiceImpl) Create(ctx context.Context, g *model.Guru) error {
	return remoteErr("create", "guru", s.repo.Create(ctx, g))
}

func (s *guruServiceImpl) Update(ctx context.Context, g *model.Guru) error {
	err := s.repo.Update(ctx, g)
	if err == repository.ErrNotFound {
		return err
	}
	return remoteErr("update", "guru", err)
}

func (s *guruServiceImpl) Delete(ctx context.Context, id string) error {
	return remoteErr("delete", "guru", s.repo.Delete(ctx, id))
}

// GaleriService is the gateway for gallery entries.
type GaleriService interface {
	List(ctx context.Context) ([]model.Galeri, error)
	Create(ctx context.Context, g *model.Galeri) error
	Update(ctx context.Context, g *model.Galeri) error
	Delete(ctx context.Context, id string) error
}

type galeriServiceImpl struct {
	repo repository.GaleriRepository
}

func NewGaleriService(repo repository.GaleriRepository) GaleriService {
	return &galeriServiceImpl{repo: repo}
}

func (s *galeriServiceImpl) List(ctx context.Context) ([]model.Galeri, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, remoteErr("list", "galeri", err)
	}
	return out, nil
}

func (s *galeriServiceImpl) Create(ctx context.Context, g *model.Galeri) error {
	return remoteErr("create", "galeri", s.repo.Create(ctx, g))
}

func (s *galeriServiceImpl) Update(ctx context.Context, g *model.Galeri) error {
	err := s.repo.Update(ctx, g)
	if err == repository.ErrNotFound {
		return err
	}
	return remoteErr("update", "galeri", err)
}

func (s *galeriServiceImpl) Delete(ctx context.Context, id string) error {
	return remoteErr("delete", "galeri", s.repo.Delete(ctx, id))
}

// SekolahService is the gateway for the single-row identity and social tables.
type SekolahService interface {
	GetIdentitas(ctx context.Context) (*model.IdentitasSekolah, error)
	SaveIdentitas(ctx context.Context, s *model.IdentitasSekolah) error
	GetMedsos(ctx context.Context) (*model.MedsosSekolah, error)
	SaveMedsos(ctx context.Context, m *model.MedsosSekolah) error
}

type sekolahServiceImpl struct {
	repo repository.SekolahRepository
}

func NewSekolahService(repo repository.SekolahRepository) SekolahService {
	return &sekolahServiceImpl{repo: repo}
}

func (s *sekolahServiceImpl) GetIdentitas(ctx context.Context) (*model.IdentitasSekolah, error) {
	rec, err := s.repo.GetIdentitas(ctx)
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, remoteErr("get", "identitas_sekolah", err)
	}
	return rec, nil
}

func (s *sekolahServiceImpl) SaveIdentitas(ctx context.Context, rec *model.IdentitasSekolah) error {
	return remoteErr("save", "identitas_sekolah", s.repo.SaveIdentitas(ctx, rec))
}

func (s *sekolahServiceImpl) GetMedsos(ctx context.Context) (*model.MedsosSekolah, error) {
	rec, err := s.repo.GetMedsos(ctx)
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, remoteErr("get", "medsos_sekolah", err)
	}
	return rec, nil
}

func (s *sekolahServiceImpl) SaveMedsos(ctx context.Context, rec *model.MedsosSekolah) error {
	return remoteErr("save", "medsos_sekolah", s.repo.SaveMedsos(ctx, rec))
}
