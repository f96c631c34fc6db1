package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
)

const beritaEntity = "berita"

// BeritaService is the gateway for news articles.
type BeritaService interface {
	ListAll(ctx context.Context) ([]model.Berita, error)
	ListPublished(ctx context.Context) ([]model.Berita, error)
	GetBySlug(ctx context.Context, slug string) (*model.Berita, error)
	Create(ctx context.Context, b *model.Berita) error
	Update(ctx context.Context, b *model.Berita) error
	Delete(ctx context.Context, id string) error
}

type beritaServiceImpl struct {
	repo repository.BeritaRepository
}

// NewBeritaService creates a BeritaService backed by the given repository.
func NewBeritaService(repo repository.BeritaRepository) BeritaService {
	return &beritaServiceImpl{repo: repo}
}

func (s *beritaServiceImpl) ListAll(ctx context.Context) ([]model.Berita, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, remoteErr("list", beritaEntity, err)
	}
	return out, nil
}

func (s *beritaServiceImpl) ListPublished(ctx context.Context) ([]model.Berita, error) {
	out, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, remoteErr("list", beritaEntity, err)
	}
	return out, nil
}

func (s *beritaServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Berita, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *beritaServiceImpl) Create(ctx context.Context, b *model.Berita) error {
	if b.Slug == "" {
		b.Slug = Slugify(b.Judul)
	}
	if b.Status == "" {
		b.Status = model.BeritaStatusDraft
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return remoteErr("create", beritaEntity, err)
	}
	return nil
}

func (s *beritaServiceImpl) Update(ctx context.Context, b *model.Berita) error {
	if b.Slug == "" {
		b.Slug = Slugify(b.Judul)
	}
	err := s.repo.Update(ctx, b)
	if err == repository.ErrNotFound {
		return err
	}
	return remoteErr("update", beritaEntity, err)
}

func (s *beritaServiceImpl) Delete(ctx context.Context, id string) error {
	return remoteErr("delete", beritaEntity, s.repo.Delete(ctx, id))
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a judul into a URL slug: lowercase, non-alphanumerics
// collapsed into single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
