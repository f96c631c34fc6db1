package service

import (
	"context"
	"errors"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSetupDone is returned by Setup once at least one operator account exists.
var ErrSetupDone = errors.New("setup already completed")

// ProfileService manages operator accounts and credential checks.
type ProfileService interface {
	Login(ctx context.Context, email, password string) (*model.Profile, error)
	// Setup creates the first admin account; it refuses once any account exists.
	Setup(ctx context.Context, nama, email, password string) (*model.Profile, error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	Create(ctx context.Context, nama, email, password, role string) (*model.Profile, error)
	Update(ctx context.Context, id, nama, role string) error
	Delete(ctx context.Context, id string) error
}

type profileServiceImpl struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileServiceImpl{repo: repo}
}

func (s *profileServiceImpl) Login(ctx context.Context, email, password string) (*model.Profile, error) {
	p, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, remoteErr("login", "profiles", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *profileServiceImpl) Setup(ctx context.Context, nama, email, password string) (*model.Profile, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, remoteErr("setup", "profiles", err)
	}
	if n > 0 {
		return nil, ErrSetupDone
	}
	return s.Create(ctx, nama, email, password, model.RoleAdmin)
}

func (s *profileServiceImpl) Get(ctx context.Context, id string) (*model.Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *profileServiceImpl) List(ctx context.Context) ([]model.Profile, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, remoteErr("list", "profiles", err)
	}
	return out, nil
}

func (s *profileServiceImpl) Create(ctx context.Context, nama, email, password, role string) (*model.Profile, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidStatus
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p := &model.Profile{Nama: nama, Email: email, Role: role, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, remoteErr("create", "profiles", err)
	}
	return p, nil
}

func (s *profileServiceImpl) Update(ctx context.Context, id, nama, role string) error {
	if !model.ValidRole(role) {
		return ErrInvalidStatus
	}
	err := s.repo.Update(ctx, &model.Profile{ID: id, Nama: nama, Role: role})
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return remoteErr("update", "profiles", err)
}

func (s *profileServiceImpl) Delete(ctx context.Context, id string) error {
	return remoteErr("delete", "profiles", s.repo.Delete(ctx, id))
}
