package services

import (
	"context"
	"errors"

	"github.com/condoease/apiserver/internal/storage"
	"github.com/condoease/apiserver/types"
)

// ErrUploadsDisabled is returned when no object storage is configured.
var ErrUploadsDisabled = errors.New("uploads are not configured")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	UpdateAvatar(ctx context.Context, id int, avatar string) error
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo  UserRepository
	files FileStore
}

func NewUserService(repo UserRepository, files FileStore) *UserService {
	return &UserService{repo: repo, files: files}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Update(ctx, user)
}

// UpdateAvatar stores the uploaded image and points the user record at
// the new object key, deleting the previous avatar if one existed.
func (s *UserService) UpdateAvatar(ctx context.Context, id int, upload Upload) (string, error) {
	if s.files == nil {
		return "", ErrUploadsDisabled
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	key, err := putUpload(ctx, s.files, storage.PrefixAvatars, upload)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateAvatar(ctx, id, key); err != nil {
		return "", err
	}

	if current.Avatar != "" && current.Avatar != key {
		_ = s.files.Delete(ctx, current.Avatar)
	}
	return key, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
