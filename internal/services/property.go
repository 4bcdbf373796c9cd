package services

import (
	"context"

	"github.com/condoease/apiserver/internal/storage"
	"github.com/condoease/apiserver/types"
)

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Property, int, error)
	Get(ctx context.Context, id int) (types.Property, error)
	Create(ctx context.Context, property types.Property) (types.Property, error)
	Update(ctx context.Context, property types.Property) (types.Property, error)
	Delete(ctx context.Context, id int) error
}

// PropertyService encapsulates property use-cases.
type PropertyService struct {
	repo  PropertyRepository
	files FileStore
}

func NewPropertyService(repo PropertyRepository, files FileStore) *PropertyService {
	return &PropertyService{repo: repo, files: files}
}

func (s *PropertyService) List(ctx context.Context, offset, limit int) ([]types.Property, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *PropertyService) Get(ctx context.Context, id int) (types.Property, error) {
	return s.repo.Get(ctx, id)
}

// Create uploads the property images and persists the record.
func (s *PropertyService) Create(ctx context.Context, property types.Property, images []Upload) (types.Property, error) {
	if len(images) > 0 && s.files != nil {
		keys, err := putUploads(ctx, s.files, storage.PrefixProperties, images)
		if err != nil {
			return types.Property{}, err
		}
		property.Images = keys
	}
	return s.repo.Create(ctx, property)
}

func (s *PropertyService) Update(ctx context.Context, property types.Property) (types.Property, error) {
	return s.repo.Update(ctx, property)
}

func (s *PropertyService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
