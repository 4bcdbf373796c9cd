package services

import (
	"context"

	"github.com/condoease/apiserver/internal/storage"
	"github.com/condoease/apiserver/types"
)

// UnitRepository defines persistence operations for property units.
type UnitRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.PropertyUnit, int, error)
	ListVacant(ctx context.Context) ([]types.PropertyUnit, error)
	Get(ctx context.Context, id int) (types.PropertyUnit, error)
	Create(ctx context.Context, unit types.PropertyUnit) (types.PropertyUnit, error)
	SetOccupied(ctx context.Context, id int, occupied bool) error
	Delete(ctx context.Context, id int) error
}

// UnitService encapsulates property unit use-cases.
type UnitService struct {
	repo  UnitRepository
	files FileStore
}

func NewUnitService(repo UnitRepository, files FileStore) *UnitService {
	return &UnitService{repo: repo, files: files}
}

func (s *UnitService) List(ctx context.Context, offset, limit int) ([]types.PropertyUnit, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *UnitService) ListVacant(ctx context.Context) ([]types.PropertyUnit, error) {
	return s.repo.ListVacant(ctx)
}

func (s *UnitService) Get(ctx context.Context, id int) (types.PropertyUnit, error) {
	return s.repo.Get(ctx, id)
}

func (s *UnitService) Create(ctx context.Context, unit types.PropertyUnit, images []Upload) (types.PropertyUnit, error) {
	if len(images) > 0 && s.files != nil {
		keys, err := putUploads(ctx, s.files, storage.PrefixUnits, images)
		if err != nil {
			return types.PropertyUnit{}, err
		}
		unit.Images = keys
	}
	return s.repo.Create(ctx, unit)
}

func (s *UnitService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
