package services

import (
	"context"

	"github.com/condoease/apiserver/internal/storage"
	"github.com/condoease/apiserver/types"
)

// TenantRepository defines persistence operations for tenants.
type TenantRepository interface {
	List(ctx context.Context) ([]types.Tenant, error)
	Get(ctx context.Context, id int) (types.Tenant, error)
	Create(ctx context.Context, tenant types.Tenant) (types.Tenant, error)
	Update(ctx context.Context, tenant types.Tenant) (types.Tenant, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
}

// OwnerRepository defines persistence operations for owners.
type OwnerRepository interface {
	List(ctx context.Context) ([]types.Owner, error)
	Get(ctx context.Context, id int) (types.Owner, error)
	Create(ctx context.Context, owner types.Owner) (types.Owner, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// LeaseRepository defines persistence operations for leases.
type LeaseRepository interface {
	List(ctx context.Context) ([]types.Lease, error)
	Get(ctx context.Context, id int) (types.Lease, error)
	Create(ctx context.Context, lease types.Lease) (types.Lease, error)
}

// TenantService encapsulates tenant use-cases.
type TenantService struct {
	repo TenantRepository
}

func NewTenantService(repo TenantRepository) *TenantService {
	return &TenantService{repo: repo}
}

func (s *TenantService) List(ctx context.Context) ([]types.Tenant, error) {
	return s.repo.List(ctx)
}

func (s *TenantService) Get(ctx context.Context, id int) (types.Tenant, error) {
	return s.repo.Get(ctx, id)
}

func (s *TenantService) Create(ctx context.Context, tenant types.Tenant) (types.Tenant, error) {
	if tenant.Status == "" {
		tenant.Status = "active"
	}
	return s.repo.Create(ctx, tenant)
}

func (s *TenantService) Update(ctx context.Context, tenant types.Tenant) (types.Tenant, error) {
	return s.repo.Update(ctx, tenant)
}

func (s *TenantService) UpdateStatus(ctx context.Context, id int, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *TenantService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// OwnerService encapsulates owner use-cases.
type OwnerService struct {
	repo OwnerRepository
}

func NewOwnerService(repo OwnerRepository) *OwnerService {
	return &OwnerService{repo: repo}
}

func (s *OwnerService) List(ctx context.Context) ([]types.Owner, error) {
	return s.repo.List(ctx)
}

func (s *OwnerService) Get(ctx context.Context, id int) (types.Owner, error) {
	return s.repo.Get(ctx, id)
}

func (s *OwnerService) Create(ctx context.Context, owner types.Owner) (types.Owner, error) {
	if owner.Status == "" {
		owner.Status = "active"
	}
	return s.repo.Create(ctx, owner)
}

func (s *OwnerService) UpdateStatus(ctx context.Context, id int, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

// LeaseService encapsulates lease use-cases. Creating a lease uploads
// the signed documents and marks the unit occupied.
type LeaseService struct {
	repo  LeaseRepository
	units UnitRepository
	files FileStore
}

func NewLeaseService(repo LeaseRepository, units UnitRepository, files FileStore) *LeaseService {
	return &LeaseService{repo: repo, units: units, files: files}
}

func (s *LeaseService) List(ctx context.Context) ([]types.Lease, error) {
	return s.repo.List(ctx)
}

func (s *LeaseService) Get(ctx context.Context, id int) (types.Lease, error) {
	return s.repo.Get(ctx, id)
}

func (s *LeaseService) Create(ctx context.Context, lease types.Lease, documents []Upload) (types.Lease, error) {
	if len(documents) > 0 && s.files != nil {
		keys, err := putUploads(ctx, s.files, storage.PrefixLeases, documents)
		if err != nil {
			return types.Lease{}, err
		}
		lease.Documents = keys
	}
	if lease.Status == "" {
		lease.Status = "active"
	}

	created, err := s.repo.Create(ctx, lease)
	if err != nil {
		return types.Lease{}, err
	}

	if err := s.units.SetOccupied(ctx, created.PropertyUnitID, true); err != nil {
		return types.Lease{}, err
	}
	return created, nil
}
