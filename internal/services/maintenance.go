package services

import (
	"context"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// ErrInvalidTransition is returned for a status change the lifecycle
// does not allow (pending → ongoing → completed).
var ErrInvalidTransition = errors.New("invalid status transition")

// MaintenanceRepository defines persistence operations for maintenance requests.
type MaintenanceRepository interface {
	List(ctx context.Context, status string) ([]types.MaintenanceRequest, error)
	Get(ctx context.Context, id int) (types.MaintenanceRequest, error)
	Create(ctx context.Context, req types.MaintenanceRequest) (types.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id int, status, comment string, scheduledAt *time.Time) error
}

// MaintenanceService encapsulates maintenance request use-cases.
type MaintenanceService struct {
	repo MaintenanceRepository
}

func NewMaintenanceService(repo MaintenanceRepository) *MaintenanceService {
	return &MaintenanceService{repo: repo}
}

func (s *MaintenanceService) List(ctx context.Context, status string) ([]types.MaintenanceRequest, error) {
	return s.repo.List(ctx, status)
}

func (s *MaintenanceService) Get(ctx context.Context, id int) (types.MaintenanceRequest, error) {
	return s.repo.Get(ctx, id)
}

func (s *MaintenanceService) Create(ctx context.Context, req types.MaintenanceRequest) (types.MaintenanceRequest, error) {
	req.Status = types.MaintenancePending
	return s.repo.Create(ctx, req)
}

// UpdateStatus advances a request along its lifecycle. A request can
// return to pending from ongoing, but never leave completed.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, id int, status, comment string, scheduledAt *time.Time) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !validTransition(current.Status, status) {
		return ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, status, comment, scheduledAt)
}

func validTransition(from, to string) bool {
	switch from {
	case types.MaintenancePending:
		return to == types.MaintenanceOngoing || to == types.MaintenancePending
	case types.MaintenanceOngoing:
		return to == types.MaintenanceCompleted || to == types.MaintenancePending
	default:
		return false
	}
}
