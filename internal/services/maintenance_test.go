package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/condoease/apiserver/internal/store"
	"github.com/condoease/apiserver/types"
)

type fakeMaintenanceRepo struct {
	requests map[int]types.MaintenanceRequest
	nextID   int
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{requests: map[int]types.MaintenanceRequest{}, nextID: 1}
}

func (r *fakeMaintenanceRepo) List(_ context.Context, status string) ([]types.MaintenanceRequest, error) {
	out := make([]types.MaintenanceRequest, 0)
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeMaintenanceRepo) Get(_ context.Context, id int) (types.MaintenanceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return types.MaintenanceRequest{}, store.ErrNotFound
	}
	return req, nil
}

func (r *fakeMaintenanceRepo) Create(_ context.Context, req types.MaintenanceRequest) (types.MaintenanceRequest, error) {
	req.ID = r.nextID
	r.nextID++
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeMaintenanceRepo) UpdateStatus(_ context.Context, id int, status, comment string, scheduledAt *time.Time) error {
	req, ok := r.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	req.Status = status
	req.Comment = comment
	req.ScheduledAt = scheduledAt
	r.requests[id] = req
	return nil
}

func TestMaintenanceCreate_ForcesPending(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	svc := NewMaintenanceService(repo)

	created, err := svc.Create(context.Background(), types.MaintenanceRequest{
		PropertyUnitID: 1, TenantID: 2, Title: "Leaking faucet",
		Status: types.MaintenanceCompleted,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Status != types.MaintenancePending {
		t.Fatalf("expected pending, got %q", created.Status)
	}
}

func TestMaintenanceUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "pending to ongoing", from: types.MaintenancePending, to: types.MaintenanceOngoing},
		{name: "pending stays pending", from: types.MaintenancePending, to: types.MaintenancePending},
		{name: "ongoing to completed", from: types.MaintenanceOngoing, to: types.MaintenanceCompleted},
		{name: "ongoing back to pending", from: types.MaintenanceOngoing, to: types.MaintenancePending},
		{name: "pending cannot skip to completed", from: types.MaintenancePending, to: types.MaintenanceCompleted, wantErr: ErrInvalidTransition},
		{name: "completed is terminal", from: types.MaintenanceCompleted, to: types.MaintenanceOngoing, wantErr: ErrInvalidTransition},
		{name: "completed cannot reopen", from: types.MaintenanceCompleted, to: types.MaintenancePending, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeMaintenanceRepo()
			repo.requests[1] = types.MaintenanceRequest{ID: 1, Status: tt.from}
			svc := NewMaintenanceService(repo)

			err := svc.UpdateStatus(context.Background(), 1, tt.to, "note", nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if repo.requests[1].Status != tt.from {
					t.Fatalf("status must not change on rejected transition")
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus error: %v", err)
			}
			if repo.requests[1].Status != tt.to {
				t.Fatalf("expected status %q, got %q", tt.to, repo.requests[1].Status)
			}
		})
	}
}

func TestMaintenanceUpdateStatus_NotFound(t *testing.T) {
	svc := NewMaintenanceService(newFakeMaintenanceRepo())
	err := svc.UpdateStatus(context.Background(), 99, types.MaintenanceOngoing, "", nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
