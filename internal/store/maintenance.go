package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// MaintenanceRepository handles persistence for maintenance requests.
type MaintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// List returns requests, optionally filtered by status.
func (r *MaintenanceRepository) List(ctx context.Context, status string) ([]types.MaintenanceRequest, error) {
	const baseQuery = `
		SELECT id, property_unit_id, tenant_id, title, description, status, comment,
			scheduled_at, created_at, updated_at
		FROM maintenance_requests`

	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = r.db.QueryContext(ctx, baseQuery+` ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, baseQuery+` WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]types.MaintenanceRequest, 0)
	for rows.Next() {
		var req types.MaintenanceRequest
		if err := rows.Scan(
			&req.ID,
			&req.PropertyUnitID,
			&req.TenantID,
			&req.Title,
			&req.Description,
			&req.Status,
			&req.Comment,
			&req.ScheduledAt,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MaintenanceRepository) Get(ctx context.Context, id int) (types.MaintenanceRequest, error) {
	const query = `
		SELECT id, property_unit_id, tenant_id, title, description, status, comment,
			scheduled_at, created_at, updated_at
		FROM maintenance_requests
		WHERE id = $1`
	var req types.MaintenanceRequest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID,
		&req.PropertyUnitID,
		&req.TenantID,
		&req.Title,
		&req.Description,
		&req.Status,
		&req.Comment,
		&req.ScheduledAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MaintenanceRequest{}, ErrNotFound
		}
		return types.MaintenanceRequest{}, err
	}
	return req, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, req types.MaintenanceRequest) (types.MaintenanceRequest, error) {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	const query = `
		INSERT INTO maintenance_requests (property_unit_id, tenant_id, title, description,
			status, comment, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		req.PropertyUnitID,
		req.TenantID,
		req.Title,
		req.Description,
		req.Status,
		req.Comment,
		req.ScheduledAt,
		req.CreatedAt,
		req.UpdatedAt,
	).Scan(&req.ID); err != nil {
		return types.MaintenanceRequest{}, translateError(err)
	}
	return req, nil
}

func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id int, status, comment string, scheduledAt *time.Time) error {
	const query = `
		UPDATE maintenance_requests
		SET status = $1, comment = $2, scheduled_at = $3, updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, status, comment, scheduledAt, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
