package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// TenantRepository handles persistence for tenants.
type TenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) List(ctx context.Context) ([]types.Tenant, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, status, created_at, updated_at
		FROM tenants
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := make([]types.Tenant, 0)
	for rows.Next() {
		var tenant types.Tenant
		if err := rows.Scan(
			&tenant.ID,
			&tenant.FirstName,
			&tenant.LastName,
			&tenant.Email,
			&tenant.Phone,
			&tenant.Status,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *TenantRepository) Get(ctx context.Context, id int) (types.Tenant, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, status, created_at, updated_at
		FROM tenants
		WHERE id = $1`
	var tenant types.Tenant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.FirstName,
		&tenant.LastName,
		&tenant.Email,
		&tenant.Phone,
		&tenant.Status,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Tenant{}, ErrNotFound
		}
		return types.Tenant{}, err
	}
	return tenant, nil
}

func (r *TenantRepository) Create(ctx context.Context, tenant types.Tenant) (types.Tenant, error) {
	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	const query = `
		INSERT INTO tenants (first_name, last_name, email, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.Status,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	).Scan(&tenant.ID); err != nil {
		return types.Tenant{}, translateError(err)
	}
	return tenant, nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant types.Tenant) (types.Tenant, error) {
	tenant.UpdatedAt = time.Now()

	const query = `
		UPDATE tenants
		SET first_name = $1,
			last_name = $2,
			email = $3,
			phone = $4,
			status = $5,
			updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.Status,
		tenant.UpdatedAt,
		tenant.ID,
	)
	if err != nil {
		return types.Tenant{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Tenant{}, err
	}
	if affected == 0 {
		return types.Tenant{}, ErrNotFound
	}
	return tenant, nil
}

func (r *TenantRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `UPDATE tenants SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
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

func (r *TenantRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM tenants WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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
