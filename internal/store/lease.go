package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// LeaseRepository handles persistence for leases.
type LeaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

func (r *LeaseRepository) List(ctx context.Context) ([]types.Lease, error) {
	const query = `
		SELECT id, property_id, property_unit_id, tenant_id, rent_price, deposit_price,
			start_date, end_date, documents, status, created_at, updated_at
		FROM leases
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leases := make([]types.Lease, 0)
	for rows.Next() {
		lease, err := scanLease(rows.Scan)
		if err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leases, nil
}

func (r *LeaseRepository) Get(ctx context.Context, id int) (types.Lease, error) {
	const query = `
		SELECT id, property_id, property_unit_id, tenant_id, rent_price, deposit_price,
			start_date, end_date, documents, status, created_at, updated_at
		FROM leases
		WHERE id = $1`
	lease, err := scanLease(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Lease{}, ErrNotFound
		}
		return types.Lease{}, err
	}
	return lease, nil
}

func (r *LeaseRepository) Create(ctx context.Context, lease types.Lease) (types.Lease, error) {
	now := time.Now()
	lease.CreatedAt = now
	lease.UpdatedAt = now

	documentsJSON, err := json.Marshal(sliceOrEmpty(lease.Documents))
	if err != nil {
		return types.Lease{}, err
	}

	const query = `
		INSERT INTO leases (property_id, property_unit_id, tenant_id, rent_price,
			deposit_price, start_date, end_date, documents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		lease.PropertyID,
		lease.PropertyUnitID,
		lease.TenantID,
		lease.RentPrice,
		lease.DepositPrice,
		lease.StartDate,
		lease.EndDate,
		documentsJSON,
		lease.Status,
		lease.CreatedAt,
		lease.UpdatedAt,
	).Scan(&lease.ID); err != nil {
		return types.Lease{}, translateError(err)
	}
	return lease, nil
}

func scanLease(scan func(dest ...any) error) (types.Lease, error) {
	var lease types.Lease
	var documentsJSON []byte
	if err := scan(
		&lease.ID,
		&lease.PropertyID,
		&lease.PropertyUnitID,
		&lease.TenantID,
		&lease.RentPrice,
		&lease.DepositPrice,
		&lease.StartDate,
		&lease.EndDate,
		&documentsJSON,
		&lease.Status,
		&lease.CreatedAt,
		&lease.UpdatedAt,
	); err != nil {
		return types.Lease{}, err
	}
	_ = json.Unmarshal(documentsJSON, &lease.Documents)
	return lease, nil
}
