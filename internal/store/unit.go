package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// UnitRepository handles persistence for property units.
type UnitRepository struct {
	db *sql.DB
}

func NewUnitRepository(db *sql.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

const unitColumns = `id, property_id, unit_type, unit_number, commission_percentage,
		rent_price, deposit_price, floor, size, description, images, occupied,
		created_at, updated_at`

func (r *UnitRepository) List(ctx context.Context, offset, limit int) ([]types.PropertyUnit, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM property_units`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT ` + unitColumns + `
		FROM property_units
		ORDER BY id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	units := make([]types.PropertyUnit, 0, limit)
	for rows.Next() {
		unit, err := scanUnit(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return units, total, nil
}

// ListVacant returns units without an active lease.
func (r *UnitRepository) ListVacant(ctx context.Context) ([]types.PropertyUnit, error) {
	const query = `
		SELECT ` + unitColumns + `
		FROM property_units
		WHERE occupied = FALSE
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]types.PropertyUnit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows.Scan)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *UnitRepository) Get(ctx context.Context, id int) (types.PropertyUnit, error) {
	const query = `
		SELECT ` + unitColumns + `
		FROM property_units
		WHERE id = $1`
	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PropertyUnit{}, ErrNotFound
		}
		return types.PropertyUnit{}, err
	}
	return unit, nil
}

func (r *UnitRepository) Create(ctx context.Context, unit types.PropertyUnit) (types.PropertyUnit, error) {
	now := time.Now()
	unit.CreatedAt = now
	unit.UpdatedAt = now

	imagesJSON, err := json.Marshal(sliceOrEmpty(unit.Images))
	if err != nil {
		return types.PropertyUnit{}, err
	}

	const query = `
		INSERT INTO property_units (property_id, unit_type, unit_number,
			commission_percentage, rent_price, deposit_price, floor, size,
			description, images, occupied, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		unit.PropertyID,
		unit.UnitType,
		unit.UnitNumber,
		unit.CommissionPercentage,
		unit.RentPrice,
		unit.DepositPrice,
		unit.Floor,
		unit.Size,
		unit.Description,
		imagesJSON,
		unit.Occupied,
		unit.CreatedAt,
		unit.UpdatedAt,
	).Scan(&unit.ID); err != nil {
		return types.PropertyUnit{}, translateError(err)
	}
	return unit, nil
}

func (r *UnitRepository) SetOccupied(ctx context.Context, id int, occupied bool) error {
	const query = `UPDATE property_units SET occupied = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, occupied, time.Now(), id)
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

func (r *UnitRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM property_units WHERE id = $1`
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

func scanUnit(scan func(dest ...any) error) (types.PropertyUnit, error) {
	var unit types.PropertyUnit
	var imagesJSON []byte
	if err := scan(
		&unit.ID,
		&unit.PropertyID,
		&unit.UnitType,
		&unit.UnitNumber,
		&unit.CommissionPercentage,
		&unit.RentPrice,
		&unit.DepositPrice,
		&unit.Floor,
		&unit.Size,
		&unit.Description,
		&imagesJSON,
		&unit.Occupied,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	); err != nil {
		return types.PropertyUnit{}, err
	}
	_ = json.Unmarshal(imagesJSON, &unit.Images)
	return unit, nil
}
