package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// PropertyRepository handles persistence for properties.
type PropertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) List(ctx context.Context, offset, limit int) ([]types.Property, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM properties`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, name, registered_owner, area_measurement, description,
			street, barangay, city, province, notes, units, features, images,
			created_at, updated_at
		FROM properties
		ORDER BY id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	properties := make([]types.Property, 0, limit)
	for rows.Next() {
		property, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *PropertyRepository) Get(ctx context.Context, id int) (types.Property, error) {
	const query = `
		SELECT id, name, registered_owner, area_measurement, description,
			street, barangay, city, province, notes, units, features, images,
			created_at, updated_at
		FROM properties
		WHERE id = $1`
	property, err := scanProperty(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Property{}, ErrNotFound
		}
		return types.Property{}, err
	}
	return property, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property types.Property) (types.Property, error) {
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	featuresJSON, err := json.Marshal(sliceOrEmpty(property.Features))
	if err != nil {
		return types.Property{}, err
	}
	imagesJSON, err := json.Marshal(sliceOrEmpty(property.Images))
	if err != nil {
		return types.Property{}, err
	}

	const query = `
		INSERT INTO properties (name, registered_owner, area_measurement, description,
			street, barangay, city, province, notes, units, features, images,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		property.Name,
		property.RegisteredOwner,
		property.AreaMeasurement,
		property.Description,
		property.Street,
		property.Barangay,
		property.City,
		property.Province,
		property.Notes,
		property.Units,
		featuresJSON,
		imagesJSON,
		property.CreatedAt,
		property.UpdatedAt,
	).Scan(&property.ID); err != nil {
		return types.Property{}, translateError(err)
	}
	return property, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property types.Property) (types.Property, error) {
	property.UpdatedAt = time.Now()

	featuresJSON, err := json.Marshal(sliceOrEmpty(property.Features))
	if err != nil {
		return types.Property{}, err
	}
	imagesJSON, err := json.Marshal(sliceOrEmpty(property.Images))
	if err != nil {
		return types.Property{}, err
	}

	const query = `
		UPDATE properties
		SET name = $1,
			registered_owner = $2,
			area_measurement = $3,
			description = $4,
			street = $5,
			barangay = $6,
			city = $7,
			province = $8,
			notes = $9,
			units = $10,
			features = $11,
			images = $12,
			updated_at = $13
		WHERE id = $14`
	result, err := r.db.ExecContext(
		ctx,
		query,
		property.Name,
		property.RegisteredOwner,
		property.AreaMeasurement,
		property.Description,
		property.Street,
		property.Barangay,
		property.City,
		property.Province,
		property.Notes,
		property.Units,
		featuresJSON,
		imagesJSON,
		property.UpdatedAt,
		property.ID,
	)
	if err != nil {
		return types.Property{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Property{}, err
	}
	if affected == 0 {
		return types.Property{}, ErrNotFound
	}
	return property, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM properties WHERE id = $1`
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

func scanProperty(scan func(dest ...any) error) (types.Property, error) {
	var property types.Property
	var featuresJSON, imagesJSON []byte
	if err := scan(
		&property.ID,
		&property.Name,
		&property.RegisteredOwner,
		&property.AreaMeasurement,
		&property.Description,
		&property.Street,
		&property.Barangay,
		&property.City,
		&property.Province,
		&property.Notes,
		&property.Units,
		&featuresJSON,
		&imagesJSON,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return types.Property{}, err
	}
	_ = json.Unmarshal(featuresJSON, &property.Features)
	_ = json.Unmarshal(imagesJSON, &property.Images)
	return property, nil
}

// sliceOrEmpty keeps JSON columns as [] instead of null for nil slices.
func sliceOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
