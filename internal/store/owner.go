package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// OwnerRepository handles persistence for property owners.
type OwnerRepository struct {
	db *sql.DB
}

func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) List(ctx context.Context) ([]types.Owner, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, status, created_at, updated_at
		FROM owners
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]types.Owner, 0)
	for rows.Next() {
		var owner types.Owner
		if err := rows.Scan(
			&owner.ID,
			&owner.FirstName,
			&owner.LastName,
			&owner.Email,
			&owner.Phone,
			&owner.Status,
			&owner.CreatedAt,
			&owner.UpdatedAt,
		); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *OwnerRepository) Get(ctx context.Context, id int) (types.Owner, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, status, created_at, updated_at
		FROM owners
		WHERE id = $1`
	var owner types.Owner
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&owner.ID,
		&owner.FirstName,
		&owner.LastName,
		&owner.Email,
		&owner.Phone,
		&owner.Status,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Owner{}, ErrNotFound
		}
		return types.Owner{}, err
	}
	return owner, nil
}

func (r *OwnerRepository) Create(ctx context.Context, owner types.Owner) (types.Owner, error) {
	now := time.Now()
	owner.CreatedAt = now
	owner.UpdatedAt = now

	const query = `
		INSERT INTO owners (first_name, last_name, email, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		owner.FirstName,
		owner.LastName,
		owner.Email,
		owner.Phone,
		owner.Status,
		owner.CreatedAt,
		owner.UpdatedAt,
	).Scan(&owner.ID); err != nil {
		return types.Owner{}, translateError(err)
	}
	return owner, nil
}

func (r *OwnerRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `UPDATE owners SET status = $1, updated_at = $2 WHERE id = $3`
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
