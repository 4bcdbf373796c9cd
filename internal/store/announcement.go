package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/condoease/apiserver/types"
)

// AnnouncementRepository handles persistence for announcements.
type AnnouncementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Get(ctx context.Context, id int) (types.Announcement, error) {
	const query = `
		SELECT id, title, description, file_url, user_id, created_at, updated_at
		FROM announcements
		WHERE id = $1`
	var a types.Announcement
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.FileURL,
		&a.UserID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Announcement{}, ErrNotFound
		}
		return types.Announcement{}, err
	}
	return a, nil
}

// ListByUser returns the user's announcements, newest first.
func (r *AnnouncementRepository) ListByUser(ctx context.Context, userID int) ([]types.Announcement, error) {
	const query = `
		SELECT id, title, description, file_url, user_id, created_at, updated_at
		FROM announcements
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.Announcement, 0)
	for rows.Next() {
		var a types.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Description,
			&a.FileURL,
			&a.UserID,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a types.Announcement) (types.Announcement, error) {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	const query = `
		INSERT INTO announcements (title, description, file_url, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		a.Title,
		a.Description,
		a.FileURL,
		a.UserID,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID); err != nil {
		return types.Announcement{}, translateError(err)
	}
	return a, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, a types.Announcement) (types.Announcement, error) {
	a.UpdatedAt = time.Now()

	const query = `
		UPDATE announcements
		SET title = $1,
			description = $2,
			file_url = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, a.Title, a.Description, a.FileURL, a.UpdatedAt, a.ID)
	if err != nil {
		return types.Announcement{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Announcement{}, err
	}
	if affected == 0 {
		return types.Announcement{}, ErrNotFound
	}
	return a, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM announcements WHERE id = $1`
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
