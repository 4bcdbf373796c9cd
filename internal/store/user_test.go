package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/condoease/apiserver/types"
)

func newUserRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepository(db), mock, db
}

func userRows(user types.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "role", "avatar",
		"password_hash", "created_at", "updated_at",
	}).AddRow(
		user.ID, user.Email, user.FirstName, user.LastName, user.Role,
		user.Avatar, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
}

func TestUserGetByEmail_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	want := types.User{
		ID: 1, Email: "alice@example.com", FirstName: "Alice",
		LastName: "Reyes", Role: "user", PasswordHash: "$2a$hash",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*email,.*FROM users\s+WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(userRows(want))

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != want.ID || got.Email != want.Email || got.PasswordHash != want.PasswordHash {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*email,.*FROM users\s+WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserCreate_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT INTO users\s*\(email, first_name, last_name, role, avatar, password_hash, created_at, updated_at\).*RETURNING id`).
		WithArgs("alice@example.com", "Alice", "Reyes", "user", "", "$2a$hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	got, err := repo.Create(context.Background(), types.User{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Reyes",
		Role: "user", PasswordHash: "$2a$hash",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected id 7, got %d", got.ID)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT INTO users.*RETURNING id`).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(uniqueViolationCode)})

	_, err := repo.Create(context.Background(), types.User{
		Email: "taken@example.com", FirstName: "A", LastName: "B",
		Role: "user", PasswordHash: "h",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserUpdateAvatar(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET avatar = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("avatars/key.png", sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateAvatar(context.Background(), 1, "avatars/key.png"); err != nil {
		t.Fatalf("UpdateAvatar error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserUpdateAvatar_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET avatar = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("avatars/key.png", sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAvatar(context.Background(), 99, "avatars/key.png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserDelete_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
