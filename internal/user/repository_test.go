package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/valentine-api/internal/database"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func accountRows(id int64, email, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
		AddRow(id, email, "$2a$10$hash", name, time.Now())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnRows(accountRows(1, "a@x.com", "Ann"))

	created, err := repo.Create(context.Background(), "a@x.com", "$2a$10$hash", "Ann")
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "Ann", created.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "accounts_email_key"`))

	_, err := repo.Create(context.Background(), "a@x.com", "$2a$10$hash", "Ann")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRepository_GetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "accounts"`).
		WillReturnRows(accountRows(2, "b@x.com", "Bob"))

	found, err := repo.GetByEmail(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.ID)
	assert.Equal(t, "Bob", found.Name)
}

func TestRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "accounts"`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "accounts"`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
