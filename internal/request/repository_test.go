package request

import (
	"context"
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

func requestColumns() []string {
	return []string{
		"id", "account_id", "creator_name", "recipient_name", "message",
		"response_status", "responder_name", "created_at", "responded_at",
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "valentine_requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()).
			AddRow("abc123XYZ0", int64(1), "Ann", "Bob", "Be mine?", StatusPending, nil, time.Now(), nil))

	created, err := repo.Create(context.Background(), "abc123XYZ0", 1, "Ann", "Bob", "Be mine?")
	require.NoError(t, err)

	assert.Equal(t, "abc123XYZ0", created.ID)
	assert.Equal(t, StatusPending, created.ResponseStatus)
	assert.Nil(t, created.ResponderName)
	assert.Nil(t, created.RespondedAt)
}

func TestRepository_Create_DuplicateID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "valentine_requests"`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "valentine_requests_pkey"`))

	_, err := repo.Create(context.Background(), "abc123XYZ0", 1, "Ann", "Bob", "Be mine?")
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestRepository_ListByAccount(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "valentine_requests"(.+)ORDER BY (.+)created_at(.+)DESC`).
		WillReturnRows(sqlmock.NewRows(requestColumns()).
			AddRow("id-newer00", int64(1), "Ann", "Bob", "second", StatusPending, nil, now, nil).
			AddRow("id-older00", int64(1), "Ann", "Cat", "first", StatusPending, nil, now.Add(-time.Hour), nil))

	list, err := repo.ListByAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "id-newer00", list[0].ID)
	assert.Equal(t, "id-older00", list[1].ID)
}

func TestRepository_ListByAccount_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "valentine_requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()))

	list, err := repo.ListByAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepository_SetResponse_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "valentine_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.SetResponse(context.Background(), "missing-id", StatusAccepted, "Bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_SetResponse(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "valentine_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	responder := "Bob"
	respondedAt := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "valentine_requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()).
			AddRow("abc123XYZ0", int64(1), "Ann", "Bob", "Be mine?", StatusAccepted, &responder, time.Now(), &respondedAt))

	updated, err := repo.SetResponse(context.Background(), "abc123XYZ0", StatusAccepted, "Bob")
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, updated.ResponseStatus)
	require.NotNil(t, updated.ResponderName)
	assert.Equal(t, "Bob", *updated.ResponderName)
	assert.NotNil(t, updated.RespondedAt)
}
