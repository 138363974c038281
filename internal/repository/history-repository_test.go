package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntry_InsertsRow(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewHistoryRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "histories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	entry := &domain.History{
		Action:    domain.ActionCreated,
		UserID:    "u-1",
		RequestID: "r-1",
	}
	require.NoError(t, repo.CreateEntry(entry))
	assert.Equal(t, uint(1), entry.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_NilEntry(t *testing.T) {
	gdb, _ := newMockDB(t)
	repo := NewHistoryRepository(gdb)

	require.Error(t, repo.CreateEntry(nil))
}

func TestListByRequestID_NewestFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewHistoryRepository(gdb)

	// ordering lives in the query, newest entry first
	mock.ExpectQuery(`SELECT \* FROM "histories" WHERE request_id = \$1 ORDER BY created_at DESC`).
		WithArgs("r-1").
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "action", "user_id", "request_id"}).
			AddRow(2, "Rejected", "u-2", "r-1").
			AddRow(1, domain.ActionCreated, "u-1", "r-1"))

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "username", "role"}).
			AddRow("u-1", "alice", "requester").
			AddRow("u-2", "bob", "approver"))

	entries, err := repo.ListByRequestID("r-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Rejected", entries[0].Action)
	assert.Equal(t, domain.ActionCreated, entries[1].Action)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "bob", entries[0].User.Username)

	require.NoError(t, mock.ExpectationsWereMet())
}
