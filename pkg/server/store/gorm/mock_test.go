package gorm

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wraps sqlmock with GORM's postgres dialector.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)
	return gormDB, mock
}

func TestHealthStore_CheckConnectivity(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewHealthStore(db).CheckConnectivity())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("SELECT 1").WillReturnError(errors.New("connection refused"))

		assert.Error(t, NewHealthStore(db).CheckConnectivity())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPlansStore_DeleteOlderThan_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "plans_history" WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	n, err := NewPlansStore(db).DeleteOlderThan(cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_FindByIdentifier_SQL(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "email", "telefone", "status", "is_admin"}).
		AddRow(7, nil, "923000000", "Ativo", false)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 OR telefone = $2 ORDER BY "users"."id" LIMIT`)).
		WillReturnRows(rows)

	user, err := NewUsersStore(db).FindByIdentifier("923000000")
	require.NoError(t, err)
	assert.EqualValues(t, 7, user.ID)
	assert.Nil(t, user.Email)
	require.NotNil(t, user.Telefone)
	assert.Equal(t, "923000000", *user.Telefone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
