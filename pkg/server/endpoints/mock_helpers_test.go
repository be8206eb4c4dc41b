package endpoints

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockDB wraps sqlmock behind a postgres-dialect gorm connection
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

func newMockDB(t *testing.T) *MockDB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		t.Fatalf("failed to open gorm: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &MockDB{DB: db, Mock: mock, GormDB: gormDB}
}

// expectPing queues the health check's SELECT 1
func (m *MockDB) expectPing(err error) {
	e := m.Mock.ExpectExec(`SELECT 1`)
	if err != nil {
		e.WillReturnError(err)
		return
	}
	e.WillReturnResult(sqlmock.NewResult(0, 0))
}
