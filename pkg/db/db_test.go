package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
)

func TestDialectOf(t *testing.T) {
	tests := []struct {
		url     string
		want    Dialect
		wantErr bool
	}{
		{"sqlite3://data/ppa.db", DialectSQLite, false},
		{"postgres://u:p@localhost/ppa", DialectPostgres, false},
		{"postgresql://u:p@localhost/ppa", DialectPostgres, false},
		{"mysql://u:p@localhost/ppa", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := DialectOf(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectOf_RedactsCredentials(t *testing.T) {
	_, err := DialectOf("mysql://root:hunter2@db/ppa")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, "data/ppa.db", SQLitePath("sqlite3://data/ppa.db"))
	assert.Equal(t, "/tmp/x.db", SQLitePath("sqlite3:///tmp/x.db?x-migrations-table=m"))
}

func TestConnect_MissingURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Connect(Config{})
	assert.Error(t, err)
}

func TestMigrateAndConnect_SQLite(t *testing.T) {
	url := "sqlite3://" + filepath.ToSlash(filepath.Join(t.TempDir(), "nested", "ppa.db"))

	version, changed, err := Migrate(url)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.EqualValues(t, 7, version)

	_, changed, err = Migrate(url)
	require.NoError(t, err)
	assert.False(t, changed)

	key := make([]byte, 32)
	cipher, err := crypt.NewSymmetric(key)
	require.NoError(t, err)

	gdb, err := Connect(Config{URL: url, Cipher: cipher})
	require.NoError(t, err)

	_, ok := crypt.FromContext(gdb.Statement.Context)
	assert.True(t, ok)

	var tables []string
	require.NoError(t, gdb.Raw(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`).Scan(&tables).Error)
	for _, name := range []string{"users", "plans_history", "settings", "curriculum", "students",
		"calendar_events", "questions_bank", "news", "feedback", "community_plans"} {
		assert.Contains(t, tables, name)
	}

	current, dirty, err := Status(url)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.EqualValues(t, 7, current)

	version, err = Rollback(url, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 6, version)
}
