// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
	"github.com/ppa-angola/portal-pedagogico/pkg/db"
)

// URL returns a sqlite3:// URL for a fresh file in the test's temp dir.
func URL(t testing.TB) string {
	t.Helper()
	return "sqlite3://" + filepath.ToSlash(filepath.Join(t.TempDir(), "ppa_test.db"))
}

// New returns a migrated database. The cipher may be nil.
func New(t testing.TB, cipher crypt.Cipher) *gorm.DB {
	t.Helper()

	url := URL(t)
	_, _, err := db.Migrate(url)
	require.NoError(t, err)

	gdb, err := db.Connect(db.Config{URL: url, Cipher: cipher})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// Cipher returns a deterministic-key cipher for tests.
func Cipher(t testing.TB) crypt.Cipher {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	c, err := crypt.NewSymmetric(key)
	require.NoError(t, err)
	return c
}
