package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
)

const sqliteScheme = "sqlite3://"

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to DATABASE_URL env var).
	// sqlite3://path selects the embedded database, postgres:// PostgreSQL.
	URL string
	// Cipher is optional - if provided, it will be added to the context
	Cipher crypt.Cipher
	// Debug enables SQL statement logging
	Debug bool
}

// Dialect names the SQL flavour behind a database URL.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectOf returns the dialect of a database URL.
func DialectOf(url string) (Dialect, error) {
	switch {
	case strings.HasPrefix(url, sqliteScheme):
		return DialectSQLite, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database url %q", redact(url))
	}
}

// Connect establishes a database connection.
// If no URL is provided, it reads from DATABASE_URL environment variable.
func Connect(cfg Config) (*gorm.DB, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = URL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	dialect, err := DialectOf(dbURL)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	switch dialect {
	case DialectSQLite:
		path := SQLitePath(dbURL)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), gormCfg)
	case DialectPostgres:
		db, err = gorm.Open(
			postgres.New(postgres.Config{
				DSN:                  dbURL,
				PreferSimpleProtocol: true, // disables implicit prepared statement usage
			}),
			gormCfg,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Cipher != nil {
		db = db.WithContext(crypt.NewContext(context.Background(), cfg.Cipher))
	}

	return db, nil
}

// SQLitePath strips the sqlite3:// scheme and any query string.
func SQLitePath(url string) string {
	path := strings.TrimPrefix(url, sqliteScheme)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

// URL returns the database URL from environment.
// Returns empty string if DATABASE_URL is not set.
func URL() string {
	return os.Getenv("DATABASE_URL")
}

func redact(url string) string {
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
