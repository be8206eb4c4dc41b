package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Store persists events in the audit_messages table.
type Store struct {
	db       *sql.DB
	hostname string
	now      func() time.Time
}

// NewStore opens a Store on a PostgreSQL URL. Other URLs, such as the
// embedded SQLite database, give a nil Store and no error.
func NewStore(dbURL string) (*Store, error) {
	if !strings.HasPrefix(dbURL, "postgres://") && !strings.HasPrefix(dbURL, "postgresql://") {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	return NewStoreWithDB(db), nil
}

// NewStoreWithDB wraps an open connection.
func NewStoreWithDB(db *sql.DB) *Store {
	hostname, _ := os.Hostname()
	return &Store{db: db, hostname: hostname, now: time.Now}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts one event.
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return fmt.Errorf("failed to encode structured data: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO audit_messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.Facility(),
		int(event.Severity()),
		s.now().UTC(),
		s.hostname,
		AppName,
		strconv.Itoa(os.Getpid()),
		event.MessageID(),
		string(sdata),
		event.Message(),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit event %s: %w", event.MessageID(), err)
	}
	return nil
}
