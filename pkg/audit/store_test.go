package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := LibraryEvent{
		UserID:    1,
		ClientIP:  "10.0.0.1",
		Path:      "/Centrais de Documentos/Leis de Bases/lei.pdf",
		Operation: "upload",
		Success:   true,
	}

	mock.ExpectExec(`INSERT INTO audit_messages`).
		WithArgs(
			FacilityAuth,      // facility
			int(SeverityInfo), // severity
			sqlmock.AnyArg(),  // timestamp
			sqlmock.AnyArg(),  // hostname
			"ppa",             // appname
			sqlmock.AnyArg(),  // procid
			"library",         // msgid
			sqlmock.AnyArg(),  // sdata (JSON)
			sqlmock.AnyArg(),  // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(event)
	if err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveLoginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := LoginEvent{
		Identifier:   "923000000",
		ClientIP:     "10.0.0.1",
		ErrorMessage: "invalid credentials",
	}

	mock.ExpectExec(`INSERT INTO audit_messages`).
		WithArgs(
			FacilityAuthPriv,
			int(SeverityWarning),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			"ppa",
			sqlmock.AnyArg(),
			"login",
			sqlmock.AnyArg(),
			"923000000 failed to log in: invalid credentials",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestNewStoreDisabled(t *testing.T) {
	for _, url := range []string{"", "sqlite3://data/ppa.db"} {
		s, err := NewStore(url)
		if err != nil {
			t.Errorf("NewStore(%q) error = %v", url, err)
		}
		if s != nil {
			t.Errorf("NewStore(%q) = %v, want nil", url, s)
		}
	}
}

func TestNilStoreSave(t *testing.T) {
	s := NewStoreWithDB(nil)
	if err := s.Save(LoginEvent{}); err != nil {
		t.Errorf("Save() on nil db error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db error = %v", err)
	}
}
