package audit

import "fmt"

// LibraryEvent represents a change to the document library
type LibraryEvent struct {
	UserID       int64
	ClientIP     string
	Path         string
	Operation    string // "upload", "delete", "mkdir"
	Success      bool
	ErrorMessage string
}

func (e LibraryEvent) MessageID() string {
	return "library"
}

func (e LibraryEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on %s", userRef(e.UserID), e.Operation, e.Path)
	}
	return withError(fmt.Sprintf("%s tried to %s %s", userRef(e.UserID), e.Operation, e.Path), false, e.ErrorMessage)
}

func (e LibraryEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e LibraryEvent) Facility() int {
	return FacilityAuth
}

func (e LibraryEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"path": e.Path}
	return sd
}
