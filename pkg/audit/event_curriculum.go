package audit

import (
	"fmt"
	"strings"
)

// CurriculumEvent represents an edit to the curriculum tree
type CurriculumEvent struct {
	UserID       int64
	ClientIP     string
	Operation    string // "add", "edit", "remove", "load"
	Path         []string
	Success      bool
	ErrorMessage string
}

func (e CurriculumEvent) MessageID() string {
	return "curriculum"
}

func (e CurriculumEvent) node() string {
	parts := make([]string, 0, len(e.Path))
	for _, p := range e.Path {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "curriculum"
	}
	return strings.Join(parts, " / ")
}

func (e CurriculumEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s curriculum %s: %s", userRef(e.UserID), e.Operation, e.node())
	}
	return withError(fmt.Sprintf("%s curriculum %s failed: %s", userRef(e.UserID), e.Operation, e.node()), false, e.ErrorMessage)
}

func (e CurriculumEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e CurriculumEvent) Facility() int {
	return FacilityAuth
}

func (e CurriculumEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"node": e.node()}
	return sd
}
