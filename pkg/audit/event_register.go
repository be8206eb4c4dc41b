package audit

import "fmt"

// RegisterEvent represents a self-service account registration
type RegisterEvent struct {
	Identifier   string
	UserID       int64
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s registered as %s pending approval", e.Identifier, userRef(e.UserID))
	}
	return withError(fmt.Sprintf("%s failed to register", e.Identifier), false, e.ErrorMessage)
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityAuth
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, "register", e.Success)
	sd[SDIDSubject] = map[string]string{"identifier": e.Identifier}
	return sd
}
