package audit

import "fmt"

// PasswordResetEvent represents a temporary password being issued, either
// through forgot-password or an administrator activating an account.
type PasswordResetEvent struct {
	UserID       int64
	TargetID     int64
	ClientIP     string
	Reason       string // "forgot-password", "activation", "cli"
	Success      bool
	ErrorMessage string
}

func (e PasswordResetEvent) MessageID() string {
	return "password"
}

func (e PasswordResetEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s issued a temporary password for %s (%s)", userRef(e.UserID), userRef(e.TargetID), e.Reason)
	}
	return withError(fmt.Sprintf("%s failed to issue a temporary password for %s", userRef(e.UserID), userRef(e.TargetID)), false, e.ErrorMessage)
}

func (e PasswordResetEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e PasswordResetEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PasswordResetEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, "password-reset", e.Success)
	sd[SDIDSubject] = map[string]string{
		"target": fmt.Sprint(e.TargetID),
		"reason": e.Reason,
	}
	return sd
}
