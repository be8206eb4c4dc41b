package audit

import "fmt"

// LoginEvent represents a login attempt
type LoginEvent struct {
	Identifier   string
	UserID       int64
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e LoginEvent) MessageID() string {
	return "login"
}

func (e LoginEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s (%s) successfully logged in", e.Identifier, userRef(e.UserID))
	}
	return withError(fmt.Sprintf("%s failed to log in", e.Identifier), false, e.ErrorMessage)
}

func (e LoginEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e LoginEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LoginEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"authenticator": "password",
			"identifier":    e.Identifier,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.UserID != 0 {
		sd[SDIDAuth]["user"] = fmt.Sprint(e.UserID)
	}
	return sd
}
