package audit

import "fmt"

// UserEvent represents an administrator changing or removing an account
type UserEvent struct {
	UserID       int64
	TargetID     int64
	ClientIP     string
	Operation    string // "update", "delete", "create-admin"
	Status       string
	Success      bool
	ErrorMessage string
}

func (e UserEvent) MessageID() string {
	return "user"
}

func (e UserEvent) Message() string {
	target := userRef(e.TargetID)
	if e.Success {
		msg := fmt.Sprintf("%s %sd %s", userRef(e.UserID), e.Operation, target)
		if e.Status != "" {
			msg += " (status " + e.Status + ")"
		}
		return msg
	}
	return withError(fmt.Sprintf("%s tried to %s %s", userRef(e.UserID), e.Operation, target), false, e.ErrorMessage)
}

func (e UserEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e UserEvent) Facility() int {
	return FacilityAuthPriv
}

func (e UserEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"user": fmt.Sprint(e.TargetID)}
	if e.Status != "" {
		sd[SDIDSubject]["status"] = e.Status
	}
	return sd
}
