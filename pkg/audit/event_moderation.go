package audit

import "fmt"

// ModerationEvent represents an administrator acting on teacher submissions
type ModerationEvent struct {
	UserID       int64
	ClientIP     string
	Kind         string // "community", "feedback"
	ResourceID   int64
	Outcome      string
	Success      bool
	ErrorMessage string
}

func (e ModerationEvent) MessageID() string {
	return "moderation"
}

func (e ModerationEvent) Message() string {
	subject := fmt.Sprintf("%s %d", e.Kind, e.ResourceID)
	if e.Success {
		return fmt.Sprintf("%s marked %s as %s", userRef(e.UserID), subject, e.Outcome)
	}
	return withError(fmt.Sprintf("%s tried to mark %s as %s", userRef(e.UserID), subject, e.Outcome), false, e.ErrorMessage)
}

func (e ModerationEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e ModerationEvent) Facility() int {
	return FacilityAuth
}

func (e ModerationEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, "moderate", e.Success)
	sd[SDIDSubject] = map[string]string{
		"kind":    e.Kind,
		"id":      fmt.Sprint(e.ResourceID),
		"outcome": e.Outcome,
	}
	return sd
}
