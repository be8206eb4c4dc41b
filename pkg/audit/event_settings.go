package audit

import (
	"fmt"
	"strings"
)

// SettingsEvent represents portal settings being written. Only key names are
// recorded, never values.
type SettingsEvent struct {
	UserID       int64
	ClientIP     string
	Keys         []string
	Success      bool
	ErrorMessage string
}

func (e SettingsEvent) MessageID() string {
	return "settings"
}

func (e SettingsEvent) Message() string {
	keys := strings.Join(e.Keys, ", ")
	if e.Success {
		return fmt.Sprintf("%s updated settings [%s]", userRef(e.UserID), keys)
	}
	return withError(fmt.Sprintf("%s tried to update settings [%s]", userRef(e.UserID), keys), false, e.ErrorMessage)
}

func (e SettingsEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e SettingsEvent) Facility() int {
	return FacilityAuthPriv
}

func (e SettingsEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, "update", e.Success)
	sd[SDIDSubject] = map[string]string{"keys": strings.Join(e.Keys, ",")}
	return sd
}
