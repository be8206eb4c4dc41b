// Package audit provides audit logging for security relevant portal
// operations.
//
// Records are written to stdout in RFC5424 syslog format and, when the
// portal runs on PostgreSQL, persisted to the audit_messages table.
//
// # Event Types
//
//   - LoginEvent, RegisterEvent, PasswordResetEvent
//   - UserEvent: administrator account changes
//   - LibraryEvent: uploads, deletions and new folders
//   - ModerationEvent: community plans and feedback
//   - SettingsEvent, NewsEvent, CurriculumEvent
//
// # Usage
//
//	audit.Log(audit.LoginEvent{
//	    Identifier: "923000000",
//	    UserID:     user.ID,
//	    ClientIP:   ip,
//	    Success:    true,
//	})
//
// Logging is enabled by default and disabled with PPA_AUDIT_ENABLED=false.
package audit
