// Package status holds the status enumerations stored in the users,
// feedback and community_plans tables.
package status

//go:generate go run github.com/dmarkham/enumer -type UserStatus,FeedbackStatus,CommunityStatus -trimprefix User,Feedback,Community -json -sql -text -output status_enumer.go

// UserStatus is the account state of a teacher.
type UserStatus int

const (
	UserPendente UserStatus = iota
	UserAtivo
	UserInativo
	UserBloqueado
)

// CanLogin reports whether an account in this state may sign in.
func (i UserStatus) CanLogin() bool {
	return i == UserAtivo
}

type FeedbackStatus int

const (
	FeedbackPendente FeedbackStatus = iota
	FeedbackResolvido
)

// CommunityStatus is the moderation state of a shared plan.
type CommunityStatus int

const (
	CommunityPendente CommunityStatus = iota
	CommunityAprovado
	CommunityRejeitado
)

// IsModeration reports whether the status is a valid moderation outcome.
func (i CommunityStatus) IsModeration() bool {
	return i == CommunityAprovado || i == CommunityRejeitado
}
