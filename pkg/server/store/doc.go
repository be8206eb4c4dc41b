// Package store provides storage abstractions for the portal server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// Endpoint tests use testify mocks of these interfaces, and the gorm
// subpackage provides the SQLite / PostgreSQL implementations.
//
// # Available Stores
//
//   - UsersStore: accounts, credits and profiles
//   - PlansStore: lesson plan history
//   - SettingsStore: key/value settings
//   - CurriculumStore: classe / disciplina / tema / subtema tree
//   - StudentsStore, CalendarStore, QuestionsStore: classroom data
//   - NewsStore: portal news
//   - FeedbackStore, CommunityStore: submissions and moderation
//   - StatsStore: per-user plan statistics
//   - HealthStore: database connectivity
//
// # Usage
//
//	users := gorm.NewUsersStore(db)
//	user, err := users.FindByIdentifier("923000000")
//	if err != nil {
//	    if errors.Is(err, store.ErrUserNotFound) {
//	        // Handle not found
//	    }
//	}
package store
