package store

// MonthCount is the number of plans created in a YYYY-MM month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// SubjectCount is the number of plans for a disciplina.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// UserStats summarizes a user's plan history.
type UserStats struct {
	PlansByMonth  []MonthCount   `json:"plansByMonth"`
	SubjectsCount []SubjectCount `json:"subjectsCount"`
}

// StatsStore abstracts per-user statistics
type StatsStore interface {
	UserStats(userID int64) (*UserStats, error)
}
