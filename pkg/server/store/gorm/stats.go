package gorm

import (
	"sort"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// maxStatsMonths caps plansByMonth.
const maxStatsMonths = 6

// Ensure StatsStore implements store.StatsStore
var _ store.StatsStore = (*StatsStore)(nil)

// StatsStore aggregates plan statistics in Go so the same code runs on
// SQLite and PostgreSQL.
type StatsStore struct {
	db *gorm.DB
}

// NewStatsStore creates a new StatsStore
func NewStatsStore(db *gorm.DB) *StatsStore {
	return &StatsStore{db: db}
}

// UserStats counts a user's plans per month and per disciplina
func (s *StatsStore) UserStats(userID int64) (*store.UserStats, error) {
	var plans []model.Plan
	err := s.db.Select("id", "metadata", "created_at").
		Where("user_id = ?", userID).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	months := map[string]int{}
	subjects := map[string]int{}
	for i := range plans {
		months[plans[i].CreatedAt.UTC().Format("2006-01")]++
		if d := plans[i].Disciplina(); d != "" {
			subjects[d]++
		}
	}

	stats := &store.UserStats{
		PlansByMonth:  make([]store.MonthCount, 0, len(months)),
		SubjectsCount: make([]store.SubjectCount, 0, len(subjects)),
	}
	for m, n := range months {
		stats.PlansByMonth = append(stats.PlansByMonth, store.MonthCount{Month: m, Count: n})
	}
	sort.Slice(stats.PlansByMonth, func(i, j int) bool {
		return stats.PlansByMonth[i].Month < stats.PlansByMonth[j].Month
	})
	if len(stats.PlansByMonth) > maxStatsMonths {
		stats.PlansByMonth = stats.PlansByMonth[:maxStatsMonths]
	}

	for subj, n := range subjects {
		stats.SubjectsCount = append(stats.SubjectsCount, store.SubjectCount{Subject: subj, Count: n})
	}
	sort.Slice(stats.SubjectsCount, func(i, j int) bool {
		a, b := stats.SubjectsCount[i], stats.SubjectsCount[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Subject < b.Subject
	})

	return stats, nil
}
