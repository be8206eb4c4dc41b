package model

import "time"

type Student struct {
	ID     int64  `gorm:"column:id;primaryKey" json:"id"`
	UserID int64  `gorm:"column:user_id" json:"user_id"`
	Name   string `gorm:"column:name" json:"name"`
	Classe string `gorm:"column:classe" json:"classe"`
}

func (Student) TableName() string {
	return "students"
}

// CalendarEvent is a scheduled lesson, optionally linked to a saved plan.
type CalendarEvent struct {
	ID        int64  `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64  `gorm:"column:user_id" json:"user_id"`
	Title     string `gorm:"column:title" json:"title"`
	StartDate string `gorm:"column:start_date" json:"start_date"`
	EndDate   string `gorm:"column:end_date" json:"end_date"`
	PlanID    *int64 `gorm:"column:plan_id" json:"plan_id"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

type Question struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Subject   string    `gorm:"column:subject" json:"subject"`
	Classe    string    `gorm:"column:classe" json:"classe"`
	Content   string    `gorm:"column:content" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Question) TableName() string {
	return "questions_bank"
}
