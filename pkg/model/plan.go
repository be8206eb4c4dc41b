package model

import (
	"encoding/json"
	"time"
)

// Plan is a generated lesson plan kept in the user's history.
type Plan struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Content   string    `gorm:"column:content" json:"content"`
	Metadata  string    `gorm:"column:metadata" json:"metadata"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Plan) TableName() string {
	return "plans_history"
}

// Disciplina returns metadata.disciplina, or "" when the metadata is not a
// JSON object or lacks the field.
func (p *Plan) Disciplina() string {
	var meta struct {
		Disciplina string `json:"disciplina"`
	}
	if err := json.Unmarshal([]byte(p.Metadata), &meta); err != nil {
		return ""
	}
	return meta.Disciplina
}
