package model

import "time"

// DefaultNewsSource is used when a news item is published without a source.
const DefaultNewsSource = "Portal Pedagógico Angola"

type News struct {
	ID            int64      `gorm:"column:id;primaryKey" json:"id"`
	Title         string     `gorm:"column:title" json:"title"`
	Content       string     `gorm:"column:content" json:"content"`
	Category      string     `gorm:"column:category" json:"category"`
	Source        string     `gorm:"column:source" json:"source"`
	IsAIGenerated bool       `gorm:"column:is_ai_generated" json:"is_ai_generated"`
	Date          time.Time  `gorm:"column:date" json:"date"`
	ExpiresAt     *time.Time `gorm:"column:expires_at" json:"expires_at"`
}

func (News) TableName() string {
	return "news"
}

// IsExpired returns true if the item has an expiration time that has passed
func (n *News) IsExpired(now time.Time) bool {
	if n.ExpiresAt == nil {
		return false
	}
	return !n.ExpiresAt.After(now)
}
