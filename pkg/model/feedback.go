package model

import (
	"strings"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

type Feedback struct {
	ID        int64                 `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64                 `gorm:"column:user_id" json:"user_id"`
	Content   string                `gorm:"column:content" json:"content"`
	Type      string                `gorm:"column:type" json:"type"`
	Status    status.FeedbackStatus `gorm:"column:status" json:"status"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// FeedbackTypes are the categories offered by the feedback form.
var FeedbackTypes = []string{"opinião", "crítica", "reclamação", "sugestão"}

var feedbackTypeAliases = map[string]string{
	"opiniao":    "opinião",
	"critica":    "crítica",
	"reclamacao": "reclamação",
	"sugestao":   "sugestão",
}

// NormalizeFeedbackType lower-cases and trims t and restores the accents of
// the known categories. Other values are kept as typed.
func NormalizeFeedbackType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if known, ok := feedbackTypeAliases[t]; ok {
		return known
	}
	return t
}

// FeedbackView is a feedback row joined with its author.
type FeedbackView struct {
	Feedback
	ProfessorNome *string `gorm:"column:professor_nome" json:"professor_nome"`
	Email         *string `gorm:"column:email" json:"email"`
	Telefone      *string `gorm:"column:telefone" json:"telefone"`
}

// CommunityPlan is a lesson plan shared with other teachers.
type CommunityPlan struct {
	ID        int64                  `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64                  `gorm:"column:user_id" json:"user_id"`
	PlanID    *int64                 `gorm:"column:plan_id" json:"plan_id"`
	Title     string                 `gorm:"column:title" json:"title"`
	Subject   string                 `gorm:"column:subject" json:"subject"`
	Classe    string                 `gorm:"column:classe" json:"classe"`
	Content   string                 `gorm:"column:content" json:"content"`
	Status    status.CommunityStatus `gorm:"column:status" json:"status"`
	Likes     int                    `gorm:"column:likes" json:"likes"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CommunityPlan) TableName() string {
	return "community_plans"
}

// CommunityPlanView is a shared plan joined with its author.
type CommunityPlanView struct {
	CommunityPlan
	ProfessorNome *string `gorm:"column:professor_nome" json:"professor_nome"`
	Escola        *string `gorm:"column:escola" json:"escola,omitempty"`
	FotoURL       *string `gorm:"column:foto_url" json:"foto_url,omitempty"`
	Email         *string `gorm:"column:email" json:"email,omitempty"`
	Telefone      *string `gorm:"column:telefone" json:"telefone,omitempty"`
}
