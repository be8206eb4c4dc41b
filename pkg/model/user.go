package model

import (
	"strings"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

// User is a teacher or administrator account.
type User struct {
	ID               int64             `gorm:"column:id;primaryKey" json:"id"`
	Email            *string           `gorm:"column:email" json:"email"`
	Telefone         *string           `gorm:"column:telefone" json:"telefone"`
	Password         string            `gorm:"column:password" json:"-"`
	DataAtivacao     string            `gorm:"column:data_ativacao" json:"data_ativacao"`
	DataExpiracao    string            `gorm:"column:data_expiracao" json:"data_expiracao"`
	PlanoTipo        string            `gorm:"column:plano_tipo" json:"plano_tipo"`
	LimitePlanos     *int              `gorm:"column:limite_planos" json:"limite_planos"`
	PlanosConsumidos int               `gorm:"column:planos_consumidos" json:"planos_consumidos"`
	Status           status.UserStatus `gorm:"column:status" json:"status"`
	IsAdmin          bool              `gorm:"column:is_admin" json:"is_admin"`
	Escola           string            `gorm:"column:escola" json:"escola"`
	ProfessorNome    string            `gorm:"column:professor_nome" json:"professor_nome"`
	Provincia        string            `gorm:"column:provincia" json:"provincia"`
	Municipio        string            `gorm:"column:municipio" json:"municipio"`
	NumeroAgente     string            `gorm:"column:numero_agente" json:"numero_agente"`
	Biografia        string            `gorm:"column:biografia" json:"biografia"`
	Especializacoes  string            `gorm:"column:especializacoes" json:"especializacoes"`
	FotoURL          string            `gorm:"column:foto_url" json:"foto_url"`
}

func (User) TableName() string {
	return "users"
}

// expiryLayouts are tried in order when reading data_expiracao.
var expiryLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ExpiresAt parses data_expiracao. ok is false when the field is empty or
// unparseable.
func (u *User) ExpiresAt() (t time.Time, ok bool) {
	raw := strings.TrimSpace(u.DataExpiracao)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsExpired reports whether a non-admin subscription ended before now.
func (u *User) IsExpired(now time.Time) bool {
	if u.IsAdmin {
		return false
	}
	exp, ok := u.ExpiresAt()
	return ok && exp.Before(now)
}

// ReachedPlanLimit reports whether a non-admin user has used every plan
// credit.
func (u *User) ReachedPlanLimit() bool {
	if u.IsAdmin || u.LimitePlanos == nil {
		return false
	}
	return u.PlanosConsumidos >= *u.LimitePlanos
}

// DisplayName picks the best human label for notifications.
func (u *User) DisplayName() string {
	switch {
	case u.ProfessorNome != "":
		return u.ProfessorNome
	case u.Email != nil && *u.Email != "":
		return *u.Email
	case u.Telefone != nil:
		return *u.Telefone
	}
	return ""
}
