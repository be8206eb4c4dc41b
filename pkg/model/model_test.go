package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

func TestUser_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"no expiry", User{}, false},
		{"date in past", User{DataExpiracao: "2026-03-01"}, true},
		{"date in future", User{DataExpiracao: "2026-04-01"}, false},
		{"rfc3339 in past", User{DataExpiracao: "2026-03-10T11:00:00Z"}, true},
		{"admin never expires", User{IsAdmin: true, DataExpiracao: "2020-01-01"}, false},
		{"garbage ignored", User{DataExpiracao: "amanhã"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.IsExpired(now))
		})
	}
}

func TestUser_ReachedPlanLimit(t *testing.T) {
	limit := 3
	assert.False(t, (&User{PlanosConsumidos: 10}).ReachedPlanLimit())
	assert.False(t, (&User{LimitePlanos: &limit, PlanosConsumidos: 2}).ReachedPlanLimit())
	assert.True(t, (&User{LimitePlanos: &limit, PlanosConsumidos: 3}).ReachedPlanLimit())
	assert.False(t, (&User{IsAdmin: true, LimitePlanos: &limit, PlanosConsumidos: 3}).ReachedPlanLimit())
}

func TestUser_DisplayName(t *testing.T) {
	email := "ana@escola.ao"
	phone := "923000000"
	assert.Equal(t, "Ana", (&User{ProfessorNome: "Ana", Email: &email}).DisplayName())
	assert.Equal(t, email, (&User{Email: &email, Telefone: &phone}).DisplayName())
	assert.Equal(t, phone, (&User{Telefone: &phone}).DisplayName())
}

func TestUser_JSONOmitsPassword(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Password: "$2a$10$hash", Status: status.UserAtivo})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.Contains(t, string(b), `"status":"Ativo"`)
}

func TestPlan_Disciplina(t *testing.T) {
	assert.Equal(t, "Matemática", (&Plan{Metadata: `{"disciplina":"Matemática","classe":"3ª Classe"}`}).Disciplina())
	assert.Equal(t, "", (&Plan{Metadata: `{"classe":"3ª Classe"}`}).Disciplina())
	assert.Equal(t, "", (&Plan{Metadata: `not json`}).Disciplina())
}

func TestCurriculumEntry_Sumarios(t *testing.T) {
	var c CurriculumEntry
	assert.Empty(t, c.SumarioList())

	c.SetSumarios([]string{"Letra A", "Letra E"})
	assert.Equal(t, `["Letra A","Letra E"]`, c.Sumarios)
	assert.True(t, c.HasSumario("Letra E"))
	assert.False(t, c.HasSumario("Letra I"))

	c.SetSumarios(nil)
	assert.Equal(t, `[]`, c.Sumarios)
}

func TestNews_IsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&News{}).IsExpired(now))
	assert.True(t, (&News{ExpiresAt: &past}).IsExpired(now))
	assert.False(t, (&News{ExpiresAt: &future}).IsExpired(now))
}

func TestNormalizeFeedbackType(t *testing.T) {
	tests := map[string]string{
		"Sugestão":     "sugestão",
		" sugestao ":   "sugestão",
		"CRITICA":      "crítica",
		"reclamacao":   "reclamação",
		"Opinião":      "opinião",
		"bug":          "bug",
		"Erro no PDF ": "erro no pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeFeedbackType(in), in)
	}
	for _, known := range FeedbackTypes {
		assert.Equal(t, known, NormalizeFeedbackType(known))
	}
}
