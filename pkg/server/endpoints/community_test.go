package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

func TestCommunity(t *testing.T) {
	env := newTestEnv(t)

	plan := &model.Plan{UserID: env.teacher.ID, Content: "# Plano", Metadata: "{}"}
	require.NoError(t, env.srv.PlansStore.Save(plan))

	share := ShareRequest{UserID: env.teacher.ID, PlanID: &plan.ID, Title: "Números até 10", Subject: "Matemática", Classe: "1ª Classe", Content: plan.Content}
	rec := env.do(t, "POST", "/api/community/share", share, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("same plan twice", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/community/share", share, env.teacher)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgAlreadyShared, errorOf(t, rec))
	})

	rec = env.do(t, "GET", "/api/community/plans", nil, env.other)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.do(t, "GET", "/api/admin/community/pending", nil, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []model.CommunityPlanView
	decodeBody(t, rec, &pending)
	require.Len(t, pending, 1)
	id := pending[0].ID

	t.Run("invalid status", func(t *testing.T) {
		for _, st := range []string{"Pendente", "Talvez", ""} {
			rec := env.do(t, "POST", "/api/admin/community/moderate", ModerateRequest{ID: id, Status: st}, env.admin)
			assert.Equal(t, http.StatusBadRequest, rec.Code, st)
			assert.Equal(t, msgInvalidStatus, errorOf(t, rec))
		}
	})

	rec = env.do(t, "POST", "/api/admin/community/moderate", ModerateRequest{ID: id, Status: "Aprovado"}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", "/api/community/like", map[string]int64{"id": id}, env.other)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/api/community/plans", nil, env.other)
	var approved []model.CommunityPlanView
	decodeBody(t, rec, &approved)
	require.Len(t, approved, 1)
	assert.Equal(t, 1, approved[0].Likes)
	require.NotNil(t, approved[0].ProfessorNome)
	assert.Equal(t, "Prof. ana@escola.ao", *approved[0].ProfessorNome)
	assert.Nil(t, approved[0].Email)

	t.Run("like unknown", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/community/like", map[string]int64{"id": 999}, env.other)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
