package endpoints

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

func TestUserStats(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", fmt.Sprintf("/api/stats/%d", env.teacher.ID), nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plansByMonth":[],"subjectsCount":[]}`, rec.Body.String())

	for _, p := range []model.Plan{
		{UserID: env.teacher.ID, Content: "a", Metadata: `{"disciplina":"Matemática"}`, CreatedAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)},
		{UserID: env.teacher.ID, Content: "b", Metadata: `{"disciplina":"Matemática"}`, CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{UserID: env.teacher.ID, Content: "c", Metadata: `{"disciplina":"Estudo do Meio"}`, CreatedAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)},
		{UserID: env.teacher.ID, Content: "d", Metadata: `não é json`, CreatedAt: time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)},
		{UserID: env.other.ID, Content: "e", Metadata: `{"disciplina":"Música"}`, CreatedAt: time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)},
	} {
		p := p
		require.NoError(t, env.srv.PlansStore.Save(&p))
	}

	rec = env.do(t, "GET", fmt.Sprintf("/api/stats/%d", env.teacher.ID), nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var st store.UserStats
	decodeBody(t, rec, &st)
	assert.Equal(t, []store.MonthCount{{Month: "2026-02", Count: 1}, {Month: "2026-03", Count: 3}}, st.PlansByMonth)
	assert.Equal(t, []store.SubjectCount{{Subject: "Matemática", Count: 2}, {Subject: "Estudo do Meio", Count: 1}}, st.SubjectsCount)

	rec = env.do(t, "GET", fmt.Sprintf("/api/stats/%d", env.other.ID), nil, env.teacher)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, "GET", fmt.Sprintf("/api/stats/%d", env.other.ID), nil, env.admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}
