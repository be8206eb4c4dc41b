package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

func listCurriculum(t *testing.T, env *testEnv) []model.CurriculumEntry {
	t.Helper()
	rec := env.do(t, "GET", "/api/curriculum", nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []model.CurriculumEntry
	decodeBody(t, rec, &entries)
	return entries
}

func TestCurriculum_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	assert.Empty(t, listCurriculum(t, env))

	node := CurriculumNode{Classe: "1ª Classe", Disciplina: "Matemática", Tema: "Números", Subtema: "Contagem", Sumario: "Contar até 10"}
	rec := env.do(t, "POST", "/api/admin/curriculum/add", node, env.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// repeated sumarios are ignored
	rec = env.do(t, "POST", "/api/admin/curriculum/add", node, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	node.Sumario = " Contar até 20 "
	rec = env.do(t, "POST", "/api/admin/curriculum/add", node, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := listCurriculum(t, env)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Contar até 10", "Contar até 20"}, entries[0].SumarioList())

	rec = env.do(t, "POST", "/api/admin/curriculum/edit", map[string]interface{}{
		"type":    "tema",
		"oldData": map[string]string{"classe": "1ª Classe", "disciplina": "Matemática", "tema": "Números"},
		"newData": map[string]string{"name": "Números e Operações"},
	}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, "POST", "/api/admin/curriculum/edit", map[string]interface{}{
		"type":    "sumario",
		"oldData": map[string]string{"classe": "1ª Classe", "disciplina": "Matemática", "tema": "Números e Operações", "subtema": "Contagem", "sumario": "Contar até 10"},
		"newData": map[string]string{"name": "Contar até 5"},
	}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	entries = listCurriculum(t, env)
	require.Len(t, entries, 1)
	assert.Equal(t, "Números e Operações", entries[0].Tema)
	assert.Equal(t, []string{"Contar até 5", "Contar até 20"}, entries[0].SumarioList())

	rec = env.do(t, "POST", "/api/admin/curriculum/remove", CurriculumNode{
		Classe: "1ª Classe", Disciplina: "Matemática", Tema: "Números e Operações", Subtema: "Contagem", Sumario: "Contar até 20",
	}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	entries = listCurriculum(t, env)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Contar até 5"}, entries[0].SumarioList())

	rec = env.do(t, "POST", "/api/admin/curriculum/remove", CurriculumNode{Classe: "1ª Classe", Disciplina: "Matemática"}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, listCurriculum(t, env))
}

func TestCurriculum_InvalidRequests(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/admin/curriculum/add", CurriculumNode{Classe: "2ª Classe"}, env.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/api/admin/curriculum/add", CurriculumNode{Classe: "  ", Disciplina: "Música"}, env.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/api/admin/curriculum/edit", map[string]interface{}{
		"type":    "classe",
		"oldData": map[string]string{"classe": "2ª Classe", "disciplina": "Língua Portuguesa"},
		"newData": map[string]string{"name": "Português"},
	}, env.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidLevel, errorOf(t, rec))

	rec = env.do(t, "POST", "/api/admin/curriculum/remove", CurriculumNode{Disciplina: "Língua Portuguesa"}, env.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	node := CurriculumNode{Classe: "2ª Classe", Disciplina: "Língua Portuguesa", Tema: "Leitura", Sumario: "Vogais"}
	rec = env.do(t, "POST", "/api/admin/curriculum/add", node, env.teacher)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCurriculum_AddWithoutSumario(t *testing.T) {
	env := newTestEnv(t)

	nodes := []CurriculumNode{
		{Classe: "3ª Classe", Disciplina: "Música"},
		{Classe: "3ª Classe", Disciplina: "Música", Tema: "Ritmo"},
		{Classe: "3ª Classe", Disciplina: "Música", Tema: "Ritmo", Subtema: "Pulsação"},
	}
	for _, node := range nodes {
		rec := env.do(t, "POST", "/api/admin/curriculum/add", node, env.admin)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// adding the same node again does not duplicate it
	rec := env.do(t, "POST", "/api/admin/curriculum/add", nodes[0], env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := listCurriculum(t, env)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, "Música", e.Disciplina)
		assert.Equal(t, nodes[i].Tema, e.Tema)
		assert.Equal(t, nodes[i].Subtema, e.Subtema)
		assert.Equal(t, "[]", e.Sumarios)
		assert.Empty(t, e.SumarioList())
	}

	// a later sumário lands in the existing row
	withSumario := nodes[2]
	withSumario.Sumario = "Marcar o tempo com palmas"
	rec = env.do(t, "POST", "/api/admin/curriculum/add", withSumario, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	entries = listCurriculum(t, env)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"Marcar o tempo com palmas"}, entries[2].SumarioList())
}
