package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/middleware"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

func TestFeedback(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/feedback", FeedbackRequest{UserID: env.teacher.ID, Content: "O PDF não abre", Type: "bug"}, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "Novo Feedback Recebido: BUG", env.notifier.sent[0].subject)
	assert.Equal(t, "Usuário: Prof. ana@escola.ao\nTipo: bug\n\nConteúdo:\nO PDF não abre", env.notifier.sent[0].body)

	t.Run("teachers cannot list", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/admin/feedback", nil, env.teacher)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, middleware.MsgForbidden, errorOf(t, rec))
	})

	rec = env.do(t, "GET", "/api/admin/feedback", nil, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.FeedbackView
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, status.FeedbackPendente, list[0].Status)
	require.NotNil(t, list[0].Email)
	assert.Equal(t, "ana@escola.ao", *list[0].Email)

	rec = env.do(t, "POST", "/api/admin/feedback/resolve", map[string]int64{"id": list[0].ID}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/api/admin/feedback", nil, env.admin)
	decodeBody(t, rec, &list)
	assert.Equal(t, status.FeedbackResolvido, list[0].Status)

	t.Run("resolve unknown", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/feedback/resolve", map[string]int64{"id": 999}, env.admin)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFeedback_TypeIsNormalized(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/feedback", FeedbackRequest{UserID: env.teacher.ID, Content: "Mais fichas de Música", Type: " Sugestao "}, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "Novo Feedback Recebido: SUGESTÃO", env.notifier.sent[0].subject)

	var stored model.Feedback
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "sugestão", stored.Type)

	rec = env.do(t, "POST", "/api/feedback", FeedbackRequest{UserID: env.teacher.ID, Content: "x", Type: "   "}, env.teacher)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, env.notifier.sent, 1)
}
