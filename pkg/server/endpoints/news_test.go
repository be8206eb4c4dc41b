package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

func listNews(t *testing.T, env *testEnv) []model.News {
	t.Helper()
	rec := env.do(t, "GET", "/api/news", nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.News
	decodeBody(t, rec, &items)
	return items
}

func TestNews_PublishAndDelete(t *testing.T) {
	env := newTestEnv(t)
	assert.Empty(t, listNews(t, env))

	rec := env.do(t, "POST", "/api/admin/news", NewsRequest{Title: "Exames nacionais", Content: "Datas publicadas", Category: "MED"}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, "POST", "/api/admin/news", NewsRequest{Title: "Reunião", Source: "Escola 1", ExpiresInDays: 3}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	items := listNews(t, env)
	require.Len(t, items, 2)
	byTitle := map[string]model.News{}
	for _, it := range items {
		byTitle[it.Title] = it
	}
	assert.Equal(t, model.DefaultNewsSource, byTitle["Exames nacionais"].Source)
	assert.Nil(t, byTitle["Exames nacionais"].ExpiresAt)
	require.NotNil(t, byTitle["Reunião"].ExpiresAt)
	assert.True(t, byTitle["Reunião"].ExpiresAt.After(time.Now().Add(71*time.Hour)))

	rec = env.do(t, "DELETE", fmt.Sprintf("/api/admin/news/%d", byTitle["Reunião"].ID), nil, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, listNews(t, env), 1)

	rec = env.do(t, "DELETE", fmt.Sprintf("/api/admin/news/%d", byTitle["Reunião"].ID), nil, env.admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgNewsNotFound, errorOf(t, rec))

	t.Run("title required", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/news", NewsRequest{Content: "sem título"}, env.admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("teachers cannot publish", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/news", NewsRequest{Title: "x"}, env.teacher)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestNews_ExpiredItemsHidden(t *testing.T) {
	env := newTestEnv(t)
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, env.srv.NewsStore.Create(&model.News{Title: "Antiga", Date: past.Add(-48 * time.Hour), ExpiresAt: &past}))
	require.NoError(t, env.srv.NewsStore.Create(&model.News{Title: "Actual", Date: time.Now().UTC()}))

	items := listNews(t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "Actual", items[0].Title)
}

func TestNews_Sync(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.srv.NewsStore.Create(&model.News{Title: "Greve suspensa", Date: time.Now().UTC()}))
	env.ai.news = []ai.NewsItem{
		{Title: "Greve suspensa", Content: "repetida", Category: "Aviso", Source: "ANGOP"},
		{Title: "Novo currículo", Content: "Reforma curricular", Category: "MED", Source: "med.gov.ao"},
	}

	rec := env.do(t, "POST", "/api/ai/sync-news", nil, env.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)

	items := listNews(t, env)
	require.Len(t, items, 2)
	for _, it := range items {
		if it.Title == "Novo currículo" {
			assert.True(t, it.IsAIGenerated)
			assert.NotNil(t, it.ExpiresAt)
		}
	}

	t.Run("model failure", func(t *testing.T) {
		env.ai.err = errors.New("quota exceeded")
		rec := env.do(t, "POST", "/api/ai/sync-news", nil, env.admin)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, msgNewsSyncFailed, errorOf(t, rec))
	})
}
