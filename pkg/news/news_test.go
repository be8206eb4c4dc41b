package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/db/dbtest"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

type fakeGenerator struct {
	items []ai.NewsItem
	err   error
}

func (f fakeGenerator) GenerateText(context.Context, string) (string, error) { return "", nil }

func (f fakeGenerator) SearchNews(context.Context) ([]ai.NewsItem, error) { return f.items, f.err }

func TestSeed(t *testing.T) {
	st := gormstore.NewNewsStore(dbtest.New(t, nil))

	n, err := Seed(st)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// second run is a no-op
	n, err = Seed(st)
	require.NoError(t, err)
	assert.Zero(t, n)

	items, err := st.ListActive(time.Now())
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, it := range items {
		assert.Equal(t, model.DefaultNewsSource, it.Source)
		assert.False(t, it.IsAIGenerated)
		assert.Nil(t, it.ExpiresAt)
	}
}

func TestSyncer_Sync(t *testing.T) {
	st := gormstore.NewNewsStore(dbtest.New(t, nil))
	require.NoError(t, st.Create(&model.News{Title: "Já existe", Category: "MED"}))

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSyncer(st, fakeGenerator{items: []ai.NewsItem{
		{Title: "Já existe", Content: "dup", Category: "MED", Source: "med.gov.ao"},
		{Title: "Greve suspensa", Content: "O sindicato suspendeu a greve.", Category: "Aviso", Source: "jornaldeangola.ao"},
	}}, 14*24*time.Hour, logger.Nop())
	s.now = func() time.Time { return now }

	count, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	items, err := st.ListActive(now)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var synced *model.News
	for i := range items {
		if items[i].Title == "Greve suspensa" {
			synced = &items[i]
		}
	}
	require.NotNil(t, synced)
	assert.True(t, synced.IsAIGenerated)
	assert.Equal(t, "jornaldeangola.ao", synced.Source)
	require.NotNil(t, synced.ExpiresAt)
	assert.True(t, now.Add(14*24*time.Hour).Equal(*synced.ExpiresAt))

	// gone once the ttl elapses
	items, err = st.ListActive(now.Add(15 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSyncer_GeneratorError(t *testing.T) {
	st := gormstore.NewNewsStore(dbtest.New(t, nil))
	s := NewSyncer(st, fakeGenerator{err: errors.New("quota")}, time.Hour, logger.Nop())

	_, err := s.Sync(context.Background())
	assert.Error(t, err)
}
