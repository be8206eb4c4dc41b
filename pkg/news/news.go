// Package news keeps the news feed: the initial seed and the AI backed
// synchronisation with the latest education announcements.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// seedItems are published when the feed is empty.
var seedItems = []model.News{
	{Title: "Novo Calendário Escolar 2026", Content: "O MED anunciou as novas datas para o ano lectivo de 2026. Confira na biblioteca.", Category: "MED"},
	{Title: "Dica Pedagógica: Metodologias Ativas", Content: "Como engajar alunos do ensino primário usando jogos educativos.", Category: "Pedagogia"},
	{Title: "Atualização do Portal PPA", Content: "Novas funcionalidades de estatísticas e perfil detalhado adicionadas.", Category: "Aviso"},
}

// Seed publishes the welcome items when no news exists. It reports how
// many were inserted.
func Seed(news store.NewsStore) (int, error) {
	n, err := news.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range seedItems {
		item := seedItems[i]
		if err := news.Create(&item); err != nil {
			return i, fmt.Errorf("seed news %q: %w", item.Title, err)
		}
	}
	return len(seedItems), nil
}

type Syncer struct {
	news store.NewsStore
	gen  ai.Generator
	ttl  time.Duration
	log  *logger.Logger
	now  func() time.Time
}

// NewSyncer creates a syncer whose items expire ttl after insertion.
func NewSyncer(news store.NewsStore, gen ai.Generator, ttl time.Duration, log *logger.Logger) *Syncer {
	return &Syncer{news: news, gen: gen, ttl: ttl, log: log, now: time.Now}
}

// Sync asks the model for recent news and inserts every item whose title
// is not already present. It returns the number of inserted items.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	items, err := s.gen.SearchNews(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	expires := now.Add(s.ttl)
	count := 0
	for _, it := range items {
		exists, err := s.news.ExistsByTitle(it.Title)
		if err != nil {
			return count, err
		}
		if exists {
			continue
		}
		n := &model.News{
			Title:         it.Title,
			Content:       it.Content,
			Category:      it.Category,
			Source:        it.Source,
			IsAIGenerated: true,
			Date:          now,
			ExpiresAt:     &expires,
		}
		if err := s.news.Create(n); err != nil {
			return count, fmt.Errorf("insert news %q: %w", it.Title, err)
		}
		count++
	}

	s.log.Info("news sync completed", "received", len(items), "inserted", count)
	return count, nil
}
