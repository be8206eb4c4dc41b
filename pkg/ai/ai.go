package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when no model API key is set.
var ErrNotConfigured = errors.New("generative model not configured")

// NewsItem is one article returned by the news search.
type NewsItem struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	// SearchNews asks the model, grounded on web search, for the latest
	// education news.
	SearchNews(ctx context.Context) ([]NewsItem, error)
}

// ParseNews decodes the model's JSON answer. Markdown code fences around
// the array are tolerated and an empty answer is an empty list.
func ParseNews(text string) ([]NewsItem, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var items []NewsItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("decode news answer: %w", err)
	}

	out := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Unconfigured fails every call with ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) GenerateText(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) SearchNews(context.Context) ([]NewsItem, error) {
	return nil, ErrNotConfigured
}
