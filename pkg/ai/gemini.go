package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

var _ Generator = (*Gemini)(nil)

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// newsSchema constrains the answer to an array of news items.
var newsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"content":  {Type: genai.TypeString},
			"category": {Type: genai.TypeString},
			"source":   {Type: genai.TypeString},
		},
		Required: []string{"title", "content", "category", "source"},
	},
}

func (g *Gemini) SearchNews(ctx context.Context) ([]NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(NewsPrompt), &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   newsSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("news search: %w", err)
	}
	return ParseNews(resp.Text())
}
