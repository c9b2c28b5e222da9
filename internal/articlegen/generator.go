package articlegen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/schoolyard/edugen/internal/llm"
)

// Generator produces educational articles.
type Generator interface {
	// Generate produces a single article for the given input context.
	Generate(ctx context.Context, input GenerateInput) (*Article, error)

	// Improve regenerates a failed article, steering the model with
	// the quality reviewer's feedback.
	Improve(ctx context.Context, input GenerateInput, original *Article, feedback string) (*Article, error)
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// articleOutput is the raw LLM response before validation.
type articleOutput struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	KeyConcepts []string `json:"key_concepts"`
}

// Generate produces a single article for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Article, error) {
	return g.generate(ctx, input, buildUserMessage(input))
}

// Improve regenerates a failed article using reviewer feedback.
func (g *LLMGenerator) Improve(ctx context.Context, input GenerateInput, original *Article, feedback string) (*Article, error) {
	return g.generate(ctx, input, buildImprovementMessage(input, original.Content, feedback))
}

func (g *LLMGenerator) generate(ctx context.Context, input GenerateInput, userMsg string) (*Article, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeArticleGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ArticleSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw articleOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	a := &Article{
		Title:       raw.Title,
		Content:     raw.Content,
		KeyConcepts: raw.KeyConcepts,
		Topic:       input.Topic,
		Grade:       input.Grade,
		Subject:     input.Subject,
		Difficulty:  input.Difficulty,
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(a, input); verr != nil {
			return nil, verr
		}
	}

	return a, nil
}
