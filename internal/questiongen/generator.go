package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/schoolyard/edugen/internal/llm"
)

// Generator produces multiple-choice questions.
type Generator interface {
	// Generate produces a single question for the given input context.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)

	// Improve regenerates a failed question, steering the model with
	// the quality reviewer's feedback.
	Improve(ctx context.Context, input GenerateInput, original *Question, feedback string) (*Question, error)
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

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Stimuli                 string            `json:"stimuli"`
	Prompt                  string            `json:"prompt"`
	AnswerChoices           map[string]string `json:"answer_choices"`
	CorrectAnswer           string            `json:"correct_answer"`
	WrongAnswerExplanations map[string]string `json:"wrong_answer_explanations"`
	Solution                []string          `json:"solution"`
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	return g.generate(ctx, input, buildUserMessage(input, g.config))
}

// Improve regenerates a failed question using reviewer feedback.
func (g *LLMGenerator) Improve(ctx context.Context, input GenerateInput, original *Question, feedback string) (*Question, error) {
	return g.generate(ctx, input, buildImprovementMessage(input, Render(original), feedback))
}

func (g *LLMGenerator) generate(ctx context.Context, input GenerateInput, userMsg string) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: buildSystemPrompt(input),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	q := &Question{
		Stimuli:                 raw.Stimuli,
		Prompt:                  raw.Prompt,
		Choices:                 raw.AnswerChoices,
		CorrectAnswer:           raw.CorrectAnswer,
		WrongAnswerExplanations: raw.WrongAnswerExplanations,
		Solution:                raw.Solution,
		Lesson:                  input.Lesson,
		Difficulty:              input.Difficulty,
		Grade:                   input.Grade,
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}
