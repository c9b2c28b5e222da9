package tagging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schoolyard/edugen/internal/llm"
)

const systemPrompt = "You are an expert K-8 curriculum specialist who classifies educational content against subjects, grade levels, standards, and lesson objectives."

// Tags is the classification produced for a piece of content.
type Tags struct {
	// Lesson is the specific lesson objective, e.g. "main_idea".
	Lesson string `json:"lesson"`

	// Grade is the grade level the content targets (K=0 through 8).
	Grade int `json:"grade"`

	// Course is the subject area, e.g. "Language Arts".
	Course string `json:"course"`

	// Difficulty is "easy", "medium", or "hard".
	Difficulty string `json:"difficulty"`

	// Standard is the academic standard the content aligns with,
	// e.g. "CCSS.ELA-LITERACY.RI.4.2". Empty when none fits.
	Standard string `json:"standard"`

	// Keywords are free-form topical tags, 3-6 entries.
	Keywords []string `json:"tags"`
}

// Input describes the content to classify.
type Input struct {
	// Content is the full content text.
	Content string

	// Kind is "question" or "article". Only used for prompt phrasing.
	Kind string

	// GradeHint, when >= 0, tells the model the expected grade level.
	// Pass -1 when unknown.
	GradeHint int
}

// Config controls the tagger's LLM request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended tagger settings. Classification
// wants consistency over creativity.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   500,
		Temperature: 0.2,
	}
}

// Tagger classifies educational content using the LLM provider.
type Tagger struct {
	provider llm.Provider
	config   Config
}

// New creates a Tagger with the given provider and config.
func New(provider llm.Provider, cfg Config) *Tagger {
	return &Tagger{provider: provider, config: cfg}
}

// Tag classifies the given content.
func (t *Tagger) Tag(ctx context.Context, input Input) (*Tags, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("no content provided for tagging")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeTagging)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      TagSchema,
		MaxTokens:   t.config.MaxTokens,
		Temperature: t.config.Temperature,
	}

	resp, err := t.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM tagging failed: %w", err)
	}

	var tags Tags
	if err := json.Unmarshal(resp.Content, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse tagging response: %w", err)
	}

	return &tags, nil
}

func buildUserMessage(input Input) string {
	kind := input.Kind
	if kind == "" {
		kind = "content"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Classify the following educational %s.\n\n", kind)
	if input.GradeHint >= 0 {
		fmt.Fprintf(&b, "The content is expected to target grade %d; verify and correct if it clearly targets another grade.\n\n", input.GradeHint)
	}
	b.WriteString("CONTENT:\n```\n")
	b.WriteString(input.Content)
	b.WriteString("\n```\n\n")
	b.WriteString(`Provide:
- lesson: the specific lesson objective in snake_case (e.g. main_idea, supporting_details, cause_and_effect)
- grade: the target grade level, 0 for Kindergarten through 8
- course: the subject area (e.g. Language Arts, Math, Science)
- difficulty: easy, medium, or hard for the identified grade
- standard: the single best matching academic standard identifier, or empty if none fits
- tags: 3-6 short topical keywords
`)
	return b.String()
}
