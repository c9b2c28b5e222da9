package articlegen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/schoolyard/edugen/internal/llm"
)

func testInput() GenerateInput {
	return GenerateInput{
		Topic:      "Finding the Main Idea",
		Grade:      4,
		Subject:    "Language Arts",
		Difficulty: "medium",
		Keywords:   []string{"main idea", "supporting details"},
	}
}

func validArticleJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Finding the Main Idea in Any Passage",
		"content": "## Introduction\n\nEvery passage has one big idea...\n\n## Worked Examples\n\n**Example 1 (easy):** ...",
		"key_concepts": ["main idea", "supporting details", "topic sentences"]
	}`)
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validArticleJSON()})
	gen := New(mock, DefaultConfig())

	a, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Title != "Finding the Main Idea in Any Passage" {
		t.Errorf("unexpected title: %q", a.Title)
	}
	if len(a.KeyConcepts) != 3 {
		t.Errorf("expected 3 key concepts, got %d", len(a.KeyConcepts))
	}
	if a.Topic != "Finding the Main Idea" {
		t.Errorf("unexpected topic: %q", a.Topic)
	}
	if a.Grade != 4 {
		t.Errorf("unexpected grade: %d", a.Grade)
	}
}

func TestGenerate_PromptContents(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validArticleJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userMsg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{
		"Direct Instruction",
		"Grade 4",
		`"Finding the Main Idea"`,
		"3 worked examples",
		"main idea, supporting details",
	} {
		if !strings.Contains(userMsg, want) {
			t.Errorf("expected user message to contain %q", want)
		}
	}
	if mock.Calls[0].Schema != ArticleSchema {
		t.Error("expected article schema on the request")
	}
}

func TestGenerate_ValidationFailure(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "A Title",
		"content": "",
		"key_concepts": ["one", "two", "three"]
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected validation error")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if valErr.Validator != "structural" {
		t.Errorf("expected structural validator, got %q", valErr.Validator)
	}
}

func TestImprove_CarriesFeedbackAndOriginal(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validArticleJSON()},
		llm.MockResponse{Content: validArticleJSON()},
	)
	gen := New(mock, DefaultConfig())

	a, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	feedback := "CRITICAL ISSUES:\n- worked examples lack explicit steps"
	_, err = gen.Improve(context.Background(), testInput(), a, feedback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userMsg := mock.Calls[1].Messages[0].Content
	if !strings.Contains(userMsg, feedback) {
		t.Error("expected improvement message to contain the feedback")
	}
	if !strings.Contains(userMsg, a.Content) {
		t.Error("expected improvement message to contain the original article")
	}
	if !strings.Contains(userMsg, "Do NOT use inquiry-based learning") {
		t.Error("expected revision constraints in improvement message")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("API error")})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected error from provider")
	}
	if !strings.Contains(err.Error(), "LLM generation failed") {
		t.Errorf("unexpected error message: %v", err)
	}
}
