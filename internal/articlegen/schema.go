package articlegen

import "github.com/schoolyard/edugen/internal/llm"

// ArticleSchema defines the JSON schema for LLM article generation
// responses. Title and key concepts are produced in the same call as
// the body, so no follow-up extraction requests are needed.
var ArticleSchema = &llm.Schema{
	Name:        "educational-article",
	Description: "A Direct Instruction educational article with title and key concepts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A clear, engaging title of 8 words or fewer, no quotation marks",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "The full article in markdown with headings, worked examples, practice problems, and a summary",
			},
			"key_concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    3,
				"maxItems":    5,
				"description": "The 3-5 concepts the article teaches",
			},
		},
		"required":             []any{"title", "content", "key_concepts"},
		"additionalProperties": false,
	},
}
