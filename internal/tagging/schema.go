package tagging

import "github.com/schoolyard/edugen/internal/llm"

// TagSchema defines the JSON schema for LLM tagging responses.
var TagSchema = &llm.Schema{
	Name:        "content-tags",
	Description: "Curriculum classification of a piece of educational content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lesson": map[string]any{
				"type":        "string",
				"description": "Lesson objective in snake_case, e.g. main_idea",
			},
			"grade": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     8,
				"description": "Target grade level, 0 for Kindergarten",
			},
			"course": map[string]any{
				"type":        "string",
				"description": "Subject area, e.g. Language Arts",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "Difficulty for the identified grade",
			},
			"standard": map[string]any{
				"type":        "string",
				"description": "Best matching academic standard identifier, or empty",
			},
			"tags": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    3,
				"maxItems":    6,
				"description": "Short topical keywords",
			},
		},
		"required":             []any{"lesson", "grade", "course", "difficulty", "standard", "tags"},
		"additionalProperties": false,
	},
}
