package questiongen

import "github.com/schoolyard/edugen/internal/llm"

// choiceProperties builds the schema properties for an object keyed by
// the option letters A-D.
func choiceProperties(description string) map[string]any {
	props := map[string]any{}
	for _, key := range ChoiceKeys {
		props[key] = map[string]any{
			"type":        "string",
			"description": description,
		}
	}
	return props
}

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "mcq-question",
	Description: "A single multiple-choice question with passage, choices, explanations, and solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stimuli": map[string]any{
				"type":        "string",
				"description": "The reading passage the question refers to. Short, grade-appropriate sentences.",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "The clear, unambiguous question asked about the passage",
			},
			"answer_choices": map[string]any{
				"type":                 "object",
				"properties":           choiceProperties("The text of this answer option"),
				"required":             []any{"A", "B", "C", "D"},
				"additionalProperties": false,
				"description":          "Exactly 4 answer options keyed by letter",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D"},
				"description": "The letter of the single unambiguously correct option",
			},
			"wrong_answer_explanations": map[string]any{
				"type":                 "object",
				"properties":           choiceProperties("Complete explanation of why this option is wrong"),
				"additionalProperties": false,
				"description":          "An entry for each incorrect letter; no entry for the correct letter",
			},
			"solution": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    3,
				"maxItems":    4,
				"description": "Step-by-step solution with 3-4 simple, sequential steps",
			},
		},
		"required":             []any{"stimuli", "prompt", "answer_choices", "correct_answer", "wrong_answer_explanations", "solution"},
		"additionalProperties": false,
	},
}
