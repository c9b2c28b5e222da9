package grading

import (
	"fmt"

	"github.com/schoolyard/edugen/internal/llm"
)

// buildSchema derives the judge's response schema from the rubric so
// every criterion gets exactly one score and one feedback entry.
func buildSchema(r Rubric) *llm.Schema {
	names := make([]any, 0, len(r.Criteria))
	scoreProps := map[string]any{}
	feedbackProps := map[string]any{}
	for _, c := range r.Criteria {
		names = append(names, c.Name)
		scoreProps[c.Name] = map[string]any{
			"type":        "number",
			"minimum":     0,
			"maximum":     1,
			"description": c.Description,
		}
		feedbackProps[c.Name] = map[string]any{
			"type":        "string",
			"description": "Detailed feedback explaining the score for " + c.Name,
		}
	}

	return &llm.Schema{
		Name:        fmt.Sprintf("%s-evaluation", r.Kind),
		Description: fmt.Sprintf("Quality evaluation of a %s against the rubric", r.Kind),
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scores": map[string]any{
					"type":                 "object",
					"properties":           scoreProps,
					"required":             names,
					"additionalProperties": false,
				},
				"feedback": map[string]any{
					"type":                 "object",
					"properties":           feedbackProps,
					"required":             names,
					"additionalProperties": false,
				},
				"critical_issues": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "Critical issues that would automatically cause a fail. Empty when none.",
				},
				"confidence": map[string]any{
					"type":        "number",
					"minimum":     0,
					"maximum":     1,
					"description": "How confident the evaluator is in this evaluation",
				},
			},
			"required":             []any{"scores", "feedback", "critical_issues", "confidence"},
			"additionalProperties": false,
		},
	}
}
