package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schoolyard/edugen/internal/llm"
)

// Config controls the judge's LLM request.
type Config struct {
	// MaxTokens is the token budget for the evaluation response.
	MaxTokens int

	// Temperature is kept low for consistent evaluations.
	Temperature float64
}

// DefaultConfig returns the recommended judge settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2000,
		Temperature: 0.1,
	}
}

// Grader evaluates content against a rubric using an LLM judge. The
// judge only produces raw scores; the verdict is computed locally from
// the rubric's thresholds.
type Grader struct {
	provider llm.Provider
	rubric   Rubric
	schema   *llm.Schema
	config   Config
}

// New creates a Grader for the given rubric.
func New(provider llm.Provider, rubric Rubric, cfg Config) *Grader {
	return &Grader{
		provider: provider,
		rubric:   rubric,
		schema:   buildSchema(rubric),
		config:   cfg,
	}
}

// Rubric returns the rubric this grader applies.
func (g *Grader) Rubric() Rubric {
	return g.rubric
}

// evaluation is the judge's raw response before the verdict is applied.
type evaluation struct {
	Scores         map[string]float64 `json:"scores"`
	Feedback       map[string]string  `json:"feedback"`
	CriticalIssues []string           `json:"critical_issues"`
	Confidence     float64            `json:"confidence"`
}

// Grade evaluates content for the given grade level and returns the
// full result with the locally computed verdict.
func (g *Grader) Grade(ctx context.Context, content string, grade int) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("no content provided for grading")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeGrading)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationPrompt(g.rubric, content, grade)},
		},
		Schema:      g.schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	var eval evaluation
	if err := json.Unmarshal(resp.Content, &eval); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w", err)
	}

	return g.applyVerdict(eval), nil
}

// applyVerdict turns the judge's raw evaluation into a Result by
// checking every threshold in the rubric.
func (g *Grader) applyVerdict(eval evaluation) *Result {
	r := &Result{
		Scores:          eval.Scores,
		CriteriaResults: make(map[string]bool, len(g.rubric.Criteria)),
		CriticalIssues:  eval.CriticalIssues,
		Confidence:      eval.Confidence,
		Feedback:        eval.Feedback,
	}

	var weightedSum, totalWeight float64
	var failing []string
	for _, c := range g.rubric.Criteria {
		score := eval.Scores[c.Name]
		weightedSum += score * c.Weight
		totalWeight += c.Weight

		threshold := g.rubric.MinCriterionThreshold
		if c.Critical {
			threshold = g.rubric.CriticalThreshold
		}
		passes := score >= threshold
		r.CriteriaResults[c.Name] = passes
		if !passes {
			failing = append(failing, c.Name)
		}
	}
	if totalWeight > 0 {
		r.OverallScore = weightedSum / totalWeight
	}

	switch {
	case eval.Confidence < g.rubric.MinConfidence:
		r.FailureReason = "Low evaluation confidence"
	case len(eval.CriticalIssues) > 0:
		r.FailureReason = "Critical issues identified: " + strings.Join(head(eval.CriticalIssues, 3), ", ")
	case len(failing) > 0:
		r.FailureReason = "Failed criteria: " + strings.Join(failing, ", ")
	case r.OverallScore < g.rubric.PassingThreshold:
		r.FailureReason = fmt.Sprintf("Overall score %.2f below passing threshold %.2f", r.OverallScore, g.rubric.PassingThreshold)
	}

	if r.FailureReason == "" {
		r.Verdict = VerdictPass
	} else {
		r.Verdict = VerdictFail
	}
	return r
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
