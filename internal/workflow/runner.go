package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/schoolyard/edugen/internal/grading"
	"github.com/schoolyard/edugen/internal/llm"
)

// GenerateFunc produces one artifact. On the first attempt prev is the
// zero value and feedback is empty; on retries after a failed quality
// check, prev is the previous artifact and feedback carries the judge's
// improvement guidance.
type GenerateFunc[T any] func(ctx context.Context, prev T, feedback string) (T, error)

// GradeFunc evaluates an artifact and returns the judge's result.
type GradeFunc[T any] func(ctx context.Context, artifact T) (*grading.Result, error)

// Config bounds the retry loop.
type Config struct {
	// MaxRetries is the number of additional generation attempts after
	// the first. Total generation calls never exceed MaxRetries+1.
	MaxRetries int

	// Rubric is used for best-result comparison across attempts.
	Rubric grading.Rubric
}

// Outcome is the terminal result of one workflow run.
type Outcome[T any] struct {
	// Artifact is the accepted artifact, or on exhaustion the best
	// failing candidate. Valid only when HasArtifact is true.
	Artifact T

	// HasArtifact reports whether any candidate survived a quality check.
	HasArtifact bool

	// State is StateAccepted or StateExhausted.
	State State

	// Attempts counts generation calls made (1..MaxRetries+1).
	Attempts int

	// Grade is the judge's result for the returned artifact.
	Grade *grading.Result
}

// Run drives the generate-check-retry loop to a terminal state.
//
// A generation call that fails validation or schema conformance consumes
// one attempt from the retry budget; anything else (provider outages,
// context cancellation, judge transport failures) aborts the run with an
// error. When the budget runs out, the best failing candidate is
// returned with StateExhausted; if no attempt ever produced a parseable
// candidate, Run reports the last generation error instead.
func Run[T any](ctx context.Context, cfg Config, generate GenerateFunc[T], grade GradeFunc[T]) (*Outcome[T], error) {
	var (
		best      T
		bestGrade *grading.Result
		prev      T
		feedback  string
		lastErr   error
	)

	maxAttempts := cfg.MaxRetries + 1
	attempts := 0
	for attempts < maxAttempts {
		attempts++

		artifact, err := generate(ctx, prev, feedback)
		if err != nil {
			if !retryable(err) {
				return nil, err
			}
			// A malformed or invalid artifact consumes a content
			// retry. The previous candidate and feedback carry over.
			lastErr = err
			continue
		}

		result, err := grade(ctx, artifact)
		if err != nil {
			return nil, fmt.Errorf("quality check failed: %w", err)
		}

		if result.BetterThan(bestGrade, cfg.Rubric) {
			best = artifact
			bestGrade = result
		}

		if result.Passed() {
			return &Outcome[T]{
				Artifact:    artifact,
				HasArtifact: true,
				State:       StateAccepted,
				Attempts:    attempts,
				Grade:       result,
			}, nil
		}

		prev = artifact
		feedback = result.ImprovementFeedback()
	}

	if bestGrade == nil {
		if lastErr == nil {
			lastErr = errors.New("no generation attempts made")
		}
		return nil, fmt.Errorf("all %d generation attempts failed: %w", attempts, lastErr)
	}

	return &Outcome[T]{
		Artifact:    best,
		HasArtifact: true,
		State:       StateExhausted,
		Attempts:    attempts,
		Grade:       bestGrade,
	}, nil
}

// retryable reports whether a generation error should consume a content
// retry instead of aborting the run.
func retryable(err error) bool {
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return true
	}
	var rt interface{ IsRetryable() bool }
	if errors.As(err, &rt) {
		return rt.IsRetryable()
	}
	return false
}
