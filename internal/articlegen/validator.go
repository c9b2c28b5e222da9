package articlegen

import "fmt"

// Validator checks a generated article for correctness.
type Validator interface {
	// Name returns a short identifier for this validator.
	Name() string

	// Validate checks the article and returns nil if it passes.
	Validate(a *Article, input GenerateInput) *ValidationError
}

// ValidationError describes why an article failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// IsRetryable reports whether regeneration is likely to fix this failure.
func (e *ValidationError) IsRetryable() bool {
	return e.Retryable
}
