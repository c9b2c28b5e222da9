package articlegen

import (
	"fmt"
	"strings"
)

const (
	maxTitleLen    = 100
	minKeyConcepts = 3
	maxKeyConcepts = 5
)

// StructuralValidator checks that the article has all required parts.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(a *Article, _ GenerateInput) *ValidationError {
	if strings.TrimSpace(a.Title) == "" {
		return v.fail("title is empty")
	}
	if len(a.Title) > maxTitleLen {
		return v.fail(fmt.Sprintf("title exceeds %d characters", maxTitleLen))
	}
	if strings.TrimSpace(a.Content) == "" {
		return v.fail("content is empty")
	}
	if len(a.KeyConcepts) < minKeyConcepts || len(a.KeyConcepts) > maxKeyConcepts {
		return v.fail(fmt.Sprintf("expected %d-%d key concepts, got %d", minKeyConcepts, maxKeyConcepts, len(a.KeyConcepts)))
	}
	for i, c := range a.KeyConcepts {
		if strings.TrimSpace(c) == "" {
			return v.fail(fmt.Sprintf("key concept %d is empty", i+1))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
