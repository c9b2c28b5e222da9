package questiongen

import "fmt"

// StructuralValidator checks that all required parts of a question are
// present and consistent with each other.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if q.Stimuli == "" {
		return v.fail("stimuli passage is empty")
	}
	if q.Prompt == "" {
		return v.fail("question prompt is empty")
	}
	if len(q.Choices) != len(ChoiceKeys) {
		return v.fail(fmt.Sprintf("expected %d answer choices, got %d", len(ChoiceKeys), len(q.Choices)))
	}
	for _, key := range ChoiceKeys {
		if q.Choices[key] == "" {
			return v.fail(fmt.Sprintf("answer choice %s is missing or empty", key))
		}
	}
	if _, ok := q.Choices[q.CorrectAnswer]; !ok {
		return v.fail(fmt.Sprintf("correct answer %q is not one of the choices", q.CorrectAnswer))
	}
	for _, key := range ChoiceKeys {
		if key == q.CorrectAnswer {
			continue
		}
		if q.WrongAnswerExplanations[key] == "" {
			return v.fail(fmt.Sprintf("missing explanation for wrong answer %s", key))
		}
	}
	if len(q.Solution) == 0 {
		return v.fail("solution has no steps")
	}
	for i, step := range q.Solution {
		if step == "" {
			return v.fail(fmt.Sprintf("solution step %d is empty", i+1))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
