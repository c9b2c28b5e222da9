package questiongen

import (
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Stimuli: "Beavers are busy builders. They use wood to build dams across streams.",
		Prompt:  "What is the main idea of this passage?",
		Choices: map[string]string{
			"A": "Beavers build dams",
			"B": "Beavers have teeth",
			"C": "Streams are wet",
			"D": "Wood floats",
		},
		CorrectAnswer: "A",
		WrongAnswerExplanations: map[string]string{
			"B": "This is a detail, not the main idea.",
			"C": "The passage is not about streams.",
			"D": "The passage does not discuss floating.",
		},
		Solution: []string{
			"Ask what the passage is mostly about.",
			"Check each option against the whole passage.",
			"Pick the option that covers everything.",
		},
	}
}

func TestStructural_Valid(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion(), GenerateInput{}); err != nil {
		t.Fatalf("expected valid question to pass, got: %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantMsg string
	}{
		{
			name:    "empty stimuli",
			mutate:  func(q *Question) { q.Stimuli = "" },
			wantMsg: "stimuli",
		},
		{
			name:    "empty prompt",
			mutate:  func(q *Question) { q.Prompt = "" },
			wantMsg: "prompt",
		},
		{
			name:    "missing choice",
			mutate:  func(q *Question) { delete(q.Choices, "D") },
			wantMsg: "choices",
		},
		{
			name:    "empty choice text",
			mutate:  func(q *Question) { q.Choices["C"] = "" },
			wantMsg: "choice C",
		},
		{
			name:    "correct answer not a choice",
			mutate:  func(q *Question) { q.CorrectAnswer = "E" },
			wantMsg: "not one of the choices",
		},
		{
			name:    "missing wrong answer explanation",
			mutate:  func(q *Question) { delete(q.WrongAnswerExplanations, "B") },
			wantMsg: "explanation for wrong answer B",
		},
		{
			name:    "no solution steps",
			mutate:  func(q *Question) { q.Solution = nil },
			wantMsg: "solution",
		},
		{
			name:    "empty solution step",
			mutate:  func(q *Question) { q.Solution[1] = "" },
			wantMsg: "step 2",
		},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, GenerateInput{})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", err.Message, tt.wantMsg)
			}
			if !err.Retryable {
				t.Error("expected structural failures to be retryable")
			}
		})
	}
}

func TestStructural_NoExplanationNeededForCorrect(t *testing.T) {
	q := validQuestion()
	// An explanation for the correct letter is allowed but never required.
	q.WrongAnswerExplanations["A"] = "extra"
	v := &StructuralValidator{}
	if err := v.Validate(q, GenerateInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
