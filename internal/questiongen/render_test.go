package questiongen

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render(validQuestion())

	if !strings.HasPrefix(got, "Read the following passage and answer the question.") {
		t.Error("expected standard passage header")
	}
	for _, want := range []string{
		"Beavers are busy builders.",
		"What is the main idea of this passage?",
		"A) Beavers build dams",
		"D) Wood floats",
		"Correct Answer: A",
		"Explanation for wrong answers:",
		"B) This is a detail, not the main idea.",
		"Solution:",
		"1. Ask what the passage is mostly about.",
		"3. Pick the option that covers everything.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected rendered question to contain %q\n%s", want, got)
		}
	}

	// The correct letter gets no wrong-answer explanation line.
	if strings.Contains(got, "A) This") {
		t.Error("unexpected explanation for the correct answer")
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("expected no trailing newline")
	}
}

func TestRender_Deterministic(t *testing.T) {
	q := validQuestion()
	if Render(q) != Render(q) {
		t.Error("expected identical output for identical input")
	}
}
