package questiongen

import (
	"fmt"
	"strings"
)

// Render produces the canonical display text for a question. The layout
// matches what graders and reviewers see: passage, prompt, lettered
// options, correct answer, wrong-answer explanations, then solution steps.
func Render(q *Question) string {
	var b strings.Builder

	b.WriteString("Read the following passage and answer the question.\n\n")
	b.WriteString(q.Stimuli)
	b.WriteString("\n\n")
	b.WriteString(q.Prompt)
	b.WriteString("\n\n")

	for _, key := range ChoiceKeys {
		fmt.Fprintf(&b, "%s) %s\n", key, q.Choices[key])
	}

	fmt.Fprintf(&b, "\nCorrect Answer: %s\n", q.CorrectAnswer)

	b.WriteString("\nExplanation for wrong answers:\n")
	for _, key := range ChoiceKeys {
		if key == q.CorrectAnswer {
			continue
		}
		fmt.Fprintf(&b, "%s) %s\n", key, q.WrongAnswerExplanations[key])
	}

	b.WriteString("\nSolution:\n")
	for i, step := range q.Solution {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	return strings.TrimRight(b.String(), "\n")
}
