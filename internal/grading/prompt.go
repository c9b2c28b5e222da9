package grading

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert educational content evaluator with expertise in K-8 education standards and content quality assessment. You are extremely critical and hold content to the highest standards."

func gradeLabel(grade int) string {
	if grade == 0 {
		return "Kindergarten"
	}
	return fmt.Sprintf("Grade %d", grade)
}

// buildEvaluationPrompt renders the rubric into the judge's instructions.
func buildEvaluationPrompt(r Rubric, content string, grade int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert reviewer of educational content for %s with extremely high standards.\n", gradeLabel(grade))
	fmt.Fprintf(&b, "You'll evaluate a piece of educational content against %d specific quality criteria, providing a score and detailed feedback.\n\n", len(r.Criteria))
	b.WriteString("Important: Educational content MUST be of the highest quality. Be extremely strict and critical in your evaluation.\n")
	b.WriteString("Err on the side of failing content when in doubt. It's far better to reject good content than to allow bad content through.\n\n")

	b.WriteString("CONTENT TO EVALUATE:\n```\n")
	b.WriteString(content)
	b.WriteString("\n```\n\nEVALUATION CRITERIA:\n\n")

	for i, c := range r.Criteria {
		fmt.Fprintf(&b, "%d. %s (Score 0.0-1.0)\n", i+1, strings.ToUpper(c.Name))
		fmt.Fprintf(&b, "   Definition: %s\n", c.Description)
		b.WriteString("   Components to look for:\n")
		for _, comp := range c.Components {
			fmt.Fprintf(&b, "   - %s\n", comp)
		}
		b.WriteString("   Critical issues to check for:\n")
		for _, issue := range c.CriticalIssues {
			fmt.Fprintf(&b, "   - %s\n", issue)
		}
		b.WriteString("\n")
	}

	b.WriteString(`SCORING GUIDELINES:
Use a fine-grained scale from 0.0 to 1.0 with increments of 0.05 to allow for nuanced evaluation:
- 0.00-0.40: Severely deficient, unacceptable
- 0.45-0.60: Significant issues present
- 0.65-0.75: Some issues, needs improvement
- 0.80-0.90: Minor issues, generally acceptable
- 0.95-1.00: Excellent, meets all requirements

For each criterion, provide:
1. A score between 0.0 and 1.0 using the increments described above
2. Detailed feedback explaining the score
3. List any critical issues identified (issues that would automatically cause a fail)

Also provide a confidence score (0.0-1.0) indicating how confident you are in your evaluation.

`)
	fmt.Fprintf(&b, "Be extremely critical and hold the content to the highest standards for %s.\n", gradeLabel(grade))
	b.WriteString("Again, it is better to fail good content than to pass bad content.\n")

	return b.String()
}
