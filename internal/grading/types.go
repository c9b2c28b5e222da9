package grading

import (
	"fmt"
	"sort"
	"strings"
)

// Verdict is the overall pass/fail outcome of a quality evaluation.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// Result holds the full outcome of grading one piece of content.
// Scores and feedback come from the judge; the verdict and per-criterion
// results are computed locally from the rubric thresholds.
type Result struct {
	// Verdict is the overall pass/fail outcome.
	Verdict Verdict

	// OverallScore is the weighted average of criterion scores.
	OverallScore float64

	// Scores maps criterion name to the judge's score in [0, 1].
	Scores map[string]float64

	// CriteriaResults maps criterion name to whether it met its threshold.
	CriteriaResults map[string]bool

	// CriticalIssues lists dealbreaker problems the judge identified.
	CriticalIssues []string

	// Confidence is the judge's self-reported confidence in [0, 1].
	Confidence float64

	// Feedback maps criterion name to the judge's detailed feedback.
	Feedback map[string]string

	// FailureReason summarizes why the content failed. Empty on pass.
	FailureReason string
}

// Passed reports whether the content met all quality standards.
func (r *Result) Passed() bool {
	return r.Verdict == VerdictPass
}

// FailedCriteria returns the names of criteria that missed their
// thresholds, sorted for stable output.
func (r *Result) FailedCriteria() []string {
	var failed []string
	for name, ok := range r.CriteriaResults {
		if !ok {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}

// ImprovementFeedback formats the result into actionable feedback for
// the generator's improvement prompt.
func (r *Result) ImprovementFeedback() string {
	var b strings.Builder
	b.WriteString("AREAS TO IMPROVE:\n")

	if len(r.CriticalIssues) > 0 {
		b.WriteString("CRITICAL ISSUES:\n")
		for _, issue := range r.CriticalIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		b.WriteString("\n")
	}

	for _, name := range r.FailedCriteria() {
		fmt.Fprintf(&b, "- %s (%.2f): %s\n", strings.ToUpper(name), r.Scores[name], r.Feedback[name])
	}

	return strings.TrimRight(b.String(), "\n")
}

// BetterThan reports whether this result improves on prev. A passing
// result always beats a failing one; when scores are close, the average
// of the rubric's critical criteria breaks the tie.
func (r *Result) BetterThan(prev *Result, rubric Rubric) bool {
	if prev == nil {
		return true
	}
	if r.Passed() && !prev.Passed() {
		return true
	}
	if !r.Passed() && prev.Passed() {
		return false
	}

	const closeScoreDelta = 0.05
	if abs(r.OverallScore-prev.OverallScore) < closeScoreDelta {
		critical := rubric.CriticalCriteria()
		if len(critical) > 0 {
			return criticalAvg(r.Scores, critical) > criticalAvg(prev.Scores, critical)
		}
	}
	return r.OverallScore > prev.OverallScore
}

func criticalAvg(scores map[string]float64, names []string) float64 {
	var sum float64
	for _, name := range names {
		sum += scores[name]
	}
	return sum / float64(len(names))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
