package grading

import (
	"strings"
	"testing"
)

func passResult(overall float64, critical float64) *Result {
	return &Result{
		Verdict:      VerdictPass,
		OverallScore: overall,
		Scores: map[string]float64{
			"completeness":        critical,
			"answer_quality":      critical,
			"explanation_quality": overall,
			"language_quality":    overall,
		},
	}
}

func failResult(overall float64) *Result {
	r := passResult(overall, overall)
	r.Verdict = VerdictFail
	r.FailureReason = "Failed criteria: answer_quality"
	return r
}

func TestBetterThan(t *testing.T) {
	rubric := QuestionRubric()

	tests := []struct {
		name    string
		current *Result
		prev    *Result
		want    bool
	}{
		{"nil previous", failResult(0.5), nil, true},
		{"pass beats fail", passResult(0.86, 0.86), failResult(0.95), true},
		{"fail loses to pass", failResult(0.95), passResult(0.86, 0.86), false},
		{"higher score wins", failResult(0.80), failResult(0.70), true},
		{"lower score loses", failResult(0.70), failResult(0.80), false},
		{
			"close scores break tie on critical criteria",
			&Result{Verdict: VerdictFail, OverallScore: 0.80, Scores: map[string]float64{
				"completeness": 0.90, "answer_quality": 0.90,
				"explanation_quality": 0.70, "language_quality": 0.70,
			}},
			&Result{Verdict: VerdictFail, OverallScore: 0.82, Scores: map[string]float64{
				"completeness": 0.80, "answer_quality": 0.80,
				"explanation_quality": 0.84, "language_quality": 0.84,
			}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.current.BetterThan(tt.prev, rubric); got != tt.want {
				t.Errorf("BetterThan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImprovementFeedback(t *testing.T) {
	r := &Result{
		Verdict: VerdictFail,
		Scores: map[string]float64{
			"completeness":   0.60,
			"answer_quality": 0.90,
		},
		CriteriaResults: map[string]bool{
			"completeness":   false,
			"answer_quality": true,
		},
		CriticalIssues: []string{"No solution provided"},
		Feedback: map[string]string{
			"completeness":   "The solution section is missing.",
			"answer_quality": "Distractors are plausible.",
		},
	}

	got := r.ImprovementFeedback()
	for _, want := range []string{
		"AREAS TO IMPROVE:",
		"CRITICAL ISSUES:",
		"- No solution provided",
		"COMPLETENESS (0.60): The solution section is missing.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected feedback to contain %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "ANSWER_QUALITY") {
		t.Error("passing criteria should not appear in improvement feedback")
	}
}

func TestRubricCriticalCriteria(t *testing.T) {
	q := QuestionRubric().CriticalCriteria()
	if len(q) != 2 || q[0] != "completeness" || q[1] != "answer_quality" {
		t.Errorf("question critical criteria = %v", q)
	}

	a := ArticleRubric().CriticalCriteria()
	want := []string{"instructional_style", "worked_examples", "content_accuracy"}
	if len(a) != len(want) {
		t.Fatalf("article critical criteria = %v", a)
	}
	for i := range want {
		if a[i] != want[i] {
			t.Errorf("article critical criteria[%d] = %q, want %q", i, a[i], want[i])
		}
	}
}
