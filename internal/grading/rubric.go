package grading

// Criterion is one dimension of the quality rubric.
type Criterion struct {
	// Name is the snake_case identifier used in scores and feedback.
	Name string

	// Description is a one-line definition of what the criterion measures.
	Description string

	// Components list what the judge should look for.
	Components []string

	// CriticalIssues list failure modes that should be reported as
	// critical issues when found.
	CriticalIssues []string

	// Weight scales this criterion in the overall score.
	Weight float64

	// Critical marks dealbreaker criteria held to the higher threshold.
	Critical bool
}

// Rubric defines the full quality policy for one content kind: the
// criteria the judge scores and the thresholds the verdict is computed
// against.
type Rubric struct {
	// Kind labels the content this rubric applies to ("question", "article").
	Kind string

	Criteria []Criterion

	// PassingThreshold is the minimum weighted overall score.
	PassingThreshold float64

	// MinCriterionThreshold fails any criterion scoring below it.
	MinCriterionThreshold float64

	// CriticalThreshold is the higher bar applied to critical criteria.
	CriticalThreshold float64

	// MinConfidence fails evaluations the judge itself is unsure about.
	MinConfidence float64
}

// CriticalCriteria returns the names of the rubric's critical criteria.
func (r Rubric) CriticalCriteria() []string {
	var names []string
	for _, c := range r.Criteria {
		if c.Critical {
			names = append(names, c.Name)
		}
	}
	return names
}

// criterion looks up a criterion by name.
func (r Rubric) criterion(name string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.Name == name {
			return c, true
		}
	}
	return Criterion{}, false
}

// QuestionRubric returns the quality policy for multiple-choice questions.
func QuestionRubric() Rubric {
	return Rubric{
		Kind:                  "question",
		PassingThreshold:      0.85,
		MinCriterionThreshold: 0.75,
		CriticalThreshold:     0.85,
		MinConfidence:         0.85,
		Criteria: []Criterion{
			{
				Name:        "completeness",
				Description: "All required components are present and fully developed.",
				Components: []string{
					"Question stem with clear prompt",
					"Answer options (for MCQ)",
					"Correct answer identification",
					"Explanations for wrong answers (for MCQ)",
					"Step-by-step solution",
				},
				CriticalIssues: []string{
					"Missing question stem",
					"Missing answer options for MCQ",
					"No clear correct answer",
					"Missing explanations for wrong answers",
					"No solution provided",
				},
				Weight:   1.0,
				Critical: true,
			},
			{
				Name:        "answer_quality",
				Description: "Answers and distractors are well-designed and educationally sound.",
				Components: []string{
					"Single unambiguously correct answer",
					"Plausible distractors (for MCQ)",
					"No obviously incorrect distractors",
					"Distractors that test common misconceptions",
					"Correct answer doesn't stand out based on length/format",
				},
				CriticalIssues: []string{
					"Multiple potentially correct answers",
					"Implausible distractors that don't test understanding",
					"Distractors that are obviously wrong",
					"Correct answer is identifiable by format or pattern",
				},
				Weight:   1.0,
				Critical: true,
			},
			{
				Name:        "explanation_quality",
				Description: "Explanations are clear, accurate, and educational.",
				Components: []string{
					"Correct solution explained step-by-step",
					"Clear reasoning for each step",
					"Specific explanations for why distractors are wrong",
					"Educational value in explanations",
					"Appropriate level of detail",
				},
				CriticalIssues: []string{
					"Incorrect explanation",
					"Confusing or misleading explanations",
					"Explanations that don't address misconceptions",
					"Overly complex explanations for grade level",
				},
				Weight: 1.0,
			},
			{
				Name:        "language_quality",
				Description: "Language is grade-appropriate, clear, and grammatically correct.",
				Components: []string{
					"Grade-appropriate vocabulary",
					"Clear and unambiguous wording",
					"Correct grammar and punctuation",
					"Consistent terminology",
					"Well-formatted text",
				},
				CriticalIssues: []string{
					"Vocabulary significantly above/below grade level",
					"Ambiguous or confusing wording",
					"Severe grammar or punctuation errors",
					"Inconsistent terminology that affects understanding",
				},
				Weight: 1.0,
			},
		},
	}
}

// ArticleRubric returns the quality policy for educational articles.
// Critical criteria carry extra weight in the overall score and are
// held to a 0.90 bar.
func ArticleRubric() Rubric {
	return Rubric{
		Kind:                  "article",
		PassingThreshold:      0.85,
		MinCriterionThreshold: 0.75,
		CriticalThreshold:     0.90,
		MinConfidence:         0.85,
		Criteria: []Criterion{
			{
				Name:        "categorization",
				Description: "Appropriate subject, grade, standard, and lesson categorization",
				Components: []string{
					"Subject accuracy",
					"Grade level accuracy",
					"Standard alignment",
					"Lesson specificity",
				},
				CriticalIssues: []string{
					"Incorrect subject area",
					"Wrong grade level",
					"Misaligned with standard",
					"Not specific to lesson objectives",
				},
				Weight: 1.0,
			},
			{
				Name:        "instructional_style",
				Description: "Explicitly teaches in Direct Instruction style with clear procedures",
				Components: []string{
					"Direct instruction approach",
					"Clear conceptual explanations",
					"Procedural guidance",
					"Scaffolded learning structure",
				},
				CriticalIssues: []string{
					"Uses inquiry-based approach instead of direct instruction",
					"Concepts explained vaguely or incompletely",
					"Missing step-by-step procedures",
					"No scaffolding for complex concepts",
				},
				Weight:   1.2,
				Critical: true,
			},
			{
				Name:        "worked_examples",
				Description: "Contains effective worked examples for all difficulty levels",
				Components: []string{
					"Step breakdown for lower working memory",
					"Examples for easy concepts",
					"Examples for medium concepts",
					"Examples for hard concepts",
				},
				CriticalIssues: []string{
					"Steps not broken down adequately",
					"Missing examples for key concepts",
					"Examples don't prepare for all difficulty levels",
					"Examples too complex for grade level",
				},
				Weight:   1.2,
				Critical: true,
			},
			{
				Name:        "content_accuracy",
				Description: "Content is factually accurate and free of misconceptions",
				Components: []string{
					"Factual correctness",
					"No conceptual errors",
					"Accurate definitions",
					"Correct procedures",
				},
				CriticalIssues: []string{
					"Contains factual errors",
					"Presents misconceptions",
					"Incorrect definitions",
					"Erroneous procedures",
				},
				Weight:   1.2,
				Critical: true,
			},
			{
				Name:        "language_appropriateness",
				Description: "Grade-level vocabulary and sentence structure",
				Components: []string{
					"Age-appropriate vocabulary",
					"Appropriate sentence complexity",
					"Defined technical terms",
					"Consistent terminology",
				},
				CriticalIssues: []string{
					"Vocabulary too advanced for grade level",
					"Overly complex sentence structures",
					"Undefined technical terms",
					"Inconsistent terminology",
				},
				Weight: 1.0,
			},
			{
				Name:        "clarity",
				Description: "Clear, direct, and unambiguous explanations",
				Components: []string{
					"Clear explanations",
					"Direct language",
					"Unambiguous terminology",
					"Logical flow",
				},
				CriticalIssues: []string{
					"Confusing explanations",
					"Indirect or vague language",
					"Ambiguous terminology",
					"Illogical organization",
				},
				Weight: 1.0,
			},
			{
				Name:        "formatting",
				Description: "Properly formatted with visual organization",
				Components: []string{
					"Consistent headings",
					"Appropriate paragraph breaks",
					"Visual aids when needed",
					"Clean layout",
				},
				CriticalIssues: []string{
					"Inconsistent heading structure",
					"Wall of text without breaks",
					"Missing visual aids where needed",
					"Cluttered or disorganized layout",
				},
				Weight: 0.8,
			},
			{
				Name:        "content_consistency",
				Description: "Uniform explanations across related lessons",
				Components: []string{
					"Consistent terminology with prerequisites",
					"Builds on previous concepts",
					"Consistent explanation methods",
					"Reinforces key principles",
				},
				CriticalIssues: []string{
					"Terminology differs from related lessons",
					"Contradicts previous lesson content",
					"Inconsistent explanation methods",
					"Fails to reinforce key principles",
				},
				Weight: 1.0,
			},
		},
	}
}
