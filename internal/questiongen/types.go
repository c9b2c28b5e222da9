package questiongen

// ChoiceKeys lists the multiple-choice option letters in display order.
var ChoiceKeys = []string{"A", "B", "C", "D"}

// Question represents a generated multiple-choice question with all its
// structured parts. Render produces the canonical display text.
type Question struct {
	// Stimuli is the reading passage the question refers to.
	// Plain text with short, grade-appropriate sentences.
	Stimuli string

	// Prompt is the actual question asked about the passage.
	Prompt string

	// Choices maps option letters ("A".."D") to option text.
	// Always contains exactly 4 entries.
	Choices map[string]string

	// CorrectAnswer is the letter of the correct option.
	CorrectAnswer string

	// WrongAnswerExplanations maps each incorrect letter to a complete
	// explanation of why that option is wrong.
	WrongAnswerExplanations map[string]string

	// Solution is the sequential worked solution, one step per entry.
	Solution []string

	// Lesson and Difficulty record what the question was generated for.
	Lesson     string
	Difficulty string
	Grade      int
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	// Lesson is the lesson topic, e.g. "main_idea" or "supporting_details".
	Lesson string

	// LessonDescription optionally elaborates on what the lesson covers.
	LessonDescription string

	// Difficulty is "easy", "medium", or "hard".
	Difficulty string

	// Grade is the target grade level (K=0 through 8).
	Grade int

	// Subject is the subject area, e.g. "Language Arts".
	Subject string

	// ExampleQuestion, when non-empty, switches the generator to
	// variation mode: a new question with the same structure and
	// difficulty as the example but different content.
	ExampleQuestion string

	// PriorQuestions contains prompts of questions already generated
	// for this lesson. Used for deduplication in the prompt.
	PriorQuestions []string
}
