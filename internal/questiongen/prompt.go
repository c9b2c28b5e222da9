package questiongen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// structures rotate the question type to keep generated questions varied.
var structures = []string{
	"a main idea question",
	"a supporting details question",
	"a compare and contrast question",
	"a cause and effect question",
	"a vocabulary in context question",
	"a sequencing question",
	"an inference question",
	"a character trait question",
	"an author's purpose question",
	"a fact vs. opinion question",
}

// topics rotate the passage subject matter. Drawn from kid-friendly
// themes across animals, science, daily life, history, and adventure.
var topics = []string{
	"pandas and their bamboo diet",
	"how chameleons change colors",
	"dolphins and their communication methods",
	"the migration of monarch butterflies",
	"how beavers build dams",
	"pet care responsibilities",
	"unusual ocean creatures",
	"how birds build nests",
	"fascinating insect behaviors",
	"amazing animal adaptations",
	"how rainbows form in the sky",
	"the water cycle",
	"different types of clouds",
	"how plants grow from seeds",
	"volcanoes and how they erupt",
	"the changing seasons",
	"recycling and caring for the environment",
	"the solar system planets",
	"how weather forecasting works",
	"dinosaur discoveries",
	"planning a school garden",
	"organizing a community cleanup",
	"how to start a hobby collection",
	"planning a special birthday party",
	"making friends in a new school",
	"learning a new skill or sport",
	"saving money for something special",
	"helping in your community",
	"cultures around the world",
	"family holiday traditions",
	"the first trip to the moon",
	"important inventions like the telephone",
	"how transportation has changed over time",
	"early explorers and their discoveries",
	"how people lived long ago",
	"the history of your favorite foods",
	"famous artists and their work",
	"people who made a difference in history",
	"ancient civilizations",
	"how schools were different in the past",
	"a camping adventure in the woods",
	"discovering a hidden treasure map",
	"making an unexpected friend",
	"overcoming a fear",
	"solving a neighborhood mystery",
	"creating an invention",
	"helping someone in need",
	"participating in a competition",
	"exploring a new place",
	"learning something surprising",
}

// GradeLabel renders a grade level for prompts ("Kindergarten", "Grade 4").
func GradeLabel(grade int) string {
	if grade == 0 {
		return "Kindergarten"
	}
	return fmt.Sprintf("Grade %d", grade)
}

func buildSystemPrompt(input GenerateInput) string {
	subject := input.Subject
	if subject == "" {
		subject = "Language Arts"
	}
	return fmt.Sprintf("You are an expert educational content creator specializing in %s %s.", GradeLabel(input.Grade), subject)
}

// languageGuidance returns the grade-calibrated language rules included
// in every generation prompt.
func languageGuidance(grade int) string {
	return fmt.Sprintf(`LANGUAGE GUIDELINES FOR %s:
- Use vocabulary appropriate for %d-%d year olds
- Keep sentences under 15 words when possible
- Use clear, direct language without ambiguity
- Be historically and factually accurate
- Each wrong answer explanation must be educational and complete
- Solution steps should be clear and sequential`,
		strings.ToUpper(GradeLabel(grade)), grade+5, grade+6)
}

// buildUserMessage constructs the generation prompt. When the input
// carries an example question, it asks for a variation of that example;
// otherwise it asks for a fresh question on a rotated topic and structure.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	if input.ExampleQuestion != "" {
		fmt.Fprintf(&b, "Generate a %s %s question variation for the lesson on %q at %s difficulty level.\n",
			GradeLabel(input.Grade), input.Subject, input.Lesson, input.Difficulty)
		writeLessonDescription(&b, input)
		b.WriteString("This is based on the following example question:\n\n")
		b.WriteString(input.ExampleQuestion)
		b.WriteString("\n\n")
		b.WriteString(languageGuidance(input.Grade))
		b.WriteString("\n\nIMPORTANT REQUIREMENTS:\n")
		b.WriteString("1. Keep the same general structure and question type\n")
		b.WriteString("2. Create a DIFFERENT passage with similar complexity\n")
		fmt.Fprintf(&b, "3. Maintain the same difficulty level (%s)\n", input.Difficulty)
		b.WriteString("4. Use the same number of options\n")
		b.WriteString("5. Keep all the required parts: passage, question, options, explanations, and solution\n")
		b.WriteString("6. Ensure there is ONE unambiguously correct answer\n")
	} else {
		fmt.Fprintf(&b, "Generate a high-quality %s %s question for the lesson on %q at %s difficulty level.\n",
			GradeLabel(input.Grade), input.Subject, input.Lesson, input.Difficulty)
		writeLessonDescription(&b, input)
		b.WriteString("\n")
		b.WriteString(languageGuidance(input.Grade))
		b.WriteString("\n\nContent Requirements:\n")
		fmt.Fprintf(&b, "1. Write a passage about %s\n", topics[rand.IntN(len(topics))])
		fmt.Fprintf(&b, "2. Use %s for your question\n", structures[rand.IntN(len(structures))])
		b.WriteString("3. Create 4 multiple choice options labeled A, B, C, and D\n")
		b.WriteString("4. Include COMPLETE explanations for each wrong answer\n")
		b.WriteString("5. Provide a step-by-step solution with 3-4 steps\n")
		b.WriteString("6. Ensure there is ONE unambiguously correct answer\n")
	}

	if len(input.PriorQuestions) > 0 {
		b.WriteString("\nDo not repeat any of these already generated questions:\n")
		b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))
		b.WriteString("\n")
	}

	return b.String()
}

// buildImprovementMessage constructs the prompt for regenerating a
// question that failed quality review, carrying the grader's feedback.
func buildImprovementMessage(input GenerateInput, original string, feedback string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are improving a %s %s question for a lesson on %q at %s difficulty level.\n\n",
		GradeLabel(input.Grade), input.Subject, input.Lesson, input.Difficulty)
	b.WriteString("Here is the original question:\n```\n")
	b.WriteString(original)
	b.WriteString("\n```\n\n")
	b.WriteString("This question did not meet our quality standards. Please improve it based on this feedback:\n")
	b.WriteString(feedback)
	b.WriteString("\n\nIMPORTANT:\n")
	b.WriteString("1. Keep the same general question type and structure\n")
	fmt.Fprintf(&b, "2. Consider writing about a completely different topic: %s\n", topics[rand.IntN(len(topics))])
	fmt.Fprintf(&b, "3. Maintain the same difficulty level (%s)\n", input.Difficulty)
	b.WriteString("4. Address ALL the feedback points\n")
	b.WriteString("5. Keep the same basic structure (passage, question, options, explanations, solution)\n")
	b.WriteString("6. Ensure there is ONE unambiguously correct answer\n")
	fmt.Fprintf(&b, "7. Keep language appropriate for %d-%d year olds\n", input.Grade+5, input.Grade+6)
	b.WriteString("8. Make sure all explanations are complete and educational\n")

	if input.ExampleQuestion != "" {
		b.WriteString("\nFor reference, here is a similar high-quality question you can use as a model:\n```\n")
		b.WriteString(input.ExampleQuestion)
		b.WriteString("\n```\n")
	}

	return b.String()
}

func writeLessonDescription(b *strings.Builder, input GenerateInput) {
	if input.LessonDescription != "" {
		fmt.Fprintf(b, "Lesson description: %s\n", input.LessonDescription)
	}
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
