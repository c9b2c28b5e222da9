package articlegen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const systemPrompt = "You are an expert education content creator specializing in Direct Instruction teaching methods and Grade K-8 curriculum development."

// sectionTemplate names the headings for each article section. Rotating
// templates keeps generated articles from all looking identical.
type sectionTemplate struct {
	intro, concept, examples, practice, summary string
}

var sectionTemplates = []sectionTemplate{
	{"Introduction", "Key Concept", "Worked Examples", "Practice", "Summary"},
	{"Let's Learn About", "Understanding", "Step-by-Step Examples", "Your Turn", "Remember"},
	{"Exploring", "Main Idea", "Watch How It's Done", "Try These", "Key Points"},
}

// buildUserMessage constructs the article generation prompt.
func buildUserMessage(input GenerateInput) string {
	sections := sectionTemplates[rand.IntN(len(sectionTemplates))]

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s %s educational article on %q at %s difficulty level.\n\n",
		gradeLabel(input.Grade), input.Subject, input.Topic, input.Difficulty)

	b.WriteString(`IMPORTANT: This must follow Direct Instruction teaching style with these characteristics:
1. Explicitly teach concepts with clear, direct language
2. Break down complex ideas into manageable steps
3. Include worked examples that students can follow step-by-step
4. Use grade-appropriate vocabulary and sentence structure
5. Organize content logically with clear headings and sections

ARTICLE STRUCTURE:
`)
	fmt.Fprintf(&b, "- %s: Briefly introduce the topic and why it's important\n", sections.intro)
	fmt.Fprintf(&b, "- %s: Clearly explain the main concepts with definitions\n", sections.concept)
	fmt.Fprintf(&b, "- %s: Provide 3 worked examples (easy, medium, and hard difficulty)\n", sections.examples)
	b.WriteString("  - Break down each example into explicit steps\n")
	b.WriteString("  - Explain the reasoning for each step in detail\n")
	b.WriteString("  - Use simple language and consistent terminology\n")
	fmt.Fprintf(&b, "- %s: Offer 2-3 practice problems for students to try\n", sections.practice)
	fmt.Fprintf(&b, "- %s: Summarize the key ideas and connect to future learning\n", sections.summary)

	b.WriteString("\nCONTENT REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Target: %s\n", gradeLabel(input.Grade))
	fmt.Fprintf(&b, "- Subject: %s\n", input.Subject)
	fmt.Fprintf(&b, "- Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "- Difficulty: %s\n", input.Difficulty)
	if input.Description != "" {
		fmt.Fprintf(&b, "- Coverage: %s\n", input.Description)
	}
	if len(input.Keywords) > 0 {
		fmt.Fprintf(&b, "- Include these keywords: %s\n", strings.Join(input.Keywords, ", "))
	}
	b.WriteString(`- Factually accurate information only
- Clear and unambiguous wording
- Content appropriate for students with lower working memory

FORMAT REQUIREMENTS:
- Use headings for each section
- Use bullet points or numbered lists for steps
- Break text into short paragraphs
- Include visual cues like bold text for important concepts
`)
	fmt.Fprintf(&b, "\nThe article should prepare students to answer questions of varying difficulty levels about %s.\n", input.Topic)

	return b.String()
}

// buildImprovementMessage constructs the prompt for revising an article
// that failed quality review.
func buildImprovementMessage(input GenerateInput, original string, feedback string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You're an expert educator specializing in Direct Instruction. Improve this %s %s article on %q.\n\n",
		gradeLabel(input.Grade), input.Subject, input.Topic)
	b.WriteString("The article has been evaluated and needs improvement based on this feedback:\n\n")
	b.WriteString(feedback)
	b.WriteString("\n\nOriginal Article:\n```\n")
	b.WriteString(original)
	b.WriteString("\n```\n\n")

	b.WriteString("REVISION INSTRUCTIONS:\n")
	b.WriteString("1. Fix all the identified issues while preserving the overall structure\n")
	b.WriteString("2. Ensure the article strictly follows Direct Instruction style\n")
	b.WriteString("3. Make sure worked examples are broken down into very clear steps\n")
	b.WriteString("4. Maintain grade-appropriate vocabulary and sentence structure\n")
	b.WriteString("5. Ensure all content is factually accurate\n")
	fmt.Fprintf(&b, "6. Keep the article focused on the topic: %q\n", input.Topic)
	if len(input.Keywords) > 0 {
		fmt.Fprintf(&b, "7. Include these keywords: %s\n", strings.Join(input.Keywords, ", "))
	}

	b.WriteString(`
IMPORTANT:
- Do NOT change the overall educational purpose
- Do NOT add unnecessary complexity
- Do NOT use inquiry-based learning approaches
- KEEP the Direct Instruction style with explicit teaching
`)

	return b.String()
}

// gradeLabel renders a grade level for prompts ("Kindergarten", "Grade 4").
func gradeLabel(grade int) string {
	if grade == 0 {
		return "Kindergarten"
	}
	return fmt.Sprintf("Grade %d", grade)
}
