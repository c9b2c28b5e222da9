package articlegen

// Article represents a generated educational article.
type Article struct {
	// Title is a short, engaging title (8 words or fewer).
	Title string

	// Content is the full article body in markdown with section
	// headings, worked examples, practice problems, and a summary.
	Content string

	// KeyConcepts lists the 3-5 concepts the article teaches.
	KeyConcepts []string

	// Topic, Grade, Subject, and Difficulty record what the article
	// was generated for.
	Topic      string
	Grade      int
	Subject    string
	Difficulty string
}

// GenerateInput holds all context needed to generate an article.
type GenerateInput struct {
	// Topic is the main topic of the article.
	Topic string

	// Description optionally elaborates on what the article should cover.
	Description string

	// Grade is the target grade level (K=0 through 8).
	Grade int

	// Subject is the subject area, e.g. "Language Arts".
	Subject string

	// Difficulty is "easy", "medium", or "hard".
	Difficulty string

	// Keywords lists terms the article must include.
	Keywords []string
}
