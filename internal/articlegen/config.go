package articlegen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated article; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults. Articles run long, so the token budget is
// larger than for questions.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxTokens:   3000,
		Temperature: 0.7,
	}
}
