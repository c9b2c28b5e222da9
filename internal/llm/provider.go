package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts an LLM backend. The question and article generators,
// the grader, and the tagger all speak this interface; provider selection
// is a configuration concern.
type Provider interface {
	// Generate sends a prompt and returns the model's output. When the
	// request carries a Schema the provider uses its native structured
	// output mechanism and the returned Content is schema-valid JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// defaultMaxTokens applies when a request does not set MaxTokens. Sized for
// a full-length article at the upper grades; shorter artifacts set their
// own tighter budgets in their generator configs.
const defaultMaxTokens = 4096

// Request describes what to send to the LLM.
type Request struct {
	// System sets the model's role, e.g. an educational content writer
	// or a grader applying a rubric.
	System string

	// Messages is the conversation. Generation is single-turn (one user
	// message); improvement rounds append the prior draft as an
	// assistant turn followed by the grader's feedback.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Every
	// pipeline stage sets one: mcq-question, educational-article,
	// grading-result, or content-tags. When nil the response Content is
	// the raw text.
	Schema *Schema

	// MaxTokens bounds the response. Zero means defaultMaxTokens.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Generation runs warm
	// (0.7), grading and tagging run near deterministic.
	Temperature float64
}

// Message is a single turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "mcq-question". Also
	// the key under which the compiled form is cached.
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. Schema-valid JSON when the
	// request carried a Schema, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized across providers: "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// tokenBudget resolves the effective MaxTokens for a request.
func tokenBudget(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
