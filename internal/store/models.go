package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Status is the lifecycle state of persisted content. Transitions
// beyond the initial insert are externally triggered via the API, not
// by the generation workflow.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusActive      Status = "active"
	StatusArchived    Status = "archived"
	StatusNeedsReview Status = "needs_review"
)

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived, StatusNeedsReview:
		return true
	}
	return false
}

// Question is a stored multiple-choice question row. The JSON-typed
// columns (AnswerChoices, WrongAnswerExplanations, Tags) are stored as
// TEXT and decoded by the repository.
type Question struct {
	ID                      string
	Content                 string
	Lesson                  string
	Grade                   int
	Course                  string
	Difficulty              string
	InteractionType         string
	Stimuli                 string
	Prompt                  string
	AnswerChoices           map[string]string
	CorrectAnswer           string
	WrongAnswerExplanations map[string]string
	Solution                string
	FullExplanation         string
	Tags                    []string
	QualityScore            *float64
	Status                  Status
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Article is a stored article row.
type Article struct {
	ID           string
	Title        string
	Content      string
	Lesson       string
	Grade        int
	Subject      string
	Difficulty   string
	Keywords     []string
	Tags         []string
	QualityScore *float64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListOpts filters list queries.
type ListOpts struct {
	Lesson string // exact match; empty = all
	Status Status // exact match; empty = all
	Limit  int    // max rows (0 = default 50)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event row.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token consumption for a group of events.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
