package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact match; empty = all
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// QuestionRepo manages stored multiple-choice questions.
type QuestionRepo interface {
	// Save stores a new question.
	Save(ctx context.Context, q *Question) error

	// Get returns the question with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Question, error)

	// List returns questions matching opts, newest first.
	List(ctx context.Context, opts ListOpts) ([]*Question, error)

	// UpdateStatus changes a question's lifecycle status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// UpdateTagging replaces a question's classification fields.
	UpdateTagging(ctx context.Context, id string, lesson, course, difficulty string, grade int, tags []string) error
}

// ArticleRepo manages stored articles.
type ArticleRepo interface {
	// Save stores a new article.
	Save(ctx context.Context, a *Article) error

	// Get returns the article with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Article, error)

	// List returns articles matching opts, newest first.
	List(ctx context.Context, opts ListOpts) ([]*Article, error)

	// UpdateStatus changes an article's lifecycle status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// UpdateTagging replaces an article's classification fields.
	UpdateTagging(ctx context.Context, id string, lesson, subject, difficulty string, grade int, tags []string) error
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events matching opts, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]*LLMRequestEvent, error)

	// GetLLMEvent returns the event with the given id, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// UsageByPurpose aggregates token usage grouped by request purpose.
	UsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// UsageByModel aggregates token usage grouped by model.
	UsageByModel(ctx context.Context) ([]LLMUsage, error)
}
