package llm

import "context"

// Purpose labels what a request was issued for. Every stage of the content
// pipeline sets one so usage and cost can be broken down per stage.
type Purpose string

const (
	PurposeQuestionGen Purpose = "question-gen"
	PurposeArticleGen  Purpose = "article-gen"
	PurposeGrading     Purpose = "grading"
	PurposeTagging     Purpose = "tagging"

	// PurposeUnknown is reported for requests made outside the pipeline.
	PurposeUnknown Purpose = "unknown"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey, p)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}
