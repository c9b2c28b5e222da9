package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/schoolyard/edugen/internal/llm"
	"github.com/schoolyard/edugen/internal/store"
)

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// domainError maps errors surfaced by the generation, grading, and
// storage layers onto the HTTP error envelope. Input validation errors
// are reported by handlers directly with 422 before reaching here.
func domainError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	var (
		unavailable *llm.ErrProviderUnavailable
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		maxTokens   *llm.ErrMaxTokensExceeded
		retryable   interface{ IsRetryable() bool }
	)
	switch {
	case errors.As(err, &unavailable), errors.As(err, &rateLimit):
		httpError(w, http.StatusBadGateway, "upstream_error", "llm provider unavailable: %v", err)
	case errors.As(err, &invalid), errors.As(err, &maxTokens):
		httpError(w, http.StatusBadGateway, "upstream_error", "llm produced no usable output: %v", err)
	case errors.As(err, &retryable):
		// Structural validation failures from the generators. Like
		// schema violations, these mean the model never produced a
		// usable artifact.
		httpError(w, http.StatusBadGateway, "upstream_error", "llm produced no usable output: %v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}
