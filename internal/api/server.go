// Package api exposes the content generation, grading, and tagging
// pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolyard/edugen/internal/articlegen"
	"github.com/schoolyard/edugen/internal/grading"
	"github.com/schoolyard/edugen/internal/questiongen"
	"github.com/schoolyard/edugen/internal/store"
	"github.com/schoolyard/edugen/internal/tagging"
)

const (
	apiTitle   = "Educational Content Generation API"
	apiVersion = "v1"
)

// Deps carries everything the handlers need.
type Deps struct {
	Store *store.Store

	Questions questiongen.Generator
	Articles  articlegen.Generator

	QuestionGrader *grading.Grader
	ArticleGrader  *grading.Grader

	Tagger *tagging.Tagger

	// Token protects /api/v1. Empty disables auth.
	Token string

	// QuestionMaxRetries and ArticleMaxRetries are the default retry
	// budgets when a request does not set max_retries.
	QuestionMaxRetries int
	ArticleMaxRetries  int
}

// NewHandler builds the full route tree. / and /health are open;
// everything under /api/v1 requires the bearer token.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}

		r.Route("/questions", func(r chi.Router) {
			r.Post("/generate", handleGenerateQuestion(deps))
			r.Post("/grade", handleGradeQuestion(deps))
			r.Post("/tag", handleTagQuestion(deps))
			r.Get("/", handleListQuestions(deps))
			r.Get("/{id}", handleGetQuestion(deps))
			r.Patch("/{id}/status", handleQuestionStatus(deps))
		})

		r.Route("/articles", func(r chi.Router) {
			r.Post("/generate", handleGenerateArticle(deps))
			r.Post("/grade", handleGradeArticle(deps))
			r.Post("/tag", handleTagArticle(deps))
			r.Get("/", handleListArticles(deps))
			r.Get("/{id}", handleGetArticle(deps))
			r.Patch("/{id}/status", handleArticleStatus(deps))
		})
	})

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"title":   apiTitle,
		"version": apiVersion,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
