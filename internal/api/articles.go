package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schoolyard/edugen/internal/articlegen"
	"github.com/schoolyard/edugen/internal/grading"
	"github.com/schoolyard/edugen/internal/store"
	"github.com/schoolyard/edugen/internal/tagging"
	"github.com/schoolyard/edugen/internal/workflow"
)

type articleResponse struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Lesson       string       `json:"lesson"`
	Grade        int          `json:"grade"`
	Subject      string       `json:"subject"`
	Difficulty   string       `json:"difficulty"`
	Keywords     []string     `json:"keywords"`
	Tags         []string     `json:"tags"`
	QualityScore *float64     `json:"quality_score"`
	Status       store.Status `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func articleResponseFrom(a *store.Article) articleResponse {
	return articleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		Lesson:       a.Lesson,
		Grade:        a.Grade,
		Subject:      a.Subject,
		Difficulty:   a.Difficulty,
		Keywords:     a.Keywords,
		Tags:         a.Tags,
		QualityScore: a.QualityScore,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type generateArticleRequest struct {
	Topic      string   `json:"topic"`
	Lesson     string   `json:"lesson"`
	Grade      *int     `json:"grade"`
	Subject    string   `json:"subject"`
	Difficulty string   `json:"difficulty"`
	Keywords   []string `json:"keywords"`
	MaxRetries *int     `json:"max_retries"`

	// Free-form coverage guidance for the writer. The original client
	// sent additional_instructions; description is the shorter alias.
	Description            string `json:"description"`
	AdditionalInstructions string `json:"additional_instructions"`
}

func (r *generateArticleRequest) instructions() string {
	if r.Description != "" {
		return r.Description
	}
	return r.AdditionalInstructions
}

func handleGenerateArticle(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateArticleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		// topic and lesson are synonyms here; the original client sent
		// topic, the curriculum tooling sends lesson.
		topic := req.Topic
		if topic == "" {
			topic = req.Lesson
		}
		if strings.TrimSpace(topic) == "" {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "topic is required")
			return
		}
		if req.Subject == "" {
			req.Subject = "Language Arts"
		}
		if req.Difficulty == "" {
			req.Difficulty = "medium"
		}
		if !validDifficulty(req.Difficulty) {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "difficulty must be easy, medium, or hard")
			return
		}
		grade, ok := resolveGrade(w, req.Grade)
		if !ok {
			return
		}
		maxRetries, ok := resolveRetries(w, req.MaxRetries, deps.ArticleMaxRetries)
		if !ok {
			return
		}

		input := articlegen.GenerateInput{
			Topic:       topic,
			Description: req.instructions(),
			Grade:       grade,
			Subject:     req.Subject,
			Difficulty:  req.Difficulty,
			Keywords:    req.Keywords,
		}

		generate := func(ctx context.Context, prev *articlegen.Article, feedback string) (*articlegen.Article, error) {
			if prev == nil || feedback == "" {
				return deps.Articles.Generate(ctx, input)
			}
			return deps.Articles.Improve(ctx, input, prev, feedback)
		}
		check := func(ctx context.Context, a *articlegen.Article) (*grading.Result, error) {
			return deps.ArticleGrader.Grade(ctx, a.Content, grade)
		}

		cfg := workflow.Config{MaxRetries: maxRetries, Rubric: deps.ArticleGrader.Rubric()}
		out, err := workflow.Run(r.Context(), cfg, generate, check)
		if err != nil {
			domainError(w, err)
			return
		}

		a := out.Artifact
		status := store.StatusActive
		if out.State == workflow.StateExhausted {
			status = store.StatusNeedsReview
		}

		row := &store.Article{
			ID:           uuid.New().String(),
			Title:        a.Title,
			Content:      a.Content,
			Lesson:       topic,
			Grade:        a.Grade,
			Subject:      a.Subject,
			Difficulty:   a.Difficulty,
			Keywords:     req.Keywords,
			Tags:         a.KeyConcepts,
			QualityScore: &out.Grade.OverallScore,
			Status:       status,
		}
		if err := deps.Store.ArticleRepo().Save(r.Context(), row); err != nil {
			domainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":      row.ID,
			"article": articleResponseFrom(row),
			"quality": qualityFrom(out.Grade),
			"metadata": map[string]any{
				"topic":        topic,
				"subject":      a.Subject,
				"difficulty":   a.Difficulty,
				"grade":        a.Grade,
				"key_concepts": a.KeyConcepts,
				"attempts":     out.Attempts,
				"status":       status,
			},
		})
	}
}

func handleGradeArticle(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gradeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "content is required")
			return
		}
		grade, ok := resolveGrade(w, req.Grade)
		if !ok {
			return
		}

		res, err := deps.ArticleGrader.Grade(r.Context(), req.Content, grade)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gradeResponseFrom(res))
	}
}

func handleTagArticle(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		if !decodeBody(w, r, &req) {
			return
		}

		content := req.Content
		gradeHint := -1
		if req.Grade != nil {
			gradeHint = *req.Grade
		}
		if req.ID != "" {
			row, err := deps.Store.ArticleRepo().Get(r.Context(), req.ID)
			if err != nil {
				domainError(w, err)
				return
			}
			content = row.Content
			gradeHint = row.Grade
		}
		if strings.TrimSpace(content) == "" {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "one of content or id is required")
			return
		}

		tags, err := deps.Tagger.Tag(r.Context(), tagging.Input{
			Content:   content,
			Kind:      "article",
			GradeHint: gradeHint,
		})
		if err != nil {
			domainError(w, err)
			return
		}

		if req.ID != "" {
			err := deps.Store.ArticleRepo().UpdateTagging(r.Context(), req.ID,
				tags.Lesson, tags.Course, tags.Difficulty, tags.Grade, tags.Keywords)
			if err != nil {
				domainError(w, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, tags)
	}
}

func handleGetArticle(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := deps.Store.ArticleRepo().Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, articleResponseFrom(row))
	}
}

func handleListArticles(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, ok := parseListOpts(w, r)
		if !ok {
			return
		}
		rows, err := deps.Store.ArticleRepo().List(r.Context(), opts)
		if err != nil {
			domainError(w, err)
			return
		}
		items := make([]articleResponse, 0, len(rows))
		for _, row := range rows {
			items = append(items, articleResponseFrom(row))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"articles": items,
			"count":    len(items),
		})
	}
}

func handleArticleStatus(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if !decodeBody(w, r, &req) {
			return
		}
		status := store.Status(req.Status)
		if !store.ValidStatus(status) {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "unknown status %q", req.Status)
			return
		}
		id := chi.URLParam(r, "id")
		if err := deps.Store.ArticleRepo().UpdateStatus(r.Context(), id, status); err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": status})
	}
}
