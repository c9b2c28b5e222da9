package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schoolyard/edugen/internal/grading"
	"github.com/schoolyard/edugen/internal/questiongen"
	"github.com/schoolyard/edugen/internal/store"
	"github.com/schoolyard/edugen/internal/tagging"
	"github.com/schoolyard/edugen/internal/workflow"
)

const maxBodySize = 1 << 20 // 1MB

const defaultGrade = 3

// qualityInfo reports the judge's assessment of generated content.
type qualityInfo struct {
	Passed         bool               `json:"passed"`
	OverallScore   float64            `json:"overall_score"`
	Scores         map[string]float64 `json:"scores"`
	FailedCriteria []string           `json:"failed_criteria,omitempty"`
	Feedback       string             `json:"feedback,omitempty"`
}

func qualityFrom(res *grading.Result) qualityInfo {
	return qualityInfo{
		Passed:         res.Passed(),
		OverallScore:   res.OverallScore,
		Scores:         res.Scores,
		FailedCriteria: res.FailedCriteria(),
		Feedback:       res.FailureReason,
	}
}

// gradeResponse is the payload for the standalone grade endpoints.
type gradeResponse struct {
	Verdict        grading.Verdict    `json:"verdict"`
	Passed         bool               `json:"passed"`
	OverallScore   float64            `json:"overall_score"`
	Scores         map[string]float64 `json:"scores"`
	FailedCriteria []string           `json:"failed_criteria"`
	CriticalIssues []string           `json:"critical_issues"`
	Confidence     float64            `json:"confidence"`
	Feedback       map[string]string  `json:"feedback"`
	FailureReason  string             `json:"failure_reason,omitempty"`
}

func gradeResponseFrom(res *grading.Result) gradeResponse {
	return gradeResponse{
		Verdict:        res.Verdict,
		Passed:         res.Passed(),
		OverallScore:   res.OverallScore,
		Scores:         res.Scores,
		FailedCriteria: res.FailedCriteria(),
		CriticalIssues: res.CriticalIssues,
		Confidence:     res.Confidence,
		Feedback:       res.Feedback,
		FailureReason:  res.FailureReason,
	}
}

type questionResponse struct {
	ID                      string            `json:"id"`
	Content                 string            `json:"content"`
	Lesson                  string            `json:"lesson"`
	Grade                   int               `json:"grade"`
	Course                  string            `json:"course,omitempty"`
	Difficulty              string            `json:"difficulty"`
	InteractionType         string            `json:"interaction_type"`
	Stimuli                 string            `json:"stimuli"`
	Prompt                  string            `json:"prompt"`
	AnswerChoices           map[string]string `json:"answer_choices"`
	CorrectAnswer           string            `json:"correct_answer"`
	WrongAnswerExplanations map[string]string `json:"wrong_answer_explanations"`
	Solution                string            `json:"solution"`
	FullExplanation         string            `json:"full_explanation,omitempty"`
	Tags                    []string          `json:"tags"`
	QualityScore            *float64          `json:"quality_score"`
	Status                  store.Status      `json:"status"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
}

func questionResponseFrom(q *store.Question) questionResponse {
	return questionResponse{
		ID:                      q.ID,
		Content:                 q.Content,
		Lesson:                  q.Lesson,
		Grade:                   q.Grade,
		Course:                  q.Course,
		Difficulty:              q.Difficulty,
		InteractionType:         q.InteractionType,
		Stimuli:                 q.Stimuli,
		Prompt:                  q.Prompt,
		AnswerChoices:           q.AnswerChoices,
		CorrectAnswer:           q.CorrectAnswer,
		WrongAnswerExplanations: q.WrongAnswerExplanations,
		Solution:                q.Solution,
		FullExplanation:         q.FullExplanation,
		Tags:                    q.Tags,
		QualityScore:            q.QualityScore,
		Status:                  q.Status,
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.UpdatedAt,
	}
}

type generateQuestionRequest struct {
	Lesson            string `json:"lesson"`
	Difficulty        string `json:"difficulty"`
	Grade             *int   `json:"grade"`
	Course            string `json:"course"`
	ExampleQuestion   string `json:"example_question"`
	LessonDescription string `json:"lesson_description"`
	MaxRetries        *int   `json:"max_retries"`
}

func validDifficulty(d string) bool {
	switch d {
	case "easy", "medium", "hard":
		return true
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

// resolveGrade defaults an omitted grade and range-checks a given one.
// K is grade 0.
func resolveGrade(w http.ResponseWriter, grade *int) (int, bool) {
	if grade == nil {
		return defaultGrade, true
	}
	if *grade < 0 || *grade > 8 {
		httpError(w, http.StatusUnprocessableEntity, "validation_error", "grade must be between 0 (K) and 8")
		return 0, false
	}
	return *grade, true
}

// maxRetryCap bounds per-request retry budgets so a single request
// cannot burn an unbounded number of LLM calls.
const maxRetryCap = 5

func resolveRetries(w http.ResponseWriter, retries *int, def int) (int, bool) {
	if retries == nil {
		return def, true
	}
	if *retries < 0 {
		httpError(w, http.StatusUnprocessableEntity, "validation_error", "max_retries must be >= 0")
		return 0, false
	}
	if *retries > maxRetryCap {
		return maxRetryCap, true
	}
	return *retries, true
}

// maxPriorPrompts caps how many stored questions feed the dedup section
// of the generation prompt.
const maxPriorPrompts = 8

// priorPrompts returns the prompts of the most recent questions for the
// lesson, oldest first, so new generations steer away from them. A lookup
// failure degrades to no dedup instead of failing the request.
func priorPrompts(ctx context.Context, st *store.Store, lesson string) []string {
	rows, err := st.QuestionRepo().List(ctx, store.ListOpts{Lesson: lesson, Limit: maxPriorPrompts})
	if err != nil {
		return nil
	}
	prompts := make([]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if p := rows[i].Prompt; p != "" {
			prompts = append(prompts, p)
		}
	}
	return prompts
}

func handleGenerateQuestion(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateQuestionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if strings.TrimSpace(req.Lesson) == "" {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "lesson is required")
			return
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
		maxRetries, ok := resolveRetries(w, req.MaxRetries, deps.QuestionMaxRetries)
		if !ok {
			return
		}

		input := questiongen.GenerateInput{
			Lesson:            req.Lesson,
			LessonDescription: req.LessonDescription,
			Difficulty:        req.Difficulty,
			Grade:             grade,
			Subject:           req.Course,
			ExampleQuestion:   req.ExampleQuestion,
			PriorQuestions:    priorPrompts(r.Context(), deps.Store, req.Lesson),
		}

		generate := func(ctx context.Context, prev *questiongen.Question, feedback string) (*questiongen.Question, error) {
			if prev == nil || feedback == "" {
				return deps.Questions.Generate(ctx, input)
			}
			return deps.Questions.Improve(ctx, input, prev, feedback)
		}
		check := func(ctx context.Context, q *questiongen.Question) (*grading.Result, error) {
			return deps.QuestionGrader.Grade(ctx, questiongen.Render(q), grade)
		}

		cfg := workflow.Config{MaxRetries: maxRetries, Rubric: deps.QuestionGrader.Rubric()}
		out, err := workflow.Run(r.Context(), cfg, generate, check)
		if err != nil {
			domainError(w, err)
			return
		}

		q := out.Artifact
		status := store.StatusActive
		if out.State == workflow.StateExhausted {
			status = store.StatusNeedsReview
		}

		row := &store.Question{
			ID:                      uuid.New().String(),
			Content:                 questiongen.Render(q),
			Lesson:                  q.Lesson,
			Grade:                   q.Grade,
			Course:                  req.Course,
			Difficulty:              q.Difficulty,
			InteractionType:         "MCQ",
			Stimuli:                 q.Stimuli,
			Prompt:                  q.Prompt,
			AnswerChoices:           q.Choices,
			CorrectAnswer:           q.CorrectAnswer,
			WrongAnswerExplanations: q.WrongAnswerExplanations,
			Solution:                strings.Join(q.Solution, "\n"),
			FullExplanation:         strings.Join(q.Solution, " "),
			QualityScore:            &out.Grade.OverallScore,
			Status:                  status,
		}
		if err := deps.Store.QuestionRepo().Save(r.Context(), row); err != nil {
			domainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":       row.ID,
			"content":  row.Content,
			"question": questionResponseFrom(row),
			"quality":  qualityFrom(out.Grade),
			"metadata": map[string]any{
				"lesson":     q.Lesson,
				"difficulty": q.Difficulty,
				"grade":      q.Grade,
				"attempts":   out.Attempts,
				"status":     status,
			},
		})
	}
}

type gradeRequest struct {
	Content  string         `json:"content"`
	Grade    *int           `json:"grade"`
	Metadata map[string]any `json:"metadata"`
}

func handleGradeQuestion(deps Deps) http.HandlerFunc {
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

		res, err := deps.QuestionGrader.Grade(r.Context(), req.Content, grade)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gradeResponseFrom(res))
	}
}

type tagRequest struct {
	Content  string         `json:"content"`
	ID       string         `json:"id"`
	Grade    *int           `json:"grade"`
	Metadata map[string]any `json:"metadata"`
}

func handleTagQuestion(deps Deps) http.HandlerFunc {
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
			row, err := deps.Store.QuestionRepo().Get(r.Context(), req.ID)
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
			Kind:      "question",
			GradeHint: gradeHint,
		})
		if err != nil {
			domainError(w, err)
			return
		}

		if req.ID != "" {
			err := deps.Store.QuestionRepo().UpdateTagging(r.Context(), req.ID,
				tags.Lesson, tags.Course, tags.Difficulty, tags.Grade, tags.Keywords)
			if err != nil {
				domainError(w, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, tags)
	}
}

func handleGetQuestion(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := deps.Store.QuestionRepo().Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, questionResponseFrom(row))
	}
}

// parseListOpts reads the shared lesson/status/limit query filters.
func parseListOpts(w http.ResponseWriter, r *http.Request) (store.ListOpts, bool) {
	opts := store.ListOpts{Lesson: r.URL.Query().Get("lesson")}

	if s := r.URL.Query().Get("status"); s != "" {
		if !store.ValidStatus(store.Status(s)) {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "unknown status %q", s)
			return opts, false
		}
		opts.Status = store.Status(s)
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "limit must be a positive integer")
			return opts, false
		}
		opts.Limit = n
	}
	return opts, true
}

func handleListQuestions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, ok := parseListOpts(w, r)
		if !ok {
			return
		}
		rows, err := deps.Store.QuestionRepo().List(r.Context(), opts)
		if err != nil {
			domainError(w, err)
			return
		}
		items := make([]questionResponse, 0, len(rows))
		for _, row := range rows {
			items = append(items, questionResponseFrom(row))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": items,
			"count":     len(items),
		})
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func handleQuestionStatus(deps Deps) http.HandlerFunc {
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
		if err := deps.Store.QuestionRepo().UpdateStatus(r.Context(), id, status); err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": status})
	}
}
