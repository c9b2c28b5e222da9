package api

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/schoolyard/edugen/internal/llm"
	"github.com/schoolyard/edugen/internal/store"
)

func TestGenerateQuestionFirstPass(t *testing.T) {
	mock := mockOK(validQuestionJSON, questionEval(0.95, 0.95))
	h, st := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson":     "main_idea",
		"difficulty": "easy",
		"grade":      2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if mock.CallCount() != 2 {
		t.Fatalf("llm calls = %d, want 2 (generate + grade)", mock.CallCount())
	}

	out := decodeResponse(t, w)
	quality := out["quality"].(map[string]any)
	if quality["passed"] != true {
		t.Errorf("quality.passed = %v, want true", quality["passed"])
	}
	metadata := out["metadata"].(map[string]any)
	if metadata["attempts"] != float64(1) {
		t.Errorf("metadata.attempts = %v, want 1", metadata["attempts"])
	}

	id, _ := out["id"].(string)
	if id == "" {
		t.Fatal("response has no id")
	}
	row, err := st.QuestionRepo().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("fetching persisted question: %v", err)
	}
	if row.Status != store.StatusActive {
		t.Errorf("persisted status = %q, want active", row.Status)
	}
	if row.CorrectAnswer != "B" {
		t.Errorf("persisted correct answer = %q, want B", row.CorrectAnswer)
	}
	if row.QualityScore == nil || *row.QualityScore < 0.9 {
		t.Errorf("persisted quality score = %v, want >= 0.9", row.QualityScore)
	}
}

func TestGenerateQuestionPassOnSecondAttempt(t *testing.T) {
	mock := mockOK(
		validQuestionJSON, questionEval(0.5, 0.95),
		validQuestionJSON, questionEval(0.95, 0.95),
	)
	h, st := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson":      "main_idea",
		"difficulty":  "medium",
		"max_retries": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if mock.CallCount() != 4 {
		t.Fatalf("llm calls = %d, want 4 (2 generations + 2 checks)", mock.CallCount())
	}

	out := decodeResponse(t, w)
	metadata := out["metadata"].(map[string]any)
	if metadata["attempts"] != float64(2) {
		t.Errorf("metadata.attempts = %v, want 2", metadata["attempts"])
	}

	rows, err := st.QuestionRepo().List(context.Background(), store.ListOpts{})
	if err != nil {
		t.Fatalf("listing questions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("persisted rows = %d, want exactly 1", len(rows))
	}
	if rows[0].Status != store.StatusActive {
		t.Errorf("status = %q, want active", rows[0].Status)
	}
}

func TestGenerateQuestionExhaustedNeedsReview(t *testing.T) {
	mock := mockOK(validQuestionJSON, questionEval(0.5, 0.95))
	h, st := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson":      "main_idea",
		"difficulty":  "hard",
		"max_retries": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if mock.CallCount() != 2 {
		t.Fatalf("llm calls = %d, want 2 (no retries with max_retries=0)", mock.CallCount())
	}

	out := decodeResponse(t, w)
	quality := out["quality"].(map[string]any)
	if quality["passed"] != false {
		t.Errorf("quality.passed = %v, want false", quality["passed"])
	}
	if quality["feedback"] == "" {
		t.Error("quality.feedback empty for failing question")
	}

	rows, err := st.QuestionRepo().List(context.Background(), store.ListOpts{})
	if err != nil {
		t.Fatalf("listing questions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("persisted rows = %d, want 1", len(rows))
	}
	if rows[0].Status != store.StatusNeedsReview {
		t.Errorf("status = %q, want needs_review", rows[0].Status)
	}
}

func TestGenerateQuestionAllUnparseable(t *testing.T) {
	mock := mockOK(`"not an object"`, `"still not an object"`)
	h, st := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson":      "main_idea",
		"max_retries": 1,
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body %s", w.Code, w.Body.String())
	}
	if mock.CallCount() != 2 {
		t.Fatalf("llm calls = %d, want 2 generation attempts", mock.CallCount())
	}

	rows, err := st.QuestionRepo().List(context.Background(), store.ListOpts{})
	if err != nil {
		t.Fatalf("listing questions: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("persisted rows = %d, want 0 when nothing parsed", len(rows))
	}
}

func TestGenerateQuestionAllStructurallyInvalid(t *testing.T) {
	// Parseable JSON that fails structural validation: no explanation for
	// wrong answer D.
	const incomplete = `{
		"stimuli": "Beavers are busy animals. They cut down trees with their strong teeth.",
		"prompt": "What do beavers use to build dams?",
		"answer_choices": {"A": "Rocks", "B": "Wood", "C": "Mud only", "D": "Leaves"},
		"correct_answer": "B",
		"wrong_answer_explanations": {
			"A": "The passage says beavers use wood, not rocks.",
			"C": "Mud alone is not mentioned in the passage."
		},
		"solution": ["Find the sentence about dams.", "The answer is B, wood."]
	}`
	mock := mockOK(incomplete, incomplete)
	h, st := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson":      "main_idea",
		"max_retries": 1,
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body %s", w.Code, w.Body.String())
	}
	out := decodeResponse(t, w)
	errObj, ok := out["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error object in %v", out)
	}
	if errObj["type"] != "upstream_error" {
		t.Errorf("error type = %v, want upstream_error", errObj["type"])
	}
	if mock.CallCount() != 2 {
		t.Fatalf("llm calls = %d, want 2 generation attempts", mock.CallCount())
	}

	rows, err := st.QuestionRepo().List(context.Background(), store.ListOpts{})
	if err != nil {
		t.Fatalf("listing questions: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("persisted rows = %d, want 0 when no draft validated", len(rows))
	}
}

func TestGenerateQuestionRetryBudgetCapped(t *testing.T) {
	contents := make([]string, 10)
	for i := range contents {
		contents[i] = `"garbage"`
	}
	mock := mockOK(contents...)
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson":      "main_idea",
		"max_retries": 99,
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if mock.CallCount() != 6 {
		t.Errorf("llm calls = %d, want 6 (cap of 5 retries + 1)", mock.CallCount())
	}
}

func TestGenerateQuestionProviderDown(t *testing.T) {
	mock := llm.NewMockProvider()
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson": "main_idea",
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if mock.CallCount() != 1 {
		t.Errorf("llm calls = %d, want 1 (transport failures do not consume retries)", mock.CallCount())
	}
}

func TestGenerateQuestionDedupsAgainstStored(t *testing.T) {
	mock := mockOK(validQuestionJSON, questionEval(0.95, 0.95))
	h, st := newTestHandler(t, mock)

	seed := &store.Question{
		ID:         "q-prior",
		Content:    "Beavers are busy animals. What do beavers eat?",
		Prompt:     "What do beavers eat?",
		Lesson:     "main_idea",
		Grade:      3,
		Difficulty: "medium",
		Status:     store.StatusActive,
	}
	if err := st.QuestionRepo().Save(context.Background(), seed); err != nil {
		t.Fatalf("seeding question: %v", err)
	}

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson": "main_idea",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Do not repeat") {
		t.Fatalf("generation prompt has no dedup section: %q", prompt)
	}
	if !strings.Contains(prompt, "What do beavers eat?") {
		t.Errorf("dedup section does not list the stored question: %q", prompt)
	}
}

func TestGenerateQuestionKindergarten(t *testing.T) {
	mock := mockOK(validQuestionJSON, questionEval(0.95, 0.95))
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", map[string]any{
		"lesson": "main_idea",
		"grade":  0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for grade 0, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(mock.Calls[0].System, "Kindergarten") {
		t.Errorf("system prompt does not address Kindergarten: %q", mock.Calls[0].System)
	}
}

func TestGenerateQuestionValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing lesson", map[string]any{"difficulty": "easy"}},
		{"blank lesson", map[string]any{"lesson": "   "}},
		{"bad difficulty", map[string]any{"lesson": "main_idea", "difficulty": "impossible"}},
		{"grade out of range", map[string]any{"lesson": "main_idea", "grade": 9}},
		{"negative grade", map[string]any{"lesson": "main_idea", "grade": -1}},
		{"negative retries", map[string]any{"lesson": "main_idea", "max_retries": -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			h, _ := newTestHandler(t, mock)

			w := doRequest(t, h, http.MethodPost, "/api/v1/questions/generate", tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", w.Code)
			}
			if mock.CallCount() != 0 {
				t.Errorf("llm calls = %d, want 0 for invalid input", mock.CallCount())
			}
		})
	}
}

func TestGradeQuestionEndpoint(t *testing.T) {
	mock := mockOK(questionEval(0.95, 0.95))
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/grade", map[string]any{
		"content": "What is the main idea of the passage? A) ... B) ...",
		"grade":   4,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	out := decodeResponse(t, w)
	if out["verdict"] != "pass" {
		t.Errorf("verdict = %v, want pass", out["verdict"])
	}
	if out["passed"] != true {
		t.Errorf("passed = %v, want true", out["passed"])
	}
	scores, ok := out["scores"].(map[string]any)
	if !ok || len(scores) != 4 {
		t.Errorf("scores = %v, want 4 criteria", out["scores"])
	}
}

func TestGradeQuestionBlankContent(t *testing.T) {
	mock := llm.NewMockProvider()
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/grade", map[string]any{
		"content": "   ",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if mock.CallCount() != 0 {
		t.Errorf("llm calls = %d, want 0", mock.CallCount())
	}
}

func TestTagQuestionByContent(t *testing.T) {
	mock := mockOK(validTagsJSON)
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/tag", map[string]any{
		"content": "Beavers are busy animals. What do beavers use to build dams?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	out := decodeResponse(t, w)
	if out["lesson"] != "main_idea" {
		t.Errorf("lesson = %v, want main_idea", out["lesson"])
	}
	if out["grade"] != float64(4) {
		t.Errorf("grade = %v, want 4", out["grade"])
	}
	if out["standard"] != "CCSS.ELA-LITERACY.RI.4.2" {
		t.Errorf("standard = %v", out["standard"])
	}
}

func TestTagQuestionByIDRoundTrip(t *testing.T) {
	mock := mockOK(validTagsJSON)
	h, st := newTestHandler(t, mock)

	seed := &store.Question{
		ID:         "q-1",
		Content:    "Beavers are busy animals. What do beavers use to build dams?",
		Lesson:     "unknown",
		Grade:      4,
		Difficulty: "medium",
		Status:     store.StatusDraft,
	}
	if err := st.QuestionRepo().Save(context.Background(), seed); err != nil {
		t.Fatalf("seeding question: %v", err)
	}

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/tag", map[string]any{"id": "q-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/questions/q-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch status = %d", w.Code)
	}
	out := decodeResponse(t, w)
	if out["lesson"] != "main_idea" {
		t.Errorf("stored lesson = %v, want main_idea", out["lesson"])
	}
	wantTags := []any{"beavers", "animals", "reading comprehension"}
	if !reflect.DeepEqual(out["tags"], wantTags) {
		t.Errorf("stored tags = %v, want %v", out["tags"], wantTags)
	}
}

func TestTagQuestionUnknownID(t *testing.T) {
	h, _ := newTestHandler(t, llm.NewMockProvider())

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/tag", map[string]any{"id": "missing"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestTagQuestionNoContentNoID(t *testing.T) {
	mock := llm.NewMockProvider()
	h, _ := newTestHandler(t, mock)

	w := doRequest(t, h, http.MethodPost, "/api/v1/questions/tag", map[string]any{})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if mock.CallCount() != 0 {
		t.Errorf("llm calls = %d, want 0", mock.CallCount())
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	h, _ := newTestHandler(t, llm.NewMockProvider())

	w := doRequest(t, h, http.MethodGet, "/api/v1/questions/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListQuestionsFilters(t *testing.T) {
	h, st := newTestHandler(t, llm.NewMockProvider())

	seed := []*store.Question{
		{ID: "q-1", Content: "c1", Lesson: "main_idea", Difficulty: "easy", Status: store.StatusActive},
		{ID: "q-2", Content: "c2", Lesson: "main_idea", Difficulty: "easy", Status: store.StatusNeedsReview},
		{ID: "q-3", Content: "c3", Lesson: "sequencing", Difficulty: "easy", Status: store.StatusActive},
	}
	for _, q := range seed {
		if err := st.QuestionRepo().Save(context.Background(), q); err != nil {
			t.Fatalf("seeding %s: %v", q.ID, err)
		}
	}

	w := doRequest(t, h, http.MethodGet, "/api/v1/questions?lesson=main_idea", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if out := decodeResponse(t, w); out["count"] != float64(2) {
		t.Errorf("lesson filter count = %v, want 2", out["count"])
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/questions?status=needs_review", nil)
	if out := decodeResponse(t, w); out["count"] != float64(1) {
		t.Errorf("status filter count = %v, want 1", out["count"])
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/questions?limit=1", nil)
	if out := decodeResponse(t, w); out["count"] != float64(1) {
		t.Errorf("limit count = %v, want 1", out["count"])
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/questions?status=bogus", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("bogus status filter: status = %d, want 422", w.Code)
	}
}

func TestQuestionStatusTransition(t *testing.T) {
	h, st := newTestHandler(t, llm.NewMockProvider())

	seed := &store.Question{ID: "q-1", Content: "c", Lesson: "main_idea", Difficulty: "easy", Status: store.StatusNeedsReview}
	if err := st.QuestionRepo().Save(context.Background(), seed); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	w := doRequest(t, h, http.MethodPatch, "/api/v1/questions/q-1/status", map[string]any{"status": "active"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	row, err := st.QuestionRepo().Get(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("fetching: %v", err)
	}
	if row.Status != store.StatusActive {
		t.Errorf("stored status = %q, want active", row.Status)
	}

	w = doRequest(t, h, http.MethodPatch, "/api/v1/questions/q-1/status", map[string]any{"status": "published"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid enum: status = %d, want 422", w.Code)
	}

	w = doRequest(t, h, http.MethodPatch, "/api/v1/questions/missing/status", map[string]any{"status": "archived"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", w.Code)
	}
}
