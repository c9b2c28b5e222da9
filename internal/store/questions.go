package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const defaultListLimit = 50

// questionRepo implements QuestionRepo over database/sql.
type questionRepo struct {
	db *sql.DB
}

const questionColumns = `id, content, lesson, grade, course, difficulty, interaction_type,
	stimuli, prompt, answer_choices, correct_answer, wrong_answer_explanations,
	solution, full_explanation, tags, quality_score, status, created_at, updated_at`

func (r *questionRepo) Save(ctx context.Context, q *Question) error {
	choices, err := encodeJSON(q.AnswerChoices)
	if err != nil {
		return fmt.Errorf("encoding answer choices: %w", err)
	}
	explanations, err := encodeJSON(q.WrongAnswerExplanations)
	if err != nil {
		return fmt.Errorf("encoding wrong answer explanations: %w", err)
	}
	tags, err := encodeJSON(q.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO questions (`+questionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Content, q.Lesson, q.Grade, q.Course, q.Difficulty, q.InteractionType,
		q.Stimuli, q.Prompt, choices, q.CorrectAnswer, explanations,
		q.Solution, q.FullExplanation, tags, nullFloat(q.QualityScore), string(q.Status),
		q.CreatedAt.Format(time.RFC3339), q.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving question: %w", err)
	}
	return nil
}

func (r *questionRepo) Get(ctx context.Context, id string) (*Question, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *questionRepo) List(ctx context.Context, opts ListOpts) ([]*Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE 1=1`
	var args []any
	if opts.Lesson != "" {
		query += " AND lesson = ?"
		args = append(args, opts.Lesson)
	}
	if opts.Status != "" {
		query += " AND status = ?"
		args = append(args, string(opts.Status))
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, q)
	}
	return results, rows.Err()
}

func (r *questionRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE questions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *questionRepo) UpdateTagging(ctx context.Context, id string, lesson, course, difficulty string, grade int, tags []string) error {
	encoded, err := encodeJSON(tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE questions SET lesson = ?, course = ?, difficulty = ?, grade = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		lesson, course, difficulty, grade, encoded,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (*Question, error) {
	var q Question
	var choices, explanations, tags, createdAt, updatedAt, status string
	var score sql.NullFloat64
	err := s.Scan(
		&q.ID, &q.Content, &q.Lesson, &q.Grade, &q.Course, &q.Difficulty, &q.InteractionType,
		&q.Stimuli, &q.Prompt, &choices, &q.CorrectAnswer, &explanations,
		&q.Solution, &q.FullExplanation, &tags, &score, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(choices, &q.AnswerChoices); err != nil {
		return nil, fmt.Errorf("decoding answer choices: %w", err)
	}
	if err := decodeJSON(explanations, &q.WrongAnswerExplanations); err != nil {
		return nil, fmt.Errorf("decoding wrong answer explanations: %w", err)
	}
	if err := decodeJSON(tags, &q.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if score.Valid {
		q.QualityScore = &score.Float64
	}
	q.Status = Status(status)
	if q.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if q.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &q, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(s string, v any) error {
	if s == "" || s == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
