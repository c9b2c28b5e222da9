package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// articleRepo implements ArticleRepo over database/sql.
type articleRepo struct {
	db *sql.DB
}

const articleColumns = `id, title, content, lesson, grade, subject, difficulty,
	keywords, tags, quality_score, status, created_at, updated_at`

func (r *articleRepo) Save(ctx context.Context, a *Article) error {
	keywords, err := encodeJSON(a.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	tags, err := encodeJSON(a.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Content, a.Lesson, a.Grade, a.Subject, a.Difficulty,
		keywords, tags, nullFloat(a.QualityScore), string(a.Status),
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	return nil
}

func (r *articleRepo) Get(ctx context.Context, id string) (*Article, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *articleRepo) List(ctx context.Context, opts ListOpts) ([]*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1=1`
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

	var results []*Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func (r *articleRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE articles SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *articleRepo) UpdateTagging(ctx context.Context, id string, lesson, subject, difficulty string, grade int, tags []string) error {
	encoded, err := encodeJSON(tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE articles SET lesson = ?, subject = ?, difficulty = ?, grade = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		lesson, subject, difficulty, grade, encoded,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func scanArticle(s scanner) (*Article, error) {
	var a Article
	var keywords, tags, createdAt, updatedAt, status string
	var score sql.NullFloat64
	err := s.Scan(
		&a.ID, &a.Title, &a.Content, &a.Lesson, &a.Grade, &a.Subject, &a.Difficulty,
		&keywords, &tags, &score, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(keywords, &a.Keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}
	if err := decodeJSON(tags, &a.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if score.Valid {
		a.QualityScore = &score.Float64
	}
	a.Status = Status(status)
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
