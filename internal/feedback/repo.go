package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"logoforge/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, userID string, rating int, comment, contextLabel string) (*models.Feedback, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO feedback (user_id, rating, comment, context)
		VALUES (?, ?, ?, ?)
	`, userID, rating, comment, contextLabel)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, rating, comment, context, at
		FROM feedback
		WHERE id = ?
	`, id)

	var f models.Feedback
	if err := row.Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.Context, &f.At); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan feedback: %w", err)
	}
	return &f, nil
}

func (r *Repo) List(ctx context.Context, limit, offset int) ([]models.Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, rating, comment, context, at
		FROM feedback
		ORDER BY at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := make([]models.Feedback, 0, limit)
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Rating, &f.Comment, &f.Context, &f.At); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
