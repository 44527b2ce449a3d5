package logos

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

func (r *Repo) Create(ctx context.Context, p models.LogoPackage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO logo_packages (id, user_id, name, original_svg, animated_svg, css_code, js_code, animation_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Name, p.OriginalSvg, p.AnimatedSvg, p.CSSCode, p.JSCode, p.Type)
	if err != nil {
		return fmt.Errorf("create logo package: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id, userID string) (*models.LogoPackage, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, original_svg, animated_svg, css_code, js_code, animation_type, created_at
		FROM logo_packages
		WHERE id = ? AND user_id = ?
	`, id, userID)

	var p models.LogoPackage
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.OriginalSvg, &p.AnimatedSvg,
		&p.CSSCode, &p.JSCode, &p.Type, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get logo package: %w", err)
	}
	return &p, nil
}

// List returns a page of the user's packages, newest first. The SVG
// bodies are omitted to keep list responses small.
func (r *Repo) List(ctx context.Context, userID string, limit, offset int) ([]models.LogoPackage, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM logo_packages WHERE user_id = ?
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count logo packages: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, animation_type, created_at
		FROM logo_packages
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list logo packages: %w", err)
	}
	defer rows.Close()

	out := make([]models.LogoPackage, 0, limit)
	for rows.Next() {
		var p models.LogoPackage
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan logo package row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM logo_packages
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete logo package: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
