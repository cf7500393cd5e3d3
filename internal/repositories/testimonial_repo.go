package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "github.com/KHNEATH/startwise-sub000/internal/config"
	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

type TestimonialRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type TestimonialRepository struct {
	DB *sql.DB
}

func (r TestimonialRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const testimonialColumns = "id, user_id, name, COALESCE(role,''), content, rating, status, created_at"

func scanTestimonial(rows *sql.Rows) (TestimonialRecord, error) {
	var t TestimonialRecord
	err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Role, &t.Content, &t.Rating, &t.Status, &t.CreatedAt)
	return t, err
}

// List pages over testimonials for the admin moderation view.
func (r TestimonialRepository) List(ctx context.Context, p ListParams) (PageResult[TestimonialRecord], error) {
	q := ListQuery{
		Table:      "testimonials",
		Columns:    testimonialColumns,
		SearchCols: []string{"name", "content"},
	}
	return QueryPage(ctx, r.db(), q, p, scanTestimonial)
}

// ListApproved returns the public testimonials, newest first.
func (r TestimonialRepository) ListApproved(ctx context.Context, limit int) ([]TestimonialRecord, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+testimonialColumns+`
		FROM testimonials
		WHERE status = 'approved'
		ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, domain.StoreUnavailableError{Op: "list testimonials", Err: err}
	}
	defer rows.Close()

	out := []TestimonialRecord{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return out, domain.StoreUnavailableError{Op: "list testimonials", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a testimonial in pending state awaiting moderation.
func (r TestimonialRepository) Create(ctx context.Context, t TestimonialRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO testimonials (user_id, name, role, content, rating, status, created_at)
		VALUES (?, ?, ?, ?, ?, 'pending', NOW())`,
		t.UserID, strings.TrimSpace(t.Name), NullIfEmpty(strings.TrimSpace(t.Role)),
		strings.TrimSpace(t.Content), t.Rating)
	if err != nil {
		return 0, domain.StoreUnavailableError{Op: "create testimonial", Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r TestimonialRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE testimonials SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "update testimonial status", Err: err}
	}
	return noneAffected(res, "testimonial")
}

func (r TestimonialRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "delete testimonial", Err: err}
	}
	return noneAffected(res, "testimonial")
}
