package repositories

import (
	"context"
	"database/sql"
	"time"

	intconfig "github.com/KHNEATH/startwise-sub000/internal/config"
	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

type ApplicationRecord struct {
	ID            int64     `json:"id"`
	JobID         int64     `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	UserID        int64     `json:"user_id"`
	ApplicantName string    `json:"applicant_name"`
	CoverLetter   string    `json:"cover_letter,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ApplicationRepository struct {
	DB *sql.DB
}

func (r ApplicationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const applicationJoin = "applications a JOIN jobs j ON j.id = a.job_id JOIN users u ON u.id = a.user_id"
const applicationColumns = "a.id, a.job_id, j.title, a.user_id, u.name, a.status, a.created_at"

func scanApplication(rows *sql.Rows) (ApplicationRecord, error) {
	var a ApplicationRecord
	err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.UserID, &a.ApplicantName, &a.Status, &a.CreatedAt)
	return a, err
}

// List pages over applications joined with jobs and users so the admin list
// can search by job title or applicant name. Status filters must target the
// aliased column (a.status).
func (r ApplicationRepository) List(ctx context.Context, p ListParams) (PageResult[ApplicationRecord], error) {
	q := ListQuery{
		Table:      applicationJoin,
		Columns:    applicationColumns,
		SearchCols: []string{"j.title", "u.name"},
		OrderBy:    "a.created_at DESC",
	}
	return QueryPage(ctx, r.db(), q, p, scanApplication)
}

func (r ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]ApplicationRecord, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM `+applicationJoin+`
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC`, userID)
	if err != nil {
		return nil, domain.StoreUnavailableError{Op: "list applications", Err: err}
	}
	defer rows.Close()

	out := []ApplicationRecord{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return out, domain.StoreUnavailableError{Op: "list applications", Err: err}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts a pending application; one application per (job, user).
func (r ApplicationRepository) Create(ctx context.Context, jobID, userID int64, coverLetter string) (int64, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = ? AND user_id = ?`, jobID, userID).Scan(&n)
	if err != nil {
		return 0, domain.StoreUnavailableError{Op: "check application", Err: err}
	}
	if n > 0 {
		return 0, domain.ConflictError{Resource: "application", Msg: "already applied to this job"}
	}

	res, err := r.db().ExecContext(ctx, `
		INSERT INTO applications (job_id, user_id, cover_letter, status, created_at, updated_at)
		VALUES (?, ?, ?, 'pending', NOW(), NOW())`, jobID, userID, coverLetter)
	if err != nil {
		return 0, domain.StoreUnavailableError{Op: "create application", Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE applications SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "update application status", Err: err}
	}
	return noneAffected(res, "application")
}

// DeleteOwn withdraws an application; the owner check is part of the WHERE so
// a stranger's id simply hits no rows.
func (r ApplicationRepository) DeleteOwn(ctx context.Context, id, userID int64) error {
	res, err := r.db().ExecContext(ctx,
		`DELETE FROM applications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return domain.StoreUnavailableError{Op: "delete application", Err: err}
	}
	return noneAffected(res, "application")
}

func (r ApplicationRepository) CountAll(ctx context.Context) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM applications`)
}

func (r ApplicationRepository) CountCreatedSince(ctx context.Context, t time.Time) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM applications WHERE created_at >= ?`, t)
}

func (r ApplicationRepository) CountByStatus(ctx context.Context) ([]DimensionCount, error) {
	return dimensionQuery(ctx, r.db(), `SELECT status, COUNT(*) FROM applications GROUP BY status ORDER BY status`)
}

func (r ApplicationRepository) Recent(ctx context.Context, limit int) ([]ApplicationRecord, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM `+applicationJoin+`
		ORDER BY a.created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, domain.StoreUnavailableError{Op: "recent applications", Err: err}
	}
	defer rows.Close()

	out := []ApplicationRecord{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return out, domain.StoreUnavailableError{Op: "recent applications", Err: err}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
