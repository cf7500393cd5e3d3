package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "github.com/KHNEATH/startwise-sub000/internal/config"
	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

type JobRecord struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Salary      string    `json:"salary"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	PostedBy    int64     `json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobRepository struct {
	DB *sql.DB
}

func (r JobRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const jobColumns = "id, title, company, COALESCE(location,''), type, COALESCE(category,''), COALESCE(salary,''), status, posted_by, created_at"

func scanJob(rows *sql.Rows) (JobRecord, error) {
	var j JobRecord
	err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Category,
		&j.Salary, &j.Status, &j.PostedBy, &j.CreatedAt)
	return j, err
}

// List returns a page of jobs, searchable by title/company/location. Public
// callers pin a status=active filter; the admin list passes filters freely.
func (r JobRepository) List(ctx context.Context, p ListParams) (PageResult[JobRecord], error) {
	q := ListQuery{
		Table:      "jobs",
		Columns:    jobColumns,
		SearchCols: []string{"title", "company", "location"},
	}
	return QueryPage(ctx, r.db(), q, p, scanJob)
}

func (r JobRepository) GetByID(ctx context.Context, id int64) (JobRecord, error) {
	var j JobRecord
	err := r.db().QueryRowContext(ctx, `
		SELECT id, title, company, COALESCE(location,''), type, COALESCE(category,''),
		       COALESCE(salary,''), COALESCE(description,''), status, posted_by, created_at
		FROM jobs WHERE id = ?`, id).Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Category,
		&j.Salary, &j.Description, &j.Status, &j.PostedBy, &j.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return j, domain.NotFoundError{Resource: "job"}
	}
	if err != nil {
		return j, domain.StoreUnavailableError{Op: "get job", Err: err}
	}
	return j, nil
}

func (r JobRepository) Create(ctx context.Context, j JobRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO jobs (title, company, location, type, category, salary, description, status, posted_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'active', ?, NOW(), NOW())`,
		strings.TrimSpace(j.Title), strings.TrimSpace(j.Company), strings.TrimSpace(j.Location),
		j.Type, NullIfEmpty(j.Category), NullIfEmpty(j.Salary), j.Description, j.PostedBy)
	if err != nil {
		return 0, domain.StoreUnavailableError{Op: "create job", Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r JobRepository) Update(ctx context.Context, j JobRecord) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE jobs
		SET title = ?, company = ?, location = ?, type = ?, category = ?, salary = ?, description = ?, updated_at = NOW()
		WHERE id = ?`,
		strings.TrimSpace(j.Title), strings.TrimSpace(j.Company), strings.TrimSpace(j.Location),
		j.Type, NullIfEmpty(j.Category), NullIfEmpty(j.Salary), j.Description, j.ID)
	if err != nil {
		return domain.StoreUnavailableError{Op: "update job", Err: err}
	}
	return noneAffected(res, "job")
}

func (r JobRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE jobs SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "update job status", Err: err}
	}
	return noneAffected(res, "job")
}

func (r JobRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "delete job", Err: err}
	}
	return noneAffected(res, "job")
}

func (r JobRepository) CountAll(ctx context.Context) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM jobs`)
}

func (r JobRepository) CountByStatusValue(ctx context.Context, status string) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM jobs WHERE status = ?`, status)
}

func (r JobRepository) CountCreatedSince(ctx context.Context, t time.Time) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM jobs WHERE created_at >= ?`, t)
}

func (r JobRepository) CountByType(ctx context.Context) ([]DimensionCount, error) {
	return dimensionQuery(ctx, r.db(), `SELECT type, COUNT(*) FROM jobs GROUP BY type ORDER BY type`)
}

func (r JobRepository) Recent(ctx context.Context, limit int) ([]JobRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, domain.StoreUnavailableError{Op: "recent jobs", Err: err}
	}
	defer rows.Close()

	out := []JobRecord{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return out, domain.StoreUnavailableError{Op: "recent jobs", Err: err}
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
