package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "github.com/KHNEATH/startwise-sub000/internal/config"
	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

// DimensionCount is one row of a GROUP BY aggregate (role, type, status...).
type DimensionCount struct {
	Value string
	Count int
}

type UserRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile adds the CV-builder fields to the base record.
type UserProfile struct {
	UserRecord
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

type UserCredentials struct {
	UserRecord
	PasswordHash string `json:"-"`
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = "id, name, COALESCE(username,''), email, COALESCE(phone,''), role, status, created_at"

func scanUser(rows *sql.Rows) (UserRecord, error) {
	var u UserRecord
	err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt)
	return u, err
}

// List returns a page of users, searchable by name/username/email.
func (r UserRepository) List(ctx context.Context, p ListParams) (PageResult[UserRecord], error) {
	q := ListQuery{
		Table:      "users",
		Columns:    userColumns,
		SearchCols: []string{"name", "username", "email"},
	}
	return QueryPage(ctx, r.db(), q, p, scanUser)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (UserProfile, error) {
	var u UserProfile
	err := r.db().QueryRowContext(ctx, `
		SELECT `+userColumns+`,
		       COALESCE(education,''), COALESCE(skills,''), COALESCE(experience,'')
		FROM users WHERE id = ?`, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt,
		&u.Education, &u.Skills, &u.Experience,
	)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, domain.StoreUnavailableError{Op: "get user", Err: err}
	}
	return u, nil
}

// FindCredentials looks a user up by email or username for login.
func (r UserRepository) FindCredentials(ctx context.Context, ident string) (UserCredentials, error) {
	var u UserCredentials
	err := r.db().QueryRowContext(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users WHERE email = ? OR username = ?`, ident, ident).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt,
		&u.PasswordHash,
	)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, domain.StoreUnavailableError{Op: "find credentials", Err: err}
	}
	return u, nil
}

func (r UserRepository) EmailOrUsernameTaken(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username).Scan(&n)
	if err != nil {
		return false, domain.StoreUnavailableError{Op: "check user", Err: err}
	}
	return n > 0, nil
}

func (r UserRepository) Create(ctx context.Context, name, username, email, phone, passwordHash, role string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'active', NOW(), NOW())`,
		name, username, email, phone, passwordHash, role)
	if err != nil {
		return 0, domain.StoreUnavailableError{Op: "create user", Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdateProfile writes the editable profile fields, including the CV-builder
// text columns.
func (r UserRepository) UpdateProfile(ctx context.Context, id int64, p UserProfile) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE users
		SET name = ?, phone = ?, education = ?, skills = ?, experience = ?, updated_at = NOW()
		WHERE id = ?`,
		strings.TrimSpace(p.Name), strings.TrimSpace(p.Phone),
		p.Education, p.Skills, p.Experience, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "update profile", Err: err}
	}
	return noneAffected(res, "user")
}

func (r UserRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "update user status", Err: err}
	}
	return noneAffected(res, "user")
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.StoreUnavailableError{Op: "delete user", Err: err}
	}
	return noneAffected(res, "user")
}

func (r UserRepository) CountAll(ctx context.Context) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM users`)
}

func (r UserRepository) CountCreatedSince(ctx context.Context, t time.Time) (int, error) {
	return countQuery(ctx, r.db(), `SELECT COUNT(*) FROM users WHERE created_at >= ?`, t)
}

func (r UserRepository) CountByRole(ctx context.Context) ([]DimensionCount, error) {
	return dimensionQuery(ctx, r.db(), `SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`)
}

func (r UserRepository) Recent(ctx context.Context, limit int) ([]UserRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, domain.StoreUnavailableError{Op: "recent users", Err: err}
	}
	defer rows.Close()

	out := []UserRecord{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, domain.StoreUnavailableError{Op: "recent users", Err: err}
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
