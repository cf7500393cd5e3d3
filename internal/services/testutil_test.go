package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type sqlmockDB struct {
	DB *sql.DB
}

func newSqlmock(t *testing.T) (*sqlmockDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return &sqlmockDB{DB: db}, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "username", "email", "phone", "role", "status", "created_at"})
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "company", "location", "type", "category", "salary", "status", "posted_by", "created_at"})
}

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "job_id", "title", "user_id", "name", "status", "created_at"})
}
