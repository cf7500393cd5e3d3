package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/KHNEATH/startwise-sub000/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

type pagerRow struct {
	ID    int64
	Title string
}

func scanPagerRow(rows *sql.Rows) (pagerRow, error) {
	var r pagerRow
	err := rows.Scan(&r.ID, &r.Title)
	return r, err
}

var pagerQuery = ListQuery{
	Table:      "jobs",
	Columns:    "id, title",
	SearchCols: []string{"title", "company"},
}

func TestQueryPageCountAndRowsShareWhere(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	p := ListParams{
		Page:    1,
		Limit:   20,
		Search:  "tutor",
		Filters: []FieldFilter{{Column: "status", Value: "active"}},
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE \(title LIKE \? OR company LIKE \?\) AND status = \?`).
		WithArgs("%tutor%", "%tutor%", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

	mock.ExpectQuery(`SELECT id, title FROM jobs WHERE \(title LIKE \? OR company LIKE \?\) AND status = \? ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs("%tutor%", "%tutor%", "active", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(1, "Part-time English Tutor").
			AddRow(2, "Math Tutor"))

	res, err := QueryPage(context.Background(), db, pagerQuery, p, scanPagerRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 45 {
		t.Fatalf("total = %d, want 45", res.Total)
	}
	if res.TotalPages != 3 {
		t.Fatalf("totalPages = %d, want 3", res.TotalPages)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	if res.Rows[0].Title != "Part-time English Tutor" {
		t.Fatalf("unexpected first row: %+v", res.Rows[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryPageClampsPageAndLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(150))

	// limit 999 clamps to 100, page -3 clamps to 1 (offset 0)
	mock.ExpectQuery(`SELECT id, title FROM jobs ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "A"))

	res, err := QueryPage(context.Background(), db, pagerQuery, ListParams{Page: -3, Limit: 999}, scanPagerRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.Limit != 100 {
		t.Fatalf("page/limit = %d/%d, want 1/100", res.Page, res.Limit)
	}
	if res.TotalPages != 2 {
		t.Fatalf("totalPages = %d, want 2", res.TotalPages)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryPageBeyondLastPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

	mock.ExpectQuery(`SELECT id, title FROM jobs ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs(20, 180).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	res, err := QueryPage(context.Background(), db, pagerQuery, ListParams{Page: 10, Limit: 20}, scanPagerRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(res.Rows))
	}
	if res.Total != 45 || res.TotalPages != 3 {
		t.Fatalf("total/totalPages = %d/%d, want 45/3", res.Total, res.TotalPages)
	}
}

func TestQueryPageEmptyCollection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	res, err := QueryPage(context.Background(), db, pagerQuery, ListParams{}, scanPagerRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || res.TotalPages != 0 {
		t.Fatalf("total/totalPages = %d/%d, want 0/0", res.Total, res.TotalPages)
	}
	if len(res.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(res.Rows))
	}

	// the row query must not run at all when nothing matches
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuildListWhereSkipsBlankFilters(t *testing.T) {
	where, args := buildListWhere(pagerQuery, ListParams{
		Filters: []FieldFilter{
			{Column: "status", Value: "  "},
			{Column: "type", Value: "internship"},
		},
	}.normalized())
	if where != " WHERE type = ?" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 1 || args[0] != "internship" {
		t.Fatalf("args = %v", args)
	}
}

func TestQueryPageNilDBIsStoreUnavailable(t *testing.T) {
	_, err := QueryPage(context.Background(), nil, pagerQuery, ListParams{}, scanPagerRow)
	if !domain.IsStoreUnavailable(err) {
		t.Fatalf("expected StoreUnavailableError, got %v", err)
	}
}

func TestQueryPageContextTimeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WillDelayFor(50 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	if _, err := QueryPage(ctx, db, pagerQuery, ListParams{}, scanPagerRow); err == nil {
		t.Fatalf("expected timeout error")
	}
}
