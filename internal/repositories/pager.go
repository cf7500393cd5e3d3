package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// FieldFilter is an exact-match predicate on a whitelisted column. Handlers
// map query-string keys to columns; arbitrary caller input never reaches
// Column.
type FieldFilter struct {
	Column string
	Value  string
}

// ListParams carries pagination and filtering for list endpoints.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Filters []FieldFilter
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// PageResult is the envelope every list endpoint returns.
type PageResult[T any] struct {
	Rows       []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// ListQuery describes one pageable collection. Ordering is always newest
// first and is not configurable.
type ListQuery struct {
	Table      string // table name or join expression
	Columns    string // select list
	SearchCols []string
	OrderBy    string // defaults to "created_at DESC"
}

// buildListWhere produces the WHERE clause and bound args shared by the row
// query and the count query. Search terms are matched as %term% against every
// searchable column, OR-combined; equality filters are AND-combined. Values
// are always bound parameters, never concatenated into the SQL text.
func buildListWhere(q ListQuery, p ListParams) (string, []any) {
	where := []string{}
	args := []any{}

	if p.Search != "" && len(q.SearchCols) > 0 {
		like := "%" + p.Search + "%"
		ors := make([]string, len(q.SearchCols))
		for i, col := range q.SearchCols {
			ors[i] = col + " LIKE ?"
			args = append(args, like)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	for _, f := range p.Filters {
		if f.Column == "" || strings.TrimSpace(f.Value) == "" {
			continue
		}
		where = append(where, f.Column+" = ?")
		args = append(args, strings.TrimSpace(f.Value))
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// QueryPage runs the count query and the row query against the same WHERE
// clause and assembles a PageResult. A page past the end yields empty rows
// with the true total. Store failures wrap to StoreUnavailableError.
func QueryPage[T any](ctx context.Context, db *sql.DB, q ListQuery, p ListParams, scan func(*sql.Rows) (T, error)) (PageResult[T], error) {
	p = p.normalized()
	out := PageResult[T]{Rows: []T{}, Page: p.Page, Limit: p.Limit}

	if db == nil {
		return out, domain.StoreUnavailableError{Op: "query " + q.Table}
	}

	whereSQL, args := buildListWhere(q, p)

	var total int
	countSQL := "SELECT COUNT(*) FROM " + q.Table + whereSQL
	if err := db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return out, domain.StoreUnavailableError{Op: "count " + q.Table, Err: err}
	}

	out.Total = total
	out.TotalPages = (total + p.Limit - 1) / p.Limit
	if total == 0 {
		return out, nil
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	rowSQL := "SELECT " + q.Columns + " FROM " + q.Table + whereSQL +
		" ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	rowArgs := append(append([]any{}, args...), p.Limit, (p.Page-1)*p.Limit)

	rows, err := db.QueryContext(ctx, rowSQL, rowArgs...)
	if err != nil {
		return out, domain.StoreUnavailableError{Op: "list " + q.Table, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return out, domain.StoreUnavailableError{Op: "scan " + q.Table, Err: err}
		}
		out.Rows = append(out.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StoreUnavailableError{Op: "list " + q.Table, Err: err}
	}
	return out, nil
}
