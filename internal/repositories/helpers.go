package repositories

import (
	"context"
	"database/sql"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

func countQuery(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	if db == nil {
		return 0, domain.StoreUnavailableError{Op: "count"}
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, domain.StoreUnavailableError{Op: "count", Err: err}
	}
	return n, nil
}

func dimensionQuery(ctx context.Context, db *sql.DB, query string, args ...any) ([]DimensionCount, error) {
	if db == nil {
		return nil, domain.StoreUnavailableError{Op: "group count"}
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreUnavailableError{Op: "group count", Err: err}
	}
	defer rows.Close()

	out := []DimensionCount{}
	for rows.Next() {
		var d DimensionCount
		if err := rows.Scan(&d.Value, &d.Count); err != nil {
			return out, domain.StoreUnavailableError{Op: "group count", Err: err}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func noneAffected(res sql.Result, resource string) error {
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
