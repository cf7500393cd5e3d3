package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	intconfig "github.com/KHNEATH/startwise-sub000/internal/config"
	"github.com/KHNEATH/startwise-sub000/internal/domain"
)

// ActivityRecord is one persisted audit entry. The log is append-only;
// entries are never updated or deleted by application code.
type ActivityRecord struct {
	ID         int64     `json:"id"`
	AdminID    *int64    `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   *int64    `json:"target_id"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

type ActivityRepository struct {
	DB *sql.DB
}

func (r ActivityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert appends one audit entry. Details are serialized to JSON text; a
// details map that fails to marshal is stored as an empty object rather than
// losing the entry.
func (r ActivityRepository) Insert(ctx context.Context, adminID *int64, action, targetType string, targetID *int64, details map[string]any, ip, userAgent string) error {
	db := r.db()
	if db == nil {
		return domain.StoreUnavailableError{Op: "insert activity"}
	}

	detailsJSON := "{}"
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO activity_logs (admin_id, action, target_type, target_id, details, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		adminID, action, targetType, targetID, detailsJSON,
		NullIfEmpty(ip), NullIfEmpty(userAgent))
	if err != nil {
		return domain.StoreUnavailableError{Op: "insert activity", Err: err}
	}
	return nil
}

const activityColumns = "id, admin_id, action, target_type, target_id, COALESCE(details,'{}'), COALESCE(ip_address,''), COALESCE(user_agent,''), created_at"

func scanActivity(rows *sql.Rows) (ActivityRecord, error) {
	var a ActivityRecord
	err := rows.Scan(&a.ID, &a.AdminID, &a.Action, &a.TargetType, &a.TargetID,
		&a.Details, &a.IPAddress, &a.UserAgent, &a.CreatedAt)
	return a, err
}

// List pages over the audit log, searchable by action or target type.
func (r ActivityRepository) List(ctx context.Context, p ListParams) (PageResult[ActivityRecord], error) {
	q := ListQuery{
		Table:      "activity_logs",
		Columns:    activityColumns,
		SearchCols: []string{"action", "target_type"},
	}
	return QueryPage(ctx, r.db(), q, p, scanActivity)
}
