package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestActivityLoggerPersistsEveryEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	const n = 10
	for i := 0; i < n; i++ {
		mock.ExpectExec("INSERT INTO activity_logs").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	logger := NewActivityLogger(repositories.ActivityRepository{DB: db}, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := int64(1)
			logger.Record(ActivityEntry{
				ActorID:    &actor,
				Action:     "update_user_status",
				TargetType: "user",
				Details:    map[string]any{"status": "suspended", "seq": i},
			})
		}(i)
	}
	wg.Wait()
	logger.Close()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivityLoggerSwallowsStoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO activity_logs").
		WillReturnError(fmt.Errorf("connection refused"))

	logger := NewActivityLogger(repositories.ActivityRepository{DB: db}, 4)

	// Record must return normally and Close must not surface the failure.
	logger.Record(ActivityEntry{Action: "delete_job", TargetType: "job"})
	logger.Close()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivityLoggerCloseIsIdempotent(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	logger := NewActivityLogger(repositories.ActivityRepository{DB: db}, 1)
	logger.Close()
	logger.Close()
}
