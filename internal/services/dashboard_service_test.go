package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KHNEATH/startwise-sub000/internal/repositories"
	"github.com/KHNEATH/startwise-sub000/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

func dashboardServiceWith(db *sqlmockDB, now time.Time) DashboardService {
	return DashboardService{
		Users:        repositories.UserRepository{DB: db.DB},
		Jobs:         repositories.JobRepository{DB: db.DB},
		Applications: repositories.ApplicationRepository{DB: db.DB},
		Now:          func() time.Time { return now },
	}
}

func TestDashboardSummaryAssemblesAllSections(t *testing.T) {
	db, mock := newSqlmock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	today := utils.StartOfDay(now)
	weekAgo := utils.StartOfWeek(now)

	// users
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE created_at >= \?`).
		WithArgs(today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE created_at >= \?`).
		WithArgs(weekAgo).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT role, COUNT\(\*\) FROM users GROUP BY role`).
		WillReturnRows(sqlmock.NewRows([]string{"role", "count"}).
			AddRow("admin", 3).
			AddRow("student", 7))
	mock.ExpectQuery(`FROM users ORDER BY created_at DESC LIMIT \?`).
		WithArgs(5).
		WillReturnRows(userRows().AddRow(9, "Sokha", "sokha", "sokha@example.com", "", "student", "active", now))

	// jobs
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE status = \?`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE created_at >= \?`).
		WithArgs(today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT type, COUNT\(\*\) FROM jobs GROUP BY type`).
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}).
			AddRow("full-time", 20).
			AddRow("internship", 25))
	mock.ExpectQuery(`FROM jobs ORDER BY created_at DESC LIMIT \?`).
		WithArgs(5).
		WillReturnRows(jobRows().AddRow(7, "Tutor", "StartWise", "Phnom Penh", "part-time", "", "", "active", 1, now))

	// applications
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications WHERE created_at >= \?`).
		WithArgs(today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM applications GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("accepted", 40).
			AddRow("pending", 80))
	mock.ExpectQuery(`FROM applications a JOIN jobs j ON j\.id = a\.job_id JOIN users u ON u\.id = a\.user_id ORDER BY a\.created_at DESC LIMIT \?`).
		WithArgs(5).
		WillReturnRows(applicationRows().AddRow(3, 7, "Tutor", 9, "Sokha", "pending", now))

	summary, err := dashboardServiceWith(db, now).Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Users.Total != 10 || summary.Users.NewToday != 2 || summary.Users.NewThisWeek != 4 {
		t.Fatalf("user counters wrong: %+v", summary.Users)
	}
	roleSum := 0
	seen := map[string]bool{}
	for _, rc := range summary.Users.ByRole {
		if seen[rc.Role] {
			t.Fatalf("duplicate role dimension %q", rc.Role)
		}
		seen[rc.Role] = true
		roleSum += rc.Count
	}
	if roleSum != summary.Users.Total {
		t.Fatalf("byRole sums to %d, total is %d", roleSum, summary.Users.Total)
	}

	if summary.Jobs.Total != 45 || summary.Jobs.Active != 30 || summary.Jobs.PostedToday != 1 {
		t.Fatalf("job counters wrong: %+v", summary.Jobs)
	}
	typeSum := 0
	for _, tc := range summary.Jobs.ByType {
		typeSum += tc.Count
	}
	if typeSum != summary.Jobs.Total {
		t.Fatalf("byType sums to %d, total is %d", typeSum, summary.Jobs.Total)
	}

	if summary.Applications.Total != 120 || summary.Applications.Today != 6 {
		t.Fatalf("application counters wrong: %+v", summary.Applications)
	}
	if len(summary.Applications.Recent) != 1 || summary.Applications.Recent[0].JobTitle != "Tutor" {
		t.Fatalf("recent applications wrong: %+v", summary.Applications.Recent)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDashboardSummaryFailsWhole(t *testing.T) {
	db, mock := newSqlmock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	// every query fails; one failure is enough to fail the aggregation
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users$`).
		WillReturnError(fmt.Errorf("connection refused"))

	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	if _, err := dashboardServiceWith(db, now).Summary(context.Background()); err == nil {
		t.Fatalf("expected aggregation to fail when a sub-query fails")
	}
}
