package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestJobsReportProducesPDF(t *testing.T) {
	db, mock := newSqlmock(t)
	defer db.DB.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE status = \?`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))
	mock.ExpectQuery(`SELECT type, COUNT\(\*\) FROM jobs GROUP BY type`).
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}).
			AddRow("full-time", 20).
			AddRow("part-time", 25))
	mock.ExpectQuery(`FROM jobs ORDER BY created_at DESC LIMIT \?`).
		WithArgs(10).
		WillReturnRows(jobRows().
			AddRow(7, "Tutor", "StartWise", "Phnom Penh", "part-time", "", "", "active", 1, time.Now()))

	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	svc := ReportService{
		Jobs: repositories.JobRepository{DB: db.DB},
		Now:  func() time.Time { return now },
	}

	pdf, filename, err := svc.JobsReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if filename != "JOBS_REPORT_20260314.pdf" {
		t.Fatalf("filename = %q", filename)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
