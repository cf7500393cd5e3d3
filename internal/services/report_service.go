package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/KHNEATH/startwise-sub000/internal/repositories"
	"github.com/KHNEATH/startwise-sub000/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportService renders the admin jobs summary as a downloadable PDF.
type ReportService struct {
	Jobs      repositories.JobRepository
	RequestID string
	Now       func() time.Time
}

func (s ReportService) JobsReport(ctx context.Context) ([]byte, string, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	total, err := s.Jobs.CountAll(ctx)
	if err != nil {
		return nil, "", err
	}
	active, err := s.Jobs.CountByStatusValue(ctx, "active")
	if err != nil {
		return nil, "", err
	}
	byType, err := s.Jobs.CountByType(ctx)
	if err != nil {
		return nil, "", err
	}
	recent, err := s.Jobs.Recent(ctx, 10)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "reports", "jobs_report", fmt.Sprintf("total=%d active=%d", total, active))
	return buildJobsReportPDF(now, total, active, byType, recent)
}

func buildJobsReportPDF(now time.Time, total, active int, byType []repositories.DimensionCount, recent []repositories.JobRecord) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("StartWise Jobs Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "STARTWISE JOBS REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Generated : "+now.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total jobs  : %d", total))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Active jobs : %d", active))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Jobs by type")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	for _, d := range byType {
		pdf.Cell(0, 7, fmt.Sprintf("  %-14s %d", utils.Safe(d.Value, "-"), d.Count))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Recently posted")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, j := range recent {
		line := fmt.Sprintf("  #%d %s - %s (%s) [%s]",
			j.ID, utils.Safe(j.Title, "-"), utils.Safe(j.Company, "-"),
			utils.Safe(j.Location, "-"), utils.Safe(j.Status, "-"))
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("JOBS_REPORT_%s.pdf", now.Format("20060102"))
	return buf.Bytes(), filename, nil
}
