package infra

// pdf.go — audit report generation using go-pdf/fpdf.
// An A4 report with:
//   - Supplier name header, country, generation date
//   - Summary block (total records, pass rate %, average score)
//   - One line per compliance record
//
// The output file is saved to storagePath/{supplier}_compliance_report_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateAuditReportPDF writes the audit report for a supplier and returns
// the absolute path to the generated file.
func GenerateAuditReportPDF(supplier *model.Supplier, records []model.ComplianceRecord, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	generated := time.Now().Format("2006-01-02")
	fileName := fmt.Sprintf("%s_compliance_report_%s.pdf", sanitizeFileName(supplier.Name), generated)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Compliance Report: "+supplier.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Country: "+supplier.Country, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Generated: "+generated, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Summary ──────────────────────────────────────────────────────────────
	passRate, avgScore := reportSummary(records)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Records: %d", len(records)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Pass Rate: %s%%", passRate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Average Score: %s%%", avgScore), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Records ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Records:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for i, r := range records {
		result := "N/A"
		if r.Result != nil {
			result = decimal.NewFromFloat(*r.Result).String()
		}
		line := fmt.Sprintf("%d. %s | Score: %s | Status: %s | Date: %s",
			i+1, r.Metric, result, r.Status, r.DateRecorded.Format("2006-01-02"))
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// reportSummary computes the pass rate (% of records with status "pass") and
// the average numeric result, absent results counted as 0. Both 1 decimal.
func reportSummary(records []model.ComplianceRecord) (passRate, avgScore string) {
	if len(records) == 0 {
		return "0", "0"
	}

	passed := 0
	sum := decimal.Zero
	for _, r := range records {
		if r.Status == "pass" {
			passed++
		}
		if r.Result != nil {
			sum = sum.Add(decimal.NewFromFloat(*r.Result))
		}
	}

	total := decimal.NewFromInt(int64(len(records)))
	rate := decimal.NewFromInt(int64(passed)).Div(total).Mul(decimal.NewFromInt(100)).Round(1)
	avg := sum.Div(total).Round(1)
	return rate.String(), avg.String()
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
