package payroll

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"paystub/internal/domain/apperr"
	"paystub/internal/domain/employee"
	"paystub/internal/domain/timesheet"
)

// Sealer encrypts archived paystub files when a data key is configured.
type Sealer interface {
	Configured() bool
	Encrypt(plain []byte) ([]byte, error)
}

// RenderPDF lays out a paystub on a single A4 page.
func RenderPDF(stub Paystub, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Paystub")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Week ending: %s", stub.WeekEnd))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay rate: %s", emp.PayRate.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Hours", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Wages", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, c := range timesheet.Categories {
		pdf.CellFormat(60, 7, string(c), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, stub.Hours.Get(c).StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, stub.Wages.Get(c).StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	section := func(title string, lines map[string]decimal.Decimal) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(100, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		names := make([]string, 0, len(lines))
		for name := range lines {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pdf.CellFormat(60, 7, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, lines[name].StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}
	section("Additions", stub.Additions)
	section("Pre-tax deductions", stub.PreTaxDeductions)
	section("Post-tax deductions", stub.PostTaxDeductions)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", stub.Pay.Gross.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Adjusted gross: %s", stub.Pay.AdjustedGross.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", stub.Pay.Net.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the stored paystub of weekEnd and archives a copy under
// dir, encrypted when the sealer is configured. It returns the rendered PDF
// and the archive path.
func (s *Service) ExportPDF(ctx context.Context, weekEnd, dir string, sealer Sealer) ([]byte, string, error) {
	stub, err := s.Get(ctx, weekEnd)
	if err != nil {
		return nil, "", err
	}
	emp, err := s.store.GetEmployee(ctx)
	if err != nil {
		return nil, "", err
	}
	if emp == nil {
		return nil, "", apperr.NotFound("employee", "")
	}

	data, err := RenderPDF(stub, *emp)
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", err
	}
	filePath := filepath.Join(dir, "paystub_"+stub.WeekEnd+".pdf")
	archived := data
	if sealer != nil && sealer.Configured() {
		archived, err = sealer.Encrypt(data)
		if err != nil {
			return nil, "", err
		}
		filePath += ".enc"
	}
	if err := os.WriteFile(filePath, archived, 0o600); err != nil {
		return nil, "", err
	}
	return data, filePath, nil
}
