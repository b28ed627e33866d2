package payroll

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"paystub/internal/domain/timesheet"
)

const registerSheet = "Register"

// RegisterRow is one paystub flattened for the payroll register.
type RegisterRow struct {
	WeekEnd       string `csv:"week_end"`
	Regular       string `csv:"regular_hours"`
	RegularOT     string `csv:"regular_ot_hours"`
	Holiday       string `csv:"holiday_hours"`
	HolidayOT     string `csv:"holiday_ot_hours"`
	Vacation      string `csv:"vacation_hours"`
	Sick          string `csv:"sick_hours"`
	Differential  string `csv:"differential_hours"`
	Gross         string `csv:"gross"`
	PreTax        string `csv:"pre_tax_deductions"`
	AdjustedGross string `csv:"adjusted_gross"`
	PostTax       string `csv:"post_tax_deductions"`
	Additions     string `csv:"additions"`
	Net           string `csv:"net"`
}

func registerRows(stubs []Paystub) []RegisterRow {
	rows := make([]RegisterRow, 0, len(stubs))
	for _, stub := range stubs {
		h := stub.Hours
		rows = append(rows, RegisterRow{
			WeekEnd:       stub.WeekEnd,
			Regular:       h.Regular.StringFixed(2),
			RegularOT:     h.RegularOT.StringFixed(2),
			Holiday:       h.Holiday.StringFixed(2),
			HolidayOT:     h.HolidayOT.StringFixed(2),
			Vacation:      h.Vacation.StringFixed(2),
			Sick:          h.Sick.StringFixed(2),
			Differential:  h.Differential.StringFixed(2),
			Gross:         stub.Pay.Gross.StringFixed(2),
			PreTax:        stub.TotalPreTax().StringFixed(2),
			AdjustedGross: stub.Pay.AdjustedGross.StringFixed(2),
			PostTax:       stub.TotalPostTax().StringFixed(2),
			Additions:     stub.TotalAdditions().StringFixed(2),
			Net:           stub.Pay.Net.StringFixed(2),
		})
	}
	return rows
}

// WriteRegisterCSV writes one row per paystub, in the given order.
func WriteRegisterCSV(w io.Writer, stubs []Paystub) error {
	return gocsv.Marshal(registerRows(stubs), w)
}

// WriteRegisterXLSX writes the register as a single-sheet workbook. Amounts
// are stored as numbers so the sheet can total them.
func WriteRegisterXLSX(w io.Writer, stubs []Paystub) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return err
	}
	header := []any{"Week End"}
	for _, c := range timesheet.Categories {
		header = append(header, string(c)+" Hours")
	}
	header = append(header, "Gross", "Pre-tax", "Adjusted Gross", "Post-tax", "Additions", "Net")
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return err
	}

	for i, stub := range stubs {
		row := []any{stub.WeekEnd}
		for _, c := range timesheet.Categories {
			row = append(row, stub.Hours.Get(c).InexactFloat64())
		}
		row = append(row,
			stub.Pay.Gross.Round(2).InexactFloat64(),
			stub.TotalPreTax().Round(2).InexactFloat64(),
			stub.Pay.AdjustedGross.Round(2).InexactFloat64(),
			stub.TotalPostTax().Round(2).InexactFloat64(),
			stub.TotalAdditions().Round(2).InexactFloat64(),
			stub.Pay.Net.Round(2).InexactFloat64(),
		)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return fmt.Errorf("write register row %s: %w", stub.WeekEnd, err)
		}
	}
	return f.Write(w)
}
