package payroll

import (
	"github.com/shopspring/decimal"

	"paystub/internal/domain/timesheet"
)

type Pay struct {
	Gross         decimal.Decimal `json:"gross"`
	AdjustedGross decimal.Decimal `json:"adjusted_gross"`
	Net           decimal.Decimal `json:"net"`
}

// Paystub is the result of one payroll run, identified by its week-ending date.
type Paystub struct {
	WeekEnd           string                     `json:"week_end" validate:"required,datetime=2006-01-02"`
	Hours             timesheet.Breakdown        `json:"hours"`
	Wages             timesheet.Breakdown        `json:"wages"`
	Pay               Pay                        `json:"pay"`
	PreTaxDeductions  map[string]decimal.Decimal `json:"pre_tax_deductions" validate:"required"`
	PostTaxDeductions map[string]decimal.Decimal `json:"post_tax_deductions" validate:"required"`
	Additions         map[string]decimal.Decimal `json:"additions" validate:"required"`
}

func sum(values map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func (p Paystub) TotalPreTax() decimal.Decimal    { return sum(p.PreTaxDeductions) }
func (p Paystub) TotalPostTax() decimal.Decimal   { return sum(p.PostTaxDeductions) }
func (p Paystub) TotalAdditions() decimal.Decimal { return sum(p.Additions) }
