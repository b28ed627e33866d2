package payroll

import (
	"github.com/shopspring/decimal"

	"paystub/internal/domain/timesheet"
)

// Wages converts categorized hours into categorized gross wages. Overtime
// categories pay rate x OvertimeMultiplier; Differential pays the flat
// DifferentialRate whatever the regular rate.
func Wages(hours timesheet.Breakdown, rate decimal.Decimal, policy Policy) timesheet.Breakdown {
	overtime := rate.Mul(policy.OvertimeMultiplier)
	return timesheet.Breakdown{
		Regular:      hours.Regular.Mul(rate),
		RegularOT:    hours.RegularOT.Mul(overtime),
		Holiday:      hours.Holiday.Mul(rate),
		HolidayOT:    hours.HolidayOT.Mul(overtime),
		Vacation:     hours.Vacation.Mul(rate),
		Sick:         hours.Sick.Mul(rate),
		Differential: hours.Differential.Mul(policy.DifferentialRate),
	}
}
