package timesheet

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryRegular      Category = "Regular"
	CategoryRegularOT    Category = "Regular OT"
	CategoryHoliday      Category = "Holiday"
	CategoryHolidayOT    Category = "Holiday OT"
	CategoryVacation     Category = "Vacation"
	CategorySick         Category = "Sick"
	CategoryDifferential Category = "Differential"
)

var Categories = []Category{
	CategoryRegular,
	CategoryRegularOT,
	CategoryHoliday,
	CategoryHolidayOT,
	CategoryVacation,
	CategorySick,
	CategoryDifferential,
}

// Breakdown holds one decimal per category. It carries hours out of the
// classifier and currency amounts out of the wage calculator.
type Breakdown struct {
	Regular      decimal.Decimal `json:"Regular"`
	RegularOT    decimal.Decimal `json:"Regular OT"`
	Holiday      decimal.Decimal `json:"Holiday"`
	HolidayOT    decimal.Decimal `json:"Holiday OT"`
	Vacation     decimal.Decimal `json:"Vacation"`
	Sick         decimal.Decimal `json:"Sick"`
	Differential decimal.Decimal `json:"Differential"`
}

func (b Breakdown) Get(c Category) decimal.Decimal {
	switch c {
	case CategoryRegular:
		return b.Regular
	case CategoryRegularOT:
		return b.RegularOT
	case CategoryHoliday:
		return b.Holiday
	case CategoryHolidayOT:
		return b.HolidayOT
	case CategoryVacation:
		return b.Vacation
	case CategorySick:
		return b.Sick
	case CategoryDifferential:
		return b.Differential
	}
	return decimal.Zero
}

// Sum adds every category, Differential included.
func (b Breakdown) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, c := range Categories {
		total = total.Add(b.Get(c))
	}
	return total
}

// Worked is the time classified as regular, overtime or holiday.
func (b Breakdown) Worked() decimal.Decimal {
	return b.Regular.Add(b.RegularOT).Add(b.Holiday).Add(b.HolidayOT)
}
