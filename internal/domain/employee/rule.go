package employee

import "github.com/shopspring/decimal"

type RuleType string

const (
	RuleFixed      RuleType = "fixed"
	RulePerDay     RuleType = "per-day"
	RulePercentage RuleType = "percentage"
)

const (
	CategoryPreTax  = "pre-tax"
	CategoryPostTax = "post-tax"
)

// Rule is a named deduction or addition as stored on the employee record.
type Rule struct {
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name" validate:"required"`
	Category string           `json:"category" validate:"required"`
	Type     RuleType         `json:"type" validate:"required"`
	Amount   *decimal.Decimal `json:"amount,omitempty" validate:"required_if=Type fixed,required_if=Type per-day"`
	Rate     *decimal.Decimal `json:"rate,omitempty" validate:"required_if=Type percentage"`
}

// Calculation is the evaluation rule of a Rule. base is the amount a
// percentage applies to.
type Calculation interface {
	Resolve(base decimal.Decimal, daysWorked int) decimal.Decimal
}

type Fixed struct{ Amount decimal.Decimal }

type PerDay struct{ Amount decimal.Decimal }

type Percentage struct{ Rate decimal.Decimal }

// Unknown covers rules whose type is not recognised; they resolve like Fixed.
type Unknown struct{ Amount decimal.Decimal }

func (c Fixed) Resolve(decimal.Decimal, int) decimal.Decimal { return c.Amount }

func (c PerDay) Resolve(_ decimal.Decimal, daysWorked int) decimal.Decimal {
	return c.Amount.Mul(decimal.NewFromInt(int64(daysWorked)))
}

func (c Percentage) Resolve(base decimal.Decimal, _ int) decimal.Decimal {
	return base.Mul(c.Rate)
}

func (c Unknown) Resolve(decimal.Decimal, int) decimal.Decimal { return c.Amount }

func (r Rule) Calc() Calculation {
	switch r.Type {
	case RuleFixed:
		return Fixed{Amount: valueOrZero(r.Amount)}
	case RulePerDay:
		return PerDay{Amount: valueOrZero(r.Amount)}
	case RulePercentage:
		return Percentage{Rate: valueOrZero(r.Rate)}
	default:
		return Unknown{Amount: valueOrZero(r.Amount)}
	}
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
