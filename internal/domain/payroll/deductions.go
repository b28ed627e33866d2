package payroll

import (
	"github.com/shopspring/decimal"

	"paystub/internal/domain/employee"
)

// Line is one resolved rule amount together with the rule that produced it.
type Line struct {
	Amount decimal.Decimal
	Rule   employee.Rule
	Set    employee.RuleSet
}

// Deductions is the flat result of the deduction engine. A name appearing in
// more than one list keeps the amount of the list processed last.
type Deductions struct {
	Lines         map[string]Line
	PreTaxTotal   decimal.Decimal
	AdjustedGross decimal.Decimal
}

// Amounts returns the name -> amount view of the result.
func (d Deductions) Amounts() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(d.Lines))
	for name, line := range d.Lines {
		out[name] = line.Amount
	}
	return out
}

// ComputeDeductions resolves every rule on the employee record. Union
// additions are recorded only; union and special deductions also accumulate
// into the pre-tax total; payroll deductions take percentages of the adjusted
// gross left after the pre-tax total.
func ComputeDeductions(gross decimal.Decimal, emp employee.Employee, daysWorked int) Deductions {
	out := Deductions{Lines: make(map[string]Line)}

	record := func(set employee.RuleSet, base decimal.Decimal) decimal.Decimal {
		total := decimal.Zero
		for _, rule := range emp.Rules(set) {
			amount := rule.Calc().Resolve(base, daysWorked)
			out.Lines[rule.Name] = Line{Amount: amount, Rule: rule, Set: set}
			total = total.Add(amount)
		}
		return total
	}

	record(employee.SetUnionAdditions, gross)
	union := record(employee.SetUnionDeductions, gross)
	special := record(employee.SetSpecial, gross)
	out.PreTaxTotal = union.Add(special)
	out.AdjustedGross = gross.Sub(out.PreTaxTotal)
	record(employee.SetPayroll, out.AdjustedGross)

	return out
}
