package employee

import "github.com/shopspring/decimal"

// Employee is the single employee record of an installation.
type Employee struct {
	FirstName         string          `json:"first_name" validate:"required"`
	LastName          string          `json:"last_name" validate:"required"`
	HireDate          string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
	FilingStatus      string          `json:"filing_status" validate:"required,oneof=S M"`
	FilingDependents  int             `json:"filing_dependents" validate:"gte=0"`
	PayRate           decimal.Decimal `json:"pay_rate"`
	Union             Union           `json:"union"`
	SpecialDeductions []Rule          `json:"special_deductions" validate:"dive"`
	PayrollDeductions []Rule          `json:"payroll_deductions" validate:"dive"`
}

type Union struct {
	Additions  []Rule `json:"additions" validate:"dive"`
	Deductions []Rule `json:"deductions" validate:"dive"`
}

// Update is a partial employee record. Nil fields keep their stored value;
// union is merged per sub-key.
type Update struct {
	FirstName         *string          `json:"first_name,omitempty"`
	LastName          *string          `json:"last_name,omitempty"`
	HireDate          *string          `json:"hire_date,omitempty"`
	FilingStatus      *string          `json:"filing_status,omitempty"`
	FilingDependents  *int             `json:"filing_dependents,omitempty"`
	PayRate           *decimal.Decimal `json:"pay_rate,omitempty"`
	Union             *UnionUpdate     `json:"union,omitempty"`
	SpecialDeductions *[]Rule          `json:"special_deductions,omitempty"`
	PayrollDeductions *[]Rule          `json:"payroll_deductions,omitempty"`
}

type UnionUpdate struct {
	Additions  *[]Rule `json:"additions,omitempty"`
	Deductions *[]Rule `json:"deductions,omitempty"`
}

// RuleSet names one of the four rule lists on the employee record.
type RuleSet string

const (
	SetUnionAdditions  RuleSet = "union-additions"
	SetUnionDeductions RuleSet = "union-deductions"
	SetSpecial         RuleSet = "special"
	SetPayroll         RuleSet = "payroll"
)

// RuleSets is the order in which the deduction engine processes the lists.
var RuleSets = []RuleSet{SetUnionAdditions, SetUnionDeductions, SetSpecial, SetPayroll}

func ParseRuleSet(raw string) (RuleSet, bool) {
	for _, set := range RuleSets {
		if string(set) == raw {
			return set, true
		}
	}
	return "", false
}

// Rules returns the list stored under set.
func (e *Employee) Rules(set RuleSet) []Rule {
	switch set {
	case SetUnionAdditions:
		return e.Union.Additions
	case SetUnionDeductions:
		return e.Union.Deductions
	case SetSpecial:
		return e.SpecialDeductions
	case SetPayroll:
		return e.PayrollDeductions
	}
	return nil
}

func (e *Employee) setRules(set RuleSet, rules []Rule) {
	switch set {
	case SetUnionAdditions:
		e.Union.Additions = rules
	case SetUnionDeductions:
		e.Union.Deductions = rules
	case SetSpecial:
		e.SpecialDeductions = rules
	case SetPayroll:
		e.PayrollDeductions = rules
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Default is the record shown before anything has been saved.
func Default() Employee {
	return Employee{
		FilingDependents: 0,
		Union: Union{
			Additions: []Rule{
				{Name: "Union Pension", Category: CategoryPreTax, Type: RulePercentage, Rate: dec("0.05"), Amount: dec("0")},
				{Name: "Union Vacation", Category: CategoryPreTax, Type: RulePercentage, Rate: dec("0.04"), Amount: dec("0")},
			},
			Deductions: []Rule{
				{Name: "Union Dues", Category: CategoryPreTax, Type: RulePercentage, Rate: dec("0.01779"), Amount: dec("0")},
				{Name: "Union Health Insurance", Category: CategoryPreTax, Type: RuleFixed, Amount: dec("25.00")},
			},
		},
		SpecialDeductions: []Rule{
			{Name: "401(k) Contribution", Category: CategoryPreTax, Type: RulePercentage, Rate: dec("0.06"), Amount: dec("0")},
			{Name: "Health Savings Account", Category: CategoryPreTax, Type: RuleFixed, Amount: dec("50.00")},
		},
		PayrollDeductions: []Rule{
			{Name: "Federal Tax", Category: CategoryPostTax, Type: RulePercentage, Rate: dec("0.22"), Amount: dec("0")},
			{Name: "State Tax", Category: CategoryPostTax, Type: RulePercentage, Rate: dec("0.05"), Amount: dec("0")},
			{Name: "Social Security", Category: CategoryPostTax, Type: RulePercentage, Rate: dec("0.062"), Amount: dec("0")},
			{Name: "Medicare", Category: CategoryPostTax, Type: RulePercentage, Rate: dec("0.0145"), Amount: dec("0")},
		},
	}
}
