package employee

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"paystub/internal/domain/apperr"
	"paystub/internal/platform/validation"
)

// Merge applies a partial update over base. Lists are replaced wholesale; the
// union object is merged per sub-key.
func Merge(base Employee, u Update) Employee {
	out := base
	if u.FirstName != nil {
		out.FirstName = strings.TrimSpace(*u.FirstName)
	}
	if u.LastName != nil {
		out.LastName = strings.TrimSpace(*u.LastName)
	}
	if u.HireDate != nil {
		out.HireDate = strings.TrimSpace(*u.HireDate)
	}
	if u.FilingStatus != nil {
		out.FilingStatus = strings.ToUpper(strings.TrimSpace(*u.FilingStatus))
	}
	if u.FilingDependents != nil {
		out.FilingDependents = *u.FilingDependents
	}
	if u.PayRate != nil {
		out.PayRate = *u.PayRate
	}
	if u.Union != nil {
		if u.Union.Additions != nil {
			out.Union.Additions = cloneRules(*u.Union.Additions)
		}
		if u.Union.Deductions != nil {
			out.Union.Deductions = cloneRules(*u.Union.Deductions)
		}
	}
	if u.SpecialDeductions != nil {
		out.SpecialDeductions = cloneRules(*u.SpecialDeductions)
	}
	if u.PayrollDeductions != nil {
		out.PayrollDeductions = cloneRules(*u.PayrollDeductions)
	}
	return out
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// assignRuleIDs gives every rule without an id a fresh one so it can be removed later.
func assignRuleIDs(emp *Employee) {
	for _, set := range RuleSets {
		rules := cloneRules(emp.Rules(set))
		for i := range rules {
			if rules[i].ID == "" {
				rules[i].ID = uuid.NewString()
			}
		}
		emp.setRules(set, rules)
	}
}

// Validate checks a complete employee record.
func Validate(emp Employee) error {
	if err := validation.Struct(emp); err != nil {
		return err
	}
	if !emp.PayRate.IsPositive() {
		return apperr.Validation("pay_rate", "must be greater than 0")
	}
	for _, set := range RuleSets {
		for i, rule := range emp.Rules(set) {
			if rule.Amount != nil && rule.Amount.IsNegative() {
				return apperr.Validation(ruleField(set, i, "amount"), "must not be negative")
			}
			if rule.Rate != nil && rule.Rate.IsNegative() {
				return apperr.Validation(ruleField(set, i, "rate"), "must not be negative")
			}
		}
	}
	return nil
}

func ruleField(set RuleSet, index int, name string) string {
	return fmt.Sprintf("%s[%d].%s", set, index, name)
}
