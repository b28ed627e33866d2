package payroll

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"paystub/internal/domain/employee"
	"paystub/internal/domain/timesheet"
	"paystub/internal/platform/validation"
)

// Assemble runs the whole pipeline for one timesheet without touching storage.
func Assemble(ts timesheet.Timesheet, emp employee.Employee, policy Policy) (Paystub, error) {
	hours, err := timesheet.Classify(ts, policy.Hours)
	if err != nil {
		return Paystub{}, err
	}
	daysWorked := timesheet.DaysWorked(ts)
	wages := Wages(hours, emp.PayRate, policy)
	gross := wages.Sum()
	deductions := ComputeDeductions(gross, emp, daysWorked)

	stub := Paystub{
		WeekEnd:           ts.WeekEnd,
		Hours:             hours,
		Wages:             wages,
		PreTaxDeductions:  map[string]decimal.Decimal{},
		PostTaxDeductions: map[string]decimal.Decimal{},
		Additions:         map[string]decimal.Decimal{},
	}
	for name, line := range deductions.Lines {
		if err := stub.place(name, policy.bucketFor(name, line), line.Amount); err != nil {
			return Paystub{}, err
		}
	}
	for _, fixed := range policy.FixedLines {
		if err := stub.place(fixed.Name, fixed.Bucket, fixed.Amount); err != nil {
			return Paystub{}, err
		}
	}

	adjusted := gross.Sub(stub.TotalPreTax())
	stub.Pay = Pay{
		Gross:         gross,
		AdjustedGross: adjusted,
		Net:           adjusted.Sub(stub.TotalPostTax()).Add(stub.TotalAdditions()),
	}

	if err := validation.Struct(stub); err != nil {
		return Paystub{}, err
	}
	return stub, nil
}

func (p *Paystub) place(name string, bucket Bucket, amount decimal.Decimal) error {
	switch bucket {
	case BucketAdditions:
		p.Additions[name] = amount
	case BucketPreTax:
		p.PreTaxDeductions[name] = amount
	case BucketPostTax:
		p.PostTaxDeductions[name] = amount
	default:
		return fmt.Errorf("%w %q for %s", ErrUnknownBucket, bucket, name)
	}
	return nil
}

// bucketFor decides where a resolved rule lands on the paystub. Names in the
// compatibility table keep their legacy bucket in both modes.
func (p Policy) bucketFor(name string, line Line) Bucket {
	declared := declaredBucket(line)
	if legacy, listed := p.CompatBuckets[name]; listed {
		if p.BucketMode == BucketByCategory && declared != legacy {
			slog.Warn("deduction category disagrees with compatibility bucket",
				"name", name, "set", line.Set, "category", line.Rule.Category, "bucket", legacy)
		}
		return legacy
	}
	if p.BucketMode == BucketByAllowlist {
		return BucketPostTax
	}
	if declared != BucketPostTax {
		slog.Warn("deduction bucketed by rule category; the name allowlist would post it post-tax",
			"name", name, "set", line.Set, "category", line.Rule.Category, "bucket", declared)
	}
	return declared
}

func declaredBucket(line Line) Bucket {
	if line.Set == employee.SetUnionAdditions {
		return BucketAdditions
	}
	if line.Rule.Category == employee.CategoryPreTax {
		return BucketPreTax
	}
	return BucketPostTax
}
