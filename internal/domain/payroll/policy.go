package payroll

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"paystub/internal/domain/timesheet"
)

type BucketMode string

const (
	// BucketByCategory routes rules by their source list and category, keeping
	// the legacy names in their legacy buckets.
	BucketByCategory BucketMode = "category"
	// BucketByAllowlist routes only the legacy names; everything else is post-tax.
	// It is the default.
	BucketByAllowlist BucketMode = "allowlist"
)

type Bucket string

const (
	BucketAdditions Bucket = "additions"
	BucketPreTax    Bucket = "pre-tax"
	BucketPostTax   Bucket = "post-tax"
)

// FixedLine is a deduction added to every paystub regardless of the employee record.
type FixedLine struct {
	Name   string
	Bucket Bucket
	Amount decimal.Decimal
}

// Policy holds the rate table and bucketing configuration of a payroll run.
type Policy struct {
	Hours              timesheet.Rules
	OvertimeMultiplier decimal.Decimal
	DifferentialRate   decimal.Decimal
	BucketMode         BucketMode
	CompatBuckets      map[string]Bucket
	FixedLines         []FixedLine
}

func legacyBuckets() map[string]Bucket {
	return map[string]Bucket{
		"LONGEVT": BucketAdditions,
		"MEALS N": BucketAdditions,
		"TRAVELN": BucketAdditions,
		"401K% T": BucketPreTax,
		"UNION N": BucketPreTax,
		"UN INST": BucketPreTax,
		"AFLCNTT": BucketPreTax,
		"WILTONN": BucketPreTax,
	}
}

func DefaultPolicy() Policy {
	return Policy{
		Hours:              timesheet.DefaultRules(),
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		DifferentialRate:   decimal.RequireFromString("1.4186"),
		BucketMode:         BucketByAllowlist,
		CompatBuckets:      legacyBuckets(),
		FixedLines: []FixedLine{
			{Name: "DIS-SUI", Bucket: BucketPostTax, Amount: decimal.RequireFromString("0.60")},
		},
	}
}

type policyFile struct {
	OvertimeMultiplier *string           `yaml:"overtime_multiplier"`
	DifferentialRate   *string           `yaml:"differential_rate"`
	WeeklyRegularCap   *string           `yaml:"weekly_regular_cap"`
	DailyRegularCap    *string           `yaml:"daily_regular_cap"`
	HolidayDailyCap    *string           `yaml:"holiday_daily_cap"`
	DifferentialStart  *int              `yaml:"differential_start_hour"`
	DifferentialEnd    *int              `yaml:"differential_end_hour"`
	BucketMode         string            `yaml:"bucket_mode"`
	CompatBuckets      map[string]string `yaml:"compat_buckets"`
	FixedLines         []struct {
		Name   string `yaml:"name"`
		Bucket string `yaml:"bucket"`
		Amount string `yaml:"amount"`
	} `yaml:"fixed_lines"`
}

// LoadPolicy reads a YAML policy file over the defaults. An empty path returns the defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read payroll policy: %w", err)
	}
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Policy{}, fmt.Errorf("parse payroll policy: %w", err)
	}

	decimals := []struct {
		name string
		raw  *string
		dst  *decimal.Decimal
	}{
		{"overtime_multiplier", file.OvertimeMultiplier, &policy.OvertimeMultiplier},
		{"differential_rate", file.DifferentialRate, &policy.DifferentialRate},
		{"weekly_regular_cap", file.WeeklyRegularCap, &policy.Hours.WeeklyRegularCap},
		{"daily_regular_cap", file.DailyRegularCap, &policy.Hours.DailyRegularCap},
		{"holiday_daily_cap", file.HolidayDailyCap, &policy.Hours.HolidayDailyCap},
	}
	for _, d := range decimals {
		if d.raw == nil {
			continue
		}
		value, err := decimal.NewFromString(*d.raw)
		if err != nil {
			return Policy{}, fmt.Errorf("payroll policy %s: %w", d.name, err)
		}
		*d.dst = value
	}
	if file.DifferentialStart != nil {
		policy.Hours.DifferentialStart = *file.DifferentialStart
	}
	if file.DifferentialEnd != nil {
		policy.Hours.DifferentialEnd = *file.DifferentialEnd
	}
	if file.BucketMode != "" {
		policy.BucketMode = BucketMode(file.BucketMode)
	}
	if file.CompatBuckets != nil {
		policy.CompatBuckets = make(map[string]Bucket, len(file.CompatBuckets))
		for name, bucket := range file.CompatBuckets {
			policy.CompatBuckets[name] = Bucket(bucket)
		}
	}
	if file.FixedLines != nil {
		policy.FixedLines = make([]FixedLine, 0, len(file.FixedLines))
		for _, line := range file.FixedLines {
			amount, err := decimal.NewFromString(line.Amount)
			if err != nil {
				return Policy{}, fmt.Errorf("payroll policy fixed line %s: %w", line.Name, err)
			}
			policy.FixedLines = append(policy.FixedLines, FixedLine{Name: line.Name, Bucket: Bucket(line.Bucket), Amount: amount})
		}
	}
	return policy, policy.Validate()
}

func (p Policy) Validate() error {
	switch p.BucketMode {
	case BucketByCategory, BucketByAllowlist:
	default:
		return fmt.Errorf("payroll policy bucket_mode must be %q or %q", BucketByCategory, BucketByAllowlist)
	}
	for name, bucket := range p.CompatBuckets {
		if !bucket.valid() {
			return fmt.Errorf("payroll policy compat bucket for %s: unknown bucket %q", name, bucket)
		}
	}
	for _, line := range p.FixedLines {
		if line.Name == "" || !line.Bucket.valid() {
			return fmt.Errorf("payroll policy fixed line %q: name and a known bucket are required", line.Name)
		}
	}
	if !p.Hours.WeeklyRegularCap.IsPositive() {
		return fmt.Errorf("payroll policy weekly_regular_cap must be positive")
	}
	if p.Hours.DailyRegularCap.IsNegative() || p.Hours.HolidayDailyCap.IsNegative() {
		return fmt.Errorf("payroll policy daily caps must not be negative")
	}
	return nil
}

func (b Bucket) valid() bool {
	return b == BucketAdditions || b == BucketPreTax || b == BucketPostTax
}
