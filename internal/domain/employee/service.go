package employee

import (
	"context"

	"paystub/internal/domain/apperr"
	"paystub/internal/requestctx"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Get returns the stored record, or the default record when none exists.
func (s *Service) Get(ctx context.Context) (Employee, bool, error) {
	emp, err := s.store.GetEmployee(ctx)
	if err != nil {
		return Employee{}, false, err
	}
	if emp == nil {
		return Default(), false, nil
	}
	return *emp, true, nil
}

// Current returns the stored record or a NotFoundError.
func (s *Service) Current(ctx context.Context) (Employee, error) {
	emp, err := s.store.GetEmployee(ctx)
	if err != nil {
		return Employee{}, err
	}
	if emp == nil {
		return Employee{}, apperr.NotFound("employee", "")
	}
	return *emp, nil
}

// Save merges the update into the current record, validates and stores it.
func (s *Service) Save(ctx context.Context, u Update) (Employee, error) {
	current, _, err := s.Get(ctx)
	if err != nil {
		return Employee{}, err
	}
	merged := Merge(current, u)
	return s.persist(ctx, merged)
}

func (s *Service) AddRule(ctx context.Context, set RuleSet, rule Rule) (Employee, error) {
	current, _, err := s.Get(ctx)
	if err != nil {
		return Employee{}, err
	}
	rule.ID = ""
	rules := append(cloneRules(current.Rules(set)), rule)
	current.setRules(set, rules)
	return s.persist(ctx, current)
}

func (s *Service) RemoveRule(ctx context.Context, set RuleSet, ruleID string) (Employee, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return Employee{}, err
	}
	rules := current.Rules(set)
	kept := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.ID != ruleID {
			kept = append(kept, rule)
		}
	}
	if len(kept) == len(rules) {
		return Employee{}, apperr.NotFound("rule", ruleID)
	}
	current.setRules(set, kept)
	return s.persist(ctx, current)
}

func (s *Service) persist(ctx context.Context, emp Employee) (Employee, error) {
	assignRuleIDs(&emp)
	if err := Validate(emp); err != nil {
		return Employee{}, err
	}
	if err := s.store.SaveEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	requestctx.Logger(ctx).Info("employee saved", "payRate", emp.PayRate.String(), "filingStatus", emp.FilingStatus)
	return emp, nil
}
