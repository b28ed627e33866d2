package timesheet

import (
	"context"
	"sort"
	"strings"

	"paystub/internal/domain/apperr"
	"paystub/internal/platform/validation"
	"paystub/internal/requestctx"
)

type Service struct {
	store StoreAPI
	rules Rules
}

func NewService(store StoreAPI, rules Rules) *Service {
	return &Service{store: store, rules: rules}
}

func (s *Service) Rules() Rules {
	return s.rules
}

// Validate checks the week-ending date, the presence of entries and that every
// entry can be classified.
func (s *Service) Validate(ts Timesheet) error {
	ts.WeekEnd = strings.TrimSpace(ts.WeekEnd)
	if err := validation.Struct(ts); err != nil {
		return err
	}
	_, err := Classify(ts, s.rules)
	return err
}

// Save stores the timesheet, replacing any timesheet with the same week-ending date.
func (s *Service) Save(ctx context.Context, ts Timesheet) error {
	ts.WeekEnd = strings.TrimSpace(ts.WeekEnd)
	if err := s.Validate(ts); err != nil {
		return err
	}
	if err := s.store.SaveTimesheet(ctx, ts); err != nil {
		return err
	}
	requestctx.Logger(ctx).Info("timesheet saved", "weekEnd", ts.WeekEnd, "daysWorked", DaysWorked(ts))
	return nil
}

func (s *Service) Get(ctx context.Context, weekEnd string) (Timesheet, error) {
	ts, err := s.store.GetTimesheet(ctx, weekEnd)
	if err != nil {
		return Timesheet{}, err
	}
	if ts == nil {
		return Timesheet{}, apperr.NotFound("timesheet", weekEnd)
	}
	return *ts, nil
}

func (s *Service) Delete(ctx context.Context, weekEnd string) error {
	deleted, err := s.store.DeleteTimesheet(ctx, weekEnd)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("timesheet", weekEnd)
	}
	requestctx.Logger(ctx).Info("timesheet deleted", "weekEnd", weekEnd)
	return nil
}

// List returns every stored timesheet ordered by week-ending date.
func (s *Service) List(ctx context.Context) ([]Timesheet, error) {
	sheets, err := s.store.ListTimesheets(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].WeekEnd < sheets[j].WeekEnd })
	return sheets, nil
}

// Preview classifies a timesheet without storing it.
func (s *Service) Preview(ts Timesheet) (Breakdown, error) {
	return Classify(ts, s.rules)
}
