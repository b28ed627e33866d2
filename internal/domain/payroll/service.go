package payroll

import (
	"context"
	"sort"

	"paystub/internal/domain/apperr"
	"paystub/internal/domain/timesheet"
	"paystub/internal/requestctx"
)

type Service struct {
	store    StoreAPI
	policy   Policy
	recorder RunRecorder
}

func NewService(store StoreAPI, policy Policy, recorder RunRecorder) *Service {
	return &Service{store: store, policy: policy, recorder: recorder}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// Generate builds the paystub for ts against the stored employee and saves it,
// replacing any paystub with the same week-ending date.
func (s *Service) Generate(ctx context.Context, ts timesheet.Timesheet) (Paystub, error) {
	stub, err := s.generate(ctx, ts)
	if s.recorder != nil {
		s.recorder.RecordRun(err == nil)
	}
	if err != nil {
		requestctx.Logger(ctx).Warn("paystub generation failed", "weekEnd", ts.WeekEnd, "err", err)
		return Paystub{}, err
	}
	requestctx.Logger(ctx).Info("paystub generated", "weekEnd", stub.WeekEnd, "gross", stub.Pay.Gross.StringFixed(2), "net", stub.Pay.Net.StringFixed(2))
	return stub, nil
}

// GenerateForWeek generates from the stored timesheet of weekEnd.
func (s *Service) GenerateForWeek(ctx context.Context, weekEnd string) (Paystub, error) {
	ts, err := s.store.GetTimesheet(ctx, weekEnd)
	if err != nil {
		return Paystub{}, err
	}
	if ts == nil {
		return Paystub{}, apperr.NotFound("timesheet", weekEnd)
	}
	return s.Generate(ctx, *ts)
}

func (s *Service) generate(ctx context.Context, ts timesheet.Timesheet) (Paystub, error) {
	emp, err := s.store.GetEmployee(ctx)
	if err != nil {
		return Paystub{}, err
	}
	if emp == nil {
		return Paystub{}, apperr.NotFound("employee", "")
	}
	stub, err := Assemble(ts, *emp, s.policy)
	if err != nil {
		return Paystub{}, err
	}
	if err := s.store.SavePaystub(ctx, stub); err != nil {
		return Paystub{}, err
	}
	return stub, nil
}

func (s *Service) Get(ctx context.Context, weekEnd string) (Paystub, error) {
	stub, err := s.store.GetPaystub(ctx, weekEnd)
	if err != nil {
		return Paystub{}, err
	}
	if stub == nil {
		return Paystub{}, apperr.NotFound("paystub", weekEnd)
	}
	return *stub, nil
}

// List returns every stored paystub ordered by week-ending date.
func (s *Service) List(ctx context.Context) ([]Paystub, error) {
	stubs, err := s.store.ListPaystubs(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(stubs, func(i, j int) bool { return stubs[i].WeekEnd < stubs[j].WeekEnd })
	return stubs, nil
}

func (s *Service) Delete(ctx context.Context, weekEnd string) error {
	deleted, err := s.store.DeletePaystub(ctx, weekEnd)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("paystub", weekEnd)
	}
	requestctx.Logger(ctx).Info("paystub deleted", "weekEnd", weekEnd)
	return nil
}
