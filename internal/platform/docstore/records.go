package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"paystub/internal/domain/employee"
	"paystub/internal/domain/payroll"
	"paystub/internal/domain/timesheet"
)

func (s *Store) GetEmployee(context.Context) (*employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var emp employee.Employee
	found, err := s.employees.get(employeeKey, &emp)
	if err != nil || !found {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) SaveEmployee(_ context.Context, emp employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees.put(employeeKey, emp)
}

func (s *Store) GetTimesheet(_ context.Context, weekEnd string) (*timesheet.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ts timesheet.Timesheet
	found, err := s.timesheets.get(weekKey(weekEnd), &ts)
	if err != nil || !found {
		return nil, err
	}
	return &ts, nil
}

func (s *Store) SaveTimesheet(_ context.Context, ts timesheet.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timesheets.put(weekKey(ts.WeekEnd), ts)
}

func (s *Store) DeleteTimesheet(_ context.Context, weekEnd string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timesheets.remove(weekKey(weekEnd))
}

func (s *Store) ListTimesheets(context.Context) ([]timesheet.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return list[timesheet.Timesheet](s.timesheets)
}

func (s *Store) GetPaystub(_ context.Context, weekEnd string) (*payroll.Paystub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stub payroll.Paystub
	found, err := s.paystubs.get(weekKey(weekEnd), &stub)
	if err != nil || !found {
		return nil, err
	}
	return &stub, nil
}

func (s *Store) SavePaystub(_ context.Context, stub payroll.Paystub) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paystubs.put(weekKey(stub.WeekEnd), stub)
}

func (s *Store) DeletePaystub(_ context.Context, weekEnd string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paystubs.remove(weekKey(weekEnd))
}

func (s *Store) ListPaystubs(context.Context) ([]payroll.Paystub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return list[payroll.Paystub](s.paystubs)
}

// list decodes every week-keyed value of d. Order is unspecified.
func list[T any](d *document) ([]T, error) {
	out := make([]T, 0, len(d.values))
	for key, raw := range d.values {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, value)
	}
	return out, nil
}
