package payroll

import (
	"context"

	"paystub/internal/domain/employee"
	"paystub/internal/domain/timesheet"
)

type StoreAPI interface {
	GetEmployee(ctx context.Context) (*employee.Employee, error)
	GetTimesheet(ctx context.Context, weekEnd string) (*timesheet.Timesheet, error)
	GetPaystub(ctx context.Context, weekEnd string) (*Paystub, error)
	SavePaystub(ctx context.Context, stub Paystub) error
	DeletePaystub(ctx context.Context, weekEnd string) (bool, error)
	ListPaystubs(ctx context.Context) ([]Paystub, error)
}

// RunRecorder is notified of every paystub generation attempt.
type RunRecorder interface {
	RecordRun(ok bool)
}
