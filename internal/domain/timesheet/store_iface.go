package timesheet

import "context"

type StoreAPI interface {
	GetTimesheet(ctx context.Context, weekEnd string) (*Timesheet, error)
	SaveTimesheet(ctx context.Context, ts Timesheet) error
	DeleteTimesheet(ctx context.Context, weekEnd string) (bool, error)
	ListTimesheets(ctx context.Context) ([]Timesheet, error)
}
