package docstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/employee"
	"paystub/internal/domain/payroll"
	"paystub/internal/domain/timesheet"
)

func sampleTimesheet(weekEnd, out string) timesheet.Timesheet {
	return timesheet.Timesheet{
		WeekEnd: weekEnd,
		Entries: timesheet.Entries{
			time.Monday:  {TimeIn: "09:00", TimeOut: out},
			time.Tuesday: {VacationHours: "8", IsHoliday: true},
		},
	}
}

func TestEmployeeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	got, err := store.GetEmployee(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	emp := employee.Default()
	emp.FirstName = "Dana"
	emp.PayRate = decimal.RequireFromString("20.00")
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err = store.GetEmployee(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dana", got.FirstName)
	assert.True(t, got.PayRate.Equal(emp.PayRate))
	assert.Len(t, got.PayrollDeductions, len(emp.PayrollDeductions))

	raw, err := os.ReadFile(filepath.Join(store.Dir(), employeesFile))
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "Employee")
}

func TestTimesheetRoundTripAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	first := sampleTimesheet("2024-06-09", "17:00")
	require.NoError(t, store.SaveTimesheet(ctx, first))

	got, err := store.GetTimesheet(ctx, "2024-06-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first, *got)

	second := sampleTimesheet("2024-06-09", "18:30")
	require.NoError(t, store.SaveTimesheet(ctx, second))

	all, err := store.ListTimesheets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "18:30", all[0].Entries[time.Monday].TimeOut)

	missing, err := store.GetTimesheet(ctx, "2024-06-16")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteTimesheet(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveTimesheet(ctx, sampleTimesheet("2024-06-09", "17:00")))

	deleted, err := store.DeleteTimesheet(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteTimesheet(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestReturnedValuesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveTimesheet(ctx, sampleTimesheet("2024-06-09", "17:00")))

	got, err := store.GetTimesheet(ctx, "2024-06-09")
	require.NoError(t, err)
	delete(got.Entries, time.Monday)

	again, err := store.GetTimesheet(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.Contains(t, again.Entries, time.Monday)
}

func TestPaystubsPersistAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	stub, err := payroll.Assemble(sampleTimesheet("2024-06-09", "17:00"), employee.Employee{PayRate: decimal.RequireFromString("20")}, payroll.DefaultPolicy())
	require.NoError(t, err)
	require.NoError(t, store.SavePaystub(ctx, stub))

	reopened, err := Open(dir)
	require.NoError(t, err)
	got, err := reopened.GetPaystub(ctx, "2024-06-09")
	require.NoError(t, err)
	require.NotNil(t, got)

	want, err := json.Marshal(stub)
	require.NoError(t, err)
	have, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(have))

	raw, err := os.ReadFile(filepath.Join(dir, paystubsFile))
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "Employee_2024-06-09")

	deleted, err := reopened.DeletePaystub(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.True(t, deleted)
	all, err := reopened.ListPaystubs(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpenRejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, timesheetsFile), []byte("{not json"), 0o600))

	_, err := Open(dir)
	assert.Error(t, err)
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveTimesheet(ctx, sampleTimesheet("2024-06-09", "17:00")))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
