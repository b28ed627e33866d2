package payroll

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/apperr"
	"paystub/internal/domain/employee"
	"paystub/internal/domain/timesheet"
)

type fakeStore struct {
	emp        *employee.Employee
	timesheets map[string]timesheet.Timesheet
	stubs      map[string]Paystub
	saves      int
}

func newFakeStore(emp *employee.Employee) *fakeStore {
	return &fakeStore{
		emp:        emp,
		timesheets: map[string]timesheet.Timesheet{},
		stubs:      map[string]Paystub{},
	}
}

func (f *fakeStore) GetEmployee(context.Context) (*employee.Employee, error) {
	return f.emp, nil
}

func (f *fakeStore) GetTimesheet(_ context.Context, weekEnd string) (*timesheet.Timesheet, error) {
	ts, ok := f.timesheets[weekEnd]
	if !ok {
		return nil, nil
	}
	return &ts, nil
}

func (f *fakeStore) GetPaystub(_ context.Context, weekEnd string) (*Paystub, error) {
	stub, ok := f.stubs[weekEnd]
	if !ok {
		return nil, nil
	}
	return &stub, nil
}

func (f *fakeStore) SavePaystub(_ context.Context, stub Paystub) error {
	f.stubs[stub.WeekEnd] = stub
	f.saves++
	return nil
}

func (f *fakeStore) DeletePaystub(_ context.Context, weekEnd string) (bool, error) {
	if _, ok := f.stubs[weekEnd]; !ok {
		return false, nil
	}
	delete(f.stubs, weekEnd)
	return true, nil
}

func (f *fakeStore) ListPaystubs(context.Context) ([]Paystub, error) {
	out := make([]Paystub, 0, len(f.stubs))
	for _, stub := range f.stubs {
		out = append(out, stub)
	}
	return out, nil
}

type countingRecorder struct {
	ok, failed int
}

func (c *countingRecorder) RecordRun(ok bool) {
	if ok {
		c.ok++
		return
	}
	c.failed++
}

type prefixSealer struct{}

func (prefixSealer) Configured() bool { return true }

func (prefixSealer) Encrypt(plain []byte) ([]byte, error) {
	return append([]byte("sealed:"), plain...), nil
}

func TestServiceGenerateOverwritesSameWeek(t *testing.T) {
	store := newFakeStore(&employee.Employee{FirstName: "Dana", LastName: "Reyes", PayRate: dec("20")})
	recorder := &countingRecorder{}
	svc := NewService(store, DefaultPolicy(), recorder)
	ctx := context.Background()

	first, err := svc.Generate(ctx, mondayOnly())
	require.NoError(t, err)
	assert.True(t, first.Pay.Net.Equal(dec("164.40")))

	store.emp.PayRate = dec("30")
	second, err := svc.Generate(ctx, mondayOnly())
	require.NoError(t, err)

	stubs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, stubs, 1)
	assert.True(t, stubs[0].Pay.Gross.Equal(second.Pay.Gross))
	assert.Equal(t, 2, recorder.ok)
}

func TestServiceGenerateWithoutEmployee(t *testing.T) {
	store := newFakeStore(nil)
	recorder := &countingRecorder{}
	svc := NewService(store, DefaultPolicy(), recorder)

	_, err := svc.Generate(context.Background(), mondayOnly())

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "employee", nf.Kind)
	assert.Zero(t, store.saves)
	assert.Equal(t, 1, recorder.failed)
}

func TestServiceGenerateForWeek(t *testing.T) {
	store := newFakeStore(&employee.Employee{PayRate: dec("20")})
	svc := NewService(store, DefaultPolicy(), nil)
	ctx := context.Background()

	_, err := svc.GenerateForWeek(ctx, "2024-06-09")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	store.timesheets["2024-06-09"] = mondayOnly()
	stub, err := svc.GenerateForWeek(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-09", stub.WeekEnd)

	got, err := svc.Get(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.True(t, got.Pay.Net.Equal(stub.Pay.Net))
}

func TestServiceListAndDelete(t *testing.T) {
	store := newFakeStore(&employee.Employee{PayRate: dec("20")})
	svc := NewService(store, DefaultPolicy(), nil)
	ctx := context.Background()

	for _, weekEnd := range []string{"2024-06-23", "2024-06-09", "2024-06-16"} {
		ts := mondayOnly()
		ts.WeekEnd = weekEnd
		_, err := svc.Generate(ctx, ts)
		require.NoError(t, err)
	}

	stubs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, stubs, 3)
	assert.Equal(t, "2024-06-09", stubs[0].WeekEnd)
	assert.Equal(t, "2024-06-23", stubs[2].WeekEnd)

	require.NoError(t, svc.Delete(ctx, "2024-06-16"))
	assert.True(t, errors.Is(svc.Delete(ctx, "2024-06-16"), apperr.ErrNotFound))
	_, err = svc.Get(ctx, "2024-06-16")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestServiceExportPDF(t *testing.T) {
	store := newFakeStore(&employee.Employee{FirstName: "Dana", LastName: "Reyes", PayRate: dec("20")})
	svc := NewService(store, DefaultPolicy(), nil)
	ctx := context.Background()
	_, err := svc.Generate(ctx, mondayOnly())
	require.NoError(t, err)

	t.Run("plain archive", func(t *testing.T) {
		dir := t.TempDir()
		data, path, err := svc.ExportPDF(ctx, "2024-06-09", dir, nil)
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		assert.Equal(t, filepath.Join(dir, "paystub_2024-06-09.pdf"), path)
		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, onDisk)
	})

	t.Run("sealed archive", func(t *testing.T) {
		dir := t.TempDir()
		data, path, err := svc.ExportPDF(ctx, "2024-06-09", dir, prefixSealer{})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(path, ".pdf.enc"))
		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(onDisk, []byte("sealed:%PDF")))
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "caller gets the plain document")
	})

	t.Run("missing paystub", func(t *testing.T) {
		_, _, err := svc.ExportPDF(ctx, "2030-01-06", t.TempDir(), nil)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}
