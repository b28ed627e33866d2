package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/apperr"
)

type memoryStore struct {
	sheets map[string]Timesheet
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sheets: map[string]Timesheet{}}
}

func (m *memoryStore) GetTimesheet(_ context.Context, weekEnd string) (*Timesheet, error) {
	ts, ok := m.sheets[weekEnd]
	if !ok {
		return nil, nil
	}
	return &ts, nil
}

func (m *memoryStore) SaveTimesheet(_ context.Context, ts Timesheet) error {
	m.sheets[ts.WeekEnd] = ts
	return nil
}

func (m *memoryStore) DeleteTimesheet(_ context.Context, weekEnd string) (bool, error) {
	if _, ok := m.sheets[weekEnd]; !ok {
		return false, nil
	}
	delete(m.sheets, weekEnd)
	return true, nil
}

func (m *memoryStore) ListTimesheets(context.Context) ([]Timesheet, error) {
	out := make([]Timesheet, 0, len(m.sheets))
	for _, ts := range m.sheets {
		out = append(out, ts)
	}
	return out, nil
}

func monday(weekEnd, out string) Timesheet {
	return Timesheet{WeekEnd: weekEnd, Entries: Entries{time.Monday: {TimeIn: "09:00", TimeOut: out}}}
}

func TestServiceSaveOverwritesByWeekEnd(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, DefaultRules())
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, monday("2024-06-09", "17:00")))
	require.NoError(t, svc.Save(ctx, monday(" 2024-06-09 ", "18:00")))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "18:00", all[0].Entries[time.Monday].TimeOut)

	got, err := svc.Get(ctx, "2024-06-09")
	require.NoError(t, err)
	assert.Equal(t, all[0], got)
}

func TestServiceSaveRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		ts    Timesheet
		field string
	}{
		{name: "missing week end", ts: monday("", "17:00"), field: "week_end"},
		{name: "bad week end", ts: monday("06/09/2024", "17:00"), field: "week_end"},
		{name: "no entries", ts: Timesheet{WeekEnd: "2024-06-09", Entries: Entries{}}, field: "entries"},
		{name: "out before in", ts: monday("2024-06-09", "08:00"), field: "entries.Monday.time_out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			err := NewService(store, DefaultRules()).Save(context.Background(), tt.ts)

			var vErr *apperr.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Empty(t, store.sheets)
		})
	}

	err := NewService(newMemoryStore(), DefaultRules()).Save(context.Background(), monday("2024-06-09", "5pm"))
	assert.True(t, errors.Is(err, apperr.ErrParse))
}

func TestServiceListSortedAndDelete(t *testing.T) {
	svc := NewService(newMemoryStore(), DefaultRules())
	ctx := context.Background()
	for _, weekEnd := range []string{"2024-06-23", "2024-06-09", "2024-06-16"} {
		require.NoError(t, svc.Save(ctx, monday(weekEnd, "17:00")))
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"2024-06-09", "2024-06-16", "2024-06-23"}, []string{all[0].WeekEnd, all[1].WeekEnd, all[2].WeekEnd})

	require.NoError(t, svc.Delete(ctx, "2024-06-16"))
	assert.True(t, errors.Is(svc.Delete(ctx, "2024-06-16"), apperr.ErrNotFound))
	_, err = svc.Get(ctx, "2024-06-16")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestServicePreviewDoesNotStore(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, DefaultRules())

	hours, err := svc.Preview(monday("2024-06-09", "17:00"))
	require.NoError(t, err)
	assert.True(t, hours.Regular.Equal(dec("7.5")))
	assert.Empty(t, store.sheets)
}
