package timesheet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"paystub/internal/domain/apperr"
)

const clockLayout = "15:04"

var minutesPerHour = decimal.NewFromInt(60)

// Rules are the hour thresholds used by Classify.
type Rules struct {
	WeeklyRegularCap decimal.Decimal
	// DailyRegularCap sends a non-holiday day's hours beyond it to Regular OT.
	// Zero disables the daily threshold.
	DailyRegularCap   decimal.Decimal
	HolidayDailyCap   decimal.Decimal
	DifferentialStart int
	DifferentialEnd   int
}

func DefaultRules() Rules {
	return Rules{
		WeeklyRegularCap:  decimal.RequireFromString("37.5"),
		DailyRegularCap:   decimal.RequireFromString("7.5"),
		HolidayDailyCap:   decimal.NewFromInt(7),
		DifferentialStart: 17,
		DifferentialEnd:   7,
	}
}

// Classify turns a week of punches into categorized hours. Vacation and sick
// hours count on every day; clock hours only on days with both punches.
func Classify(ts Timesheet, rules Rules) (Breakdown, error) {
	var hours Breakdown
	for _, day := range Week {
		punch, ok := ts.Entries[day]
		if !ok {
			continue
		}

		vacation, err := parseHours(punch.VacationHours, entryField(day, "vacation_hours"))
		if err != nil {
			return Breakdown{}, err
		}
		sick, err := parseHours(punch.SickHours, entryField(day, "sick_hours"))
		if err != nil {
			return Breakdown{}, err
		}
		hours.Vacation = hours.Vacation.Add(vacation)
		hours.Sick = hours.Sick.Add(sick)

		if !punch.Worked() {
			continue
		}

		in, out, err := parseClock(day, punch)
		if err != nil {
			return Breakdown{}, err
		}
		daily := decimal.NewFromInt(int64(out.Sub(in) / time.Minute)).Div(minutesPerHour)

		if punch.IsHoliday {
			holiday := decimal.Min(daily, rules.HolidayDailyCap)
			hours.Holiday = hours.Holiday.Add(holiday)
			hours.HolidayOT = hours.HolidayOT.Add(daily.Sub(holiday))
		} else {
			regular := rules.regularPortion(daily, hours.Regular)
			hours.Regular = hours.Regular.Add(regular)
			hours.RegularOT = hours.RegularOT.Add(daily.Sub(regular))
		}

		if in.Hour() >= rules.DifferentialStart || out.Hour() < rules.DifferentialEnd {
			hours.Differential = hours.Differential.Add(daily)
		}
	}
	return hours, nil
}

// regularPortion is the part of a day's hours that still fits under the caps.
func (r Rules) regularPortion(daily, weekSoFar decimal.Decimal) decimal.Decimal {
	eligible := daily
	if r.DailyRegularCap.IsPositive() {
		eligible = decimal.Min(eligible, r.DailyRegularCap)
	}
	room := r.WeeklyRegularCap.Sub(weekSoFar)
	if !room.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(eligible, room)
}

func parseClock(day time.Weekday, punch Punch) (time.Time, time.Time, error) {
	in, err := time.Parse(clockLayout, strings.TrimSpace(punch.TimeIn))
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Parse(entryField(day, "time_in"), punch.TimeIn, err)
	}
	out, err := time.Parse(clockLayout, strings.TrimSpace(punch.TimeOut))
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Parse(entryField(day, "time_out"), punch.TimeOut, err)
	}
	// Punches carry no date, so a shift cannot cross midnight.
	if out.Before(in) {
		return time.Time{}, time.Time{}, apperr.Validation(entryField(day, "time_out"), "must not be before time_in")
	}
	return in, out, nil
}

func parseHours(raw, field string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.Parse(field, raw, err)
	}
	if value.IsNegative() {
		return decimal.Zero, apperr.Validation(field, "must not be negative")
	}
	return value, nil
}

func entryField(day time.Weekday, name string) string {
	return "entries." + day.String() + "." + name
}
