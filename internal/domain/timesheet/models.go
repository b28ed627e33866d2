package timesheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Week lists the days of a timesheet in the order they are classified.
var Week = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Punch is one day's raw entry. Empty TimeIn or TimeOut means the day was not worked.
type Punch struct {
	TimeIn        string `json:"time_in"`
	TimeOut       string `json:"time_out"`
	IsHoliday     bool   `json:"is_holiday"`
	VacationHours string `json:"vacation_hours"`
	SickHours     string `json:"sick_hours"`
}

func (p Punch) Worked() bool {
	return strings.TrimSpace(p.TimeIn) != "" && strings.TrimSpace(p.TimeOut) != ""
}

// Entries maps a weekday to its punch. It is encoded as a JSON object keyed by
// day name in Monday..Sunday order.
type Entries map[time.Weekday]Punch

func (e Entries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, day := range Week {
		punch, ok := e[day]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(day.String())
		value, err := json.Marshal(punch)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Entries) UnmarshalJSON(data []byte) error {
	var raw map[string]Punch
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Entries, len(raw))
	for name, punch := range raw {
		day, ok := ParseDay(name)
		if !ok {
			return fmt.Errorf("unknown day %q", name)
		}
		if _, dup := out[day]; dup {
			return fmt.Errorf("day %s given more than once", day)
		}
		out[day] = punch
	}
	*e = out
	return nil
}

// ParseDay resolves a day name such as "Monday" or "mon".
func ParseDay(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	for _, day := range Week {
		full := strings.ToLower(day.String())
		if name == full || name == full[:3] {
			return day, true
		}
	}
	return 0, false
}

// Timesheet is one week of punches identified by its week-ending date (YYYY-MM-DD).
type Timesheet struct {
	WeekEnd string  `json:"week_end" validate:"required,datetime=2006-01-02"`
	Entries Entries `json:"entries" validate:"required,min=1"`
}

// DaysWorked counts the days with both punches present.
func DaysWorked(ts Timesheet) int {
	count := 0
	for _, punch := range ts.Entries {
		if punch.Worked() {
			count++
		}
	}
	return count
}
