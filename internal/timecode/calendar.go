package timecode

import (
	"errors"
	"fmt"
	"time"
)

var ErrFieldRange = errors.New("timecode: calendar field out of range")

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CalendarTime is an immutable civil-time snapshot. Weekday counts from
// 0=Monday through 6=Sunday; YearDay is 1-based and leap-year aware.
type CalendarTime struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
	YearDay int
}

// FromTime converts a time.Time into a CalendarTime snapshot.
func FromTime(t time.Time) CalendarTime {
	return CalendarTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: (int(t.Weekday()) + 6) % 7,
		YearDay: t.YearDay(),
	}
}

// Time converts the snapshot back to a time.Time in UTC. Weekday and
// YearDay are derived fields and do not participate.
func (t CalendarTime) Time() time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

func (t CalendarTime) Validate() error {
	checks := []struct {
		name     string
		val      int
		min, max int
	}{
		{"year", t.Year, 1, 9999},
		{"month", t.Month, 1, 12},
		{"day", t.Day, 1, 31},
		{"hour", t.Hour, 0, 23},
		{"minute", t.Minute, 0, 59},
		{"second", t.Second, 0, 59},
		{"weekday", t.Weekday, 0, 6},
		{"yearday", t.YearDay, 1, 366},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return fmt.Errorf("%w: %s=%d", ErrFieldRange, c.name, c.val)
		}
	}
	return nil
}

func (t CalendarTime) String() string {
	wday := "???"
	if t.Weekday >= 0 && t.Weekday < len(weekdayNames) {
		wday = weekdayNames[t.Weekday]
	}
	return fmt.Sprintf("%04d/%02d/%02d %s %02d:%02d:%02d",
		t.Year, t.Month, t.Day, wday, t.Hour, t.Minute, t.Second)
}
