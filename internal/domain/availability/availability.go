package availability

import (
	"fmt"
	"regexp"
	"time"
)

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Day struct {
	IsOpen bool   `json:"is_open"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// WeeklyAvailability is a barber's recurring schedule, stored as JSON on the profile.
type WeeklyAvailability struct {
	Monday    Day `json:"monday"`
	Tuesday   Day `json:"tuesday"`
	Wednesday Day `json:"wednesday"`
	Thursday  Day `json:"thursday"`
	Friday    Day `json:"friday"`
	Saturday  Day `json:"saturday"`
	Sunday    Day `json:"sunday"`
}

func Default() WeeklyAvailability {
	weekday := Day{IsOpen: true, Start: "09:00", End: "17:00"}
	weekend := Day{IsOpen: false, Start: "10:00", End: "14:00"}
	return WeeklyAvailability{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  weekend,
		Sunday:    weekend,
	}
}

// IsHHMM reports whether s is a 24h "HH:mm" clock value.
func IsHHMM(s string) bool {
	return hhmm.MatchString(s)
}

func (d Day) Validate() error {
	if !IsHHMM(d.Start) || !IsHHMM(d.End) {
		return fmt.Errorf("times must use HH:mm format")
	}
	if d.IsOpen && d.Start >= d.End {
		return fmt.Errorf("start must be before end")
	}
	return nil
}

func (w WeeklyAvailability) Validate() error {
	for _, wd := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		if err := w.ForWeekday(wd).Validate(); err != nil {
			return fmt.Errorf("%s: %w", wd, err)
		}
	}
	return nil
}

// IsZero is true for profiles created before availability was stored.
func (w WeeklyAvailability) IsZero() bool {
	return w == WeeklyAvailability{}
}

func (w WeeklyAvailability) ForWeekday(wd time.Weekday) Day {
	switch wd {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Window returns the open interval for the calendar day of date, in date's location.
func (w WeeklyAvailability) Window(date time.Time) (start, end time.Time, open bool) {
	day := w.ForWeekday(date.Weekday())
	if !day.IsOpen || !IsHHMM(day.Start) || !IsHHMM(day.End) {
		return time.Time{}, time.Time{}, false
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			date.Location(),
		)
	}

	start = parseHM(day.Start)
	end = parseHM(day.End)
	return start, end, start.Before(end)
}

// Covers reports whether [start, end) falls inside the open window of start's day.
func (w WeeklyAvailability) Covers(start, end time.Time) bool {
	workStart, workEnd, open := w.Window(start)
	if !open {
		return false
	}
	return !start.Before(workStart) && !end.After(workEnd)
}
