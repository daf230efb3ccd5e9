package timezone

import (
	"time"
	_ "time/tzdata"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Vilnius")
	if err != nil {
		panic(err)
	}
}

// the portal renders timetables in lithuanian local time, so every
// date computation goes through Location regardless of where we run.
func Now() time.Time {
	return time.Now().In(Location)
}

// WeekStart returns midnight of the monday of the week containing t,
// in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// At puts a wall clock time on the given date.
func At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, Location)
}
