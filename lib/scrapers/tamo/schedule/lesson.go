package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall clock time without a date, the day is implied by
// the SchoolDay that holds the lesson.
type TimeOfDay struct {
	Hour   int
	Minute int
}

const timeOfDayLayout = "15:04"

// ParseTimeOfDay only accepts zero padded 24 hour "HH:MM".
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	if len(text) != 5 || text[2] != ':' || !isDigits(text[:2]) || !isDigits(text[3:]) {
		return TimeOfDay{}, &TimeFormatError{Text: text}
	}
	t, err := time.Parse(timeOfDayLayout, text)
	if err != nil {
		return TimeOfDay{}, &TimeFormatError{Text: text, Err: err}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour == other.Hour {
		return t.Minute < other.Minute
	}
	return t.Hour < other.Hour
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// parseTimeRange reads the start from the first five and the end from
// the last five characters of a cell like "08:00-08:45".
func parseTimeRange(text string) (TimeOfDay, TimeOfDay, error) {
	runes := []rune(text)
	if len(runes) < 5 {
		return TimeOfDay{}, TimeOfDay{}, &TimeFormatError{Text: text}
	}
	start, err := ParseTimeOfDay(string(runes[:5]))
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	end, err := ParseTimeOfDay(string(runes[len(runes)-5:]))
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	return start, end, nil
}

// Lesson is a single row of a day in the timetable. Ordinal follows the
// school's own numbering and is not guaranteed to start at 0 or 1.
type Lesson struct {
	Ordinal int       `json:"ordinal"`
	Start   TimeOfDay `json:"start"`
	End     TimeOfDay `json:"end"`
	Subject string    `json:"subject"`
	Teacher Teacher   `json:"teacher"`
}

// NewLesson does no validation, the parser hands it checked values.
func NewLesson(ordinal int, start, end TimeOfDay, subject string, teacher Teacher) Lesson {
	return Lesson{
		Ordinal: ordinal,
		Start:   start,
		End:     end,
		Subject: subject,
		Teacher: teacher,
	}
}
