package schedule

import (
	"cmp"
	"encoding/json"
	"slices"
)

// SchoolDay holds the lessons of one calendar day, always ordered by
// Ordinal. Empty is set when the portal explicitly says the day has no
// lessons.
type SchoolDay struct {
	Empty   bool
	lessons []Lesson
}

// NewSchoolDay copies lessons, the caller keeps ownership of its slice.
func NewSchoolDay(lessons ...Lesson) *SchoolDay {
	day := &SchoolDay{lessons: slices.Clone(lessons)}
	if len(day.lessons) > 0 {
		day.sort()
	}
	return day
}

func (d *SchoolDay) sort() {
	slices.SortStableFunc(d.lessons, func(a, b Lesson) int {
		return cmp.Compare(a.Ordinal, b.Ordinal)
	})
}

// AppendLesson adds a lesson and re-sorts the day. Days are at most a
// dozen lessons long so sorting every time is fine, lessons sharing an
// ordinal keep their insertion order.
func (d *SchoolDay) AppendLesson(lesson Lesson) {
	d.lessons = append(d.lessons, lesson)
	d.sort()
}

func (d *SchoolDay) Lesson(i int) (Lesson, error) {
	if i < 0 || i >= len(d.lessons) {
		return Lesson{}, indexError(i, len(d.lessons))
	}
	return d.lessons[i], nil
}

func (d *SchoolDay) Len() int {
	return len(d.lessons)
}

// Lessons returns a copy of the ordered lessons.
func (d *SchoolDay) Lessons() []Lesson {
	return slices.Clone(d.lessons)
}

type schoolDayJSON struct {
	Empty   bool     `json:"empty"`
	Lessons []Lesson `json:"lessons"`
}

func (d *SchoolDay) MarshalJSON() ([]byte, error) {
	lessons := d.lessons
	if lessons == nil {
		lessons = []Lesson{}
	}
	return json.Marshal(schoolDayJSON{Empty: d.Empty, Lessons: lessons})
}

func (d *SchoolDay) UnmarshalJSON(data []byte) error {
	var raw schoolDayJSON
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	*d = *NewSchoolDay(raw.Lessons...)
	d.Empty = raw.Empty
	return nil
}
