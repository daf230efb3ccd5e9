package icsutil

import (
	"fmt"
	"tamoassist-backend/lib/scrapers/tamo/schedule"
	"tamoassist-backend/lib/timezone"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const productId = "-//tamoassist//schedule//LT"

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://dienynas.tamo.lt/TvarkarascioIrasas"))

// LessonUid is stable for the same lesson on the same date, so calendar
// clients update events instead of duplicating them on re-import.
func LessonUid(date time.Time, lesson schedule.Lesson) string {
	name := fmt.Sprintf("%s/%d/%s", date.Format(time.DateOnly), lesson.Ordinal, lesson.Subject)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// FromDays turns a parsed week into a calendar, day i is placed on
// weekStart + i days. Empty days produce no events.
func FromDays(days []*schedule.SchoolDay, weekStart time.Time) *ics.Calendar {
	weekStart = timezone.WeekStart(weekStart.In(timezone.Location))

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productId)
	cal.SetXWRCalName("TAMO")
	cal.SetXWRTimezone(timezone.Location.String())

	for i, day := range days {
		date := weekStart.AddDate(0, 0, i)
		for _, lesson := range day.Lessons() {
			event := cal.AddEvent(LessonUid(date, lesson))
			// the stamp is pinned to the week so exports are reproducible
			event.SetDtStampTime(weekStart)
			event.SetStartAt(timezone.At(date, lesson.Start.Hour, lesson.Start.Minute))
			event.SetEndAt(timezone.At(date, lesson.End.Hour, lesson.End.Minute))
			event.SetSummary(lesson.Subject)
			if lesson.Teacher.DisplayName() != "" {
				event.SetDescription(lesson.Teacher.DisplayName())
			}
		}
	}

	return cal
}
