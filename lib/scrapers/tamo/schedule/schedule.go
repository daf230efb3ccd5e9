package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"tamoassist-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultNoLessonsMarker = "Nėra pamokų"

// cell positions of a lesson row
const (
	cellMarker = iota
	cellOrdinal
	cellTime
	cellSubject
	cellTeacher
	lessonCellCount
)

type Options struct {
	// Ordinals takes precedence over OrdinalsFile, when both are empty
	// the embedded mapping is used.
	Ordinals     *OrdinalResolver
	OrdinalsFile string
	// defaults to the class based selector
	DaySelector     DaySelector
	NoLessonsMarker string
}

func (o Options) resolver() (OrdinalResolver, error) {
	if o.Ordinals != nil {
		return *o.Ordinals, nil
	}
	if o.OrdinalsFile != "" {
		return LoadOrdinals(o.OrdinalsFile)
	}
	return DefaultOrdinals()
}

type parseState int

const (
	unparsed parseState = iota
	parsed
)

// Schedule is the week as rendered in the portal's schedule container.
// The markup is parsed on the first read and the outcome, days or error,
// is kept for the lifetime of the Schedule.
//
// A Schedule must not be read from multiple goroutines before its first
// read has returned. Days handed out by Days and Day are never modified by
// the Schedule, callers must not modify them either.
type Schedule struct {
	markup   *goquery.Selection
	ordinals OrdinalResolver
	selector DaySelector
	marker   string

	state parseState
	days  []*SchoolDay
	err   error
}

// NewSchedule loads the ordinal mapping right away so a broken mapping is
// reported before any markup is touched.
func NewSchedule(markup *goquery.Selection, opts Options) (*Schedule, error) {
	ordinals, err := opts.resolver()
	if err != nil {
		return nil, err
	}
	selector := opts.DaySelector
	if selector == nil {
		selector = ByClass(DefaultDayClass)
	}
	marker := opts.NoLessonsMarker
	if marker == "" {
		marker = DefaultNoLessonsMarker
	}
	return &Schedule{
		markup:   markup,
		ordinals: ordinals,
		selector: selector,
		marker:   marker,
	}, nil
}

// Days returns the parsed week. The slice is a fresh copy on every call,
// the *SchoolDay values are shared with the Schedule and must be treated
// as read-only.
func (s *Schedule) Days() ([]*SchoolDay, error) {
	if s.state == unparsed {
		s.days, s.err = s.parse(context.Background())
		s.state = parsed
	}
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.days), nil
}

func (s *Schedule) Day(i int) (*SchoolDay, error) {
	days, err := s.Days()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(days) {
		return nil, indexError(i, len(days))
	}
	return days[i], nil
}

func (s *Schedule) Len() (int, error) {
	days, err := s.Days()
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

func (s *Schedule) parse(ctx context.Context) ([]*SchoolDay, error) {
	ctx, span := tracer.Start(ctx, "schedule:parse")
	defer span.End()

	blocks := s.selector(s.markup)
	days := make([]*SchoolDay, 0, blocks.Length())
	lessonCount := 0

	for i := 0; i < blocks.Length(); i++ {
		day, err := s.parseDay(blocks.Eq(i))
		if err != nil {
			err = fmt.Errorf("day %d: %w", i, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse day")
			return nil, err
		}
		lessonCount += day.Len()
		days = append(days, day)
	}

	span.SetAttributes(
		attribute.Int("days", len(days)),
		attribute.Int("lessons", lessonCount),
	)
	lessonsParsedCounter.Add(ctx, int64(lessonCount))
	slog.DebugContext(ctx, "parsed schedule", "days", len(days), "lessons", lessonCount)

	return days, nil
}

func (s *Schedule) parseDay(block *goquery.Selection) (*SchoolDay, error) {
	tbody := block.ChildrenFiltered("tbody").First()
	if tbody.Length() == 0 {
		return nil, &StructuralMismatchError{Element: "day block tbody", Want: 1, Got: 0}
	}

	day := NewSchoolDay()
	for r, row := range htmlutil.Children(tbody) {
		cells := htmlutil.Children(row)
		if len(cells) > cellMarker && strings.Contains(htmlutil.Text(cells[cellMarker]), s.marker) {
			day.Empty = true
			continue
		}
		lesson, err := s.parseLesson(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		day.AppendLesson(lesson)
	}
	return day, nil
}

func (s *Schedule) parseLesson(cells []*goquery.Selection) (Lesson, error) {
	if len(cells) < lessonCellCount {
		return Lesson{}, &StructuralMismatchError{
			Element: "lesson row",
			Want:    lessonCellCount,
			Got:     len(cells),
		}
	}

	ordinal, err := s.ordinals.Resolve(htmlutil.Text(cells[cellOrdinal]))
	if err != nil {
		return Lesson{}, err
	}
	start, end, err := parseTimeRange(htmlutil.Text(cells[cellTime]))
	if err != nil {
		return Lesson{}, err
	}

	return NewLesson(
		ordinal,
		start,
		end,
		htmlutil.Text(cells[cellSubject]),
		Teacher{Name: htmlutil.Text(cells[cellTeacher])},
	), nil
}
