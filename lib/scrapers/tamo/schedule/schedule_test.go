package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/week.html
var weekHtml string

//go:embed testdata/full_week.html
var fullWeekHtml string

//go:embed testdata/full_week.json
var fullWeekJson []byte

func newTestSchedule(t testing.TB, markup string, opts Options) *Schedule {
	t.Helper()
	sched, err := NewSchedule(mustContainer(t, markup), opts)
	require.NoError(t, err)
	return sched
}

// dayMarkup wraps tbody rows in a single default day block.
func dayMarkup(rows string) string {
	return `<div id="c_main"><table class="c_main_table full_width padless borderless wrap_text"><tbody>` +
		rows +
		`</tbody></table></div>`
}

func TestScheduleRoundTrip(t *testing.T) {
	sched := newTestSchedule(t, weekHtml, Options{})

	n, err := sched.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	first, err := sched.Day(0)
	require.NoError(t, err)
	require.False(t, first.Empty)
	require.Equal(t, 1, first.Len())

	lesson, err := first.Lesson(0)
	require.NoError(t, err)
	require.Equal(t, 1, lesson.Ordinal)
	require.Equal(t, TimeOfDay{Hour: 8, Minute: 0}, lesson.Start)
	require.Equal(t, TimeOfDay{Hour: 8, Minute: 45}, lesson.End)
	require.Equal(t, "Mathematics", lesson.Subject)
	require.Equal(t, "Jane Doe", lesson.Teacher.Name)

	second, err := sched.Day(1)
	require.NoError(t, err)
	require.True(t, second.Empty)
	require.Equal(t, 0, second.Len())

	_, err = sched.Day(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestScheduleFullWeek(t *testing.T) {
	var expected []*SchoolDay
	err := json.Unmarshal(fullWeekJson, &expected)
	require.NoError(t, err)

	for _, selector := range []string{"class", "structure"} {
		t.Run(selector, func(t *testing.T) {
			sched := newTestSchedule(t, fullWeekHtml, Options{
				DaySelector: ParseDaySelector(selector),
			})
			days, err := sched.Days()
			require.NoError(t, err)

			diff := cmp.Diff(expected, days, cmp.AllowUnexported(SchoolDay{}), cmpopts.EquateEmpty())
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestScheduleParsesOnce(t *testing.T) {
	calls := 0
	probe := func(container *goquery.Selection) *goquery.Selection {
		calls++
		return ByClass(DefaultDayClass)(container)
	}
	sched := newTestSchedule(t, weekHtml, Options{DaySelector: probe})
	require.Equal(t, 0, calls)

	first, err := sched.Days()
	require.NoError(t, err)
	second, err := sched.Days()
	require.NoError(t, err)
	_, err = sched.Day(1)
	require.NoError(t, err)
	_, err = sched.Len()
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Same(t, first[0], second[0])
	require.Same(t, first[1], second[1])
}

func TestScheduleCachesError(t *testing.T) {
	calls := 0
	probe := func(container *goquery.Selection) *goquery.Selection {
		calls++
		return ByClass(DefaultDayClass)(container)
	}
	sched := newTestSchedule(t, dayMarkup(`<tr><td></td><td>pirmas</td><td>08:00-08:45</td><td>a</td><td>b</td></tr>`), Options{
		DaySelector: probe,
	})

	_, first := sched.Days()
	_, second := sched.Len()
	require.Error(t, first)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

func TestScheduleNoDays(t *testing.T) {
	sched := newTestSchedule(t, `<div id="c_main"><p>Tvarkaraštis nesudarytas</p></div>`, Options{})
	days, err := sched.Days()
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestScheduleEmptyDay(t *testing.T) {
	sched := newTestSchedule(t, dayMarkup(`<tr><td colspan="5"> Nėra pamokų </td></tr>`), Options{})
	day, err := sched.Day(0)
	require.NoError(t, err)
	require.True(t, day.Empty)
	require.Equal(t, 0, day.Len())
}

func TestScheduleCustomMarker(t *testing.T) {
	sched := newTestSchedule(t, dayMarkup(`<tr><td colspan="5">No lessons</td></tr>`), Options{
		NoLessonsMarker: "No lessons",
	})
	day, err := sched.Day(0)
	require.NoError(t, err)
	require.True(t, day.Empty)
}

func TestScheduleErrors(t *testing.T) {
	t.Run("unknown ordinal", func(t *testing.T) {
		sched := newTestSchedule(t, dayMarkup(
			`<tr><td></td><td>pirmoji</td><td>08:00-08:45</td><td>Mathematics</td><td>Jane Doe</td></tr>`,
		), Options{})
		_, err := sched.Days()
		var unknown *UnknownOrdinalError
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, "pirmoji", unknown.Word)
		require.Contains(t, err.Error(), "day 0: row 0")
	})

	t.Run("malformed time", func(t *testing.T) {
		sched := newTestSchedule(t, dayMarkup(
			`<tr><td></td><td>pirma</td><td>8:00-8:45</td><td>Mathematics</td><td>Jane Doe</td></tr>`,
		), Options{})
		_, err := sched.Days()
		var timeErr *TimeFormatError
		require.ErrorAs(t, err, &timeErr)
	})

	t.Run("missing cells", func(t *testing.T) {
		sched := newTestSchedule(t, dayMarkup(
			`<tr><td></td><td>pirma</td><td>08:00-08:45</td><td>Mathematics</td></tr>`,
		), Options{})
		_, err := sched.Days()
		var mismatch *StructuralMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Equal(t, 5, mismatch.Want)
		require.Equal(t, 4, mismatch.Got)
	})

	t.Run("error in later row", func(t *testing.T) {
		sched := newTestSchedule(t, dayMarkup(
			`<tr><td></td><td>pirma</td><td>08:00-08:45</td><td>Mathematics</td><td>Jane Doe</td></tr>`+
				`<tr></tr>`,
		), Options{})
		_, err := sched.Days()
		var mismatch *StructuralMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Equal(t, 0, mismatch.Got)
		require.Contains(t, err.Error(), "row 1")
	})
}

func TestScheduleOrdinalOptions(t *testing.T) {
	markup := dayMarkup(
		`<tr><td></td><td>second</td><td>08:55-09:40</td><td>b</td><td>y</td></tr>` +
			`<tr><td></td><td>first</td><td>08:00-08:45</td><td>a</td><td>x</td></tr>`,
	)

	ordinals, err := ParseOrdinals("test", []byte(`{first: 1, second: 2}`))
	require.NoError(t, err)
	sched := newTestSchedule(t, markup, Options{Ordinals: &ordinals})
	day, err := sched.Day(0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, ordinalsOf(day))

	path := filepath.Join(t.TempDir(), "ordinals.json5")
	err = os.WriteFile(path, []byte(`{first: 10, second: 20}`), 0644)
	require.NoError(t, err)
	sched = newTestSchedule(t, markup, Options{OrdinalsFile: path})
	day, err = sched.Day(0)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20}, ordinalsOf(day))

	_, err = NewSchedule(mustContainer(t, markup), Options{
		OrdinalsFile: filepath.Join(t.TempDir(), "missing.json5"),
	})
	var loadErr *ResourceLoadError
	require.ErrorAs(t, err, &loadErr)
}

type staticProvider struct {
	markup string
	err    error
}

func (p staticProvider) ScheduleMarkup(ctx context.Context) (*goquery.Selection, error) {
	if p.err != nil {
		return nil, p.err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.markup))
	if err != nil {
		return nil, err
	}
	return doc.Find("div#c_main"), nil
}

func TestFetch(t *testing.T) {
	sched, err := Fetch(context.Background(), staticProvider{markup: weekHtml}, Options{})
	require.NoError(t, err)
	n, err := sched.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	failure := errors.New("session expired")
	_, err = Fetch(context.Background(), staticProvider{err: failure}, Options{})
	require.ErrorIs(t, err, failure)
}

func TestScheduleDaysSliceIsCopied(t *testing.T) {
	sched := newTestSchedule(t, weekHtml, Options{})

	days, err := sched.Days()
	require.NoError(t, err)
	first := days[0]
	days[0] = nil

	again, err := sched.Days()
	require.NoError(t, err)
	require.Len(t, again, 2)
	require.Same(t, first, again[0])
}
