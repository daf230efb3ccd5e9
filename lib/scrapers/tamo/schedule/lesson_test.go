package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:45")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 8, Minute: 45}, tod)
	require.Equal(t, "08:45", tod.String())

	tod, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, tod)

	for _, text := range []string{"8:00-", "8:45", "24:00", "12:60", "1200", "12.00", "08:00 ", "8:00 AM", ""} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseTimeOfDay(text)
			var timeErr *TimeFormatError
			require.ErrorAs(t, err, &timeErr)
			require.Equal(t, text, timeErr.Text)
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	start, end, err := parseTimeRange("08:00-08:45")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 8}, start)
	require.Equal(t, TimeOfDay{Hour: 8, Minute: 45}, end)

	// only the outer five characters matter
	start, end, err = parseTimeRange("08:00 – 08:45")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 8}, start)
	require.Equal(t, TimeOfDay{Hour: 8, Minute: 45}, end)

	var timeErr *TimeFormatError
	_, _, err = parseTimeRange("8:00-8:45")
	require.ErrorAs(t, err, &timeErr)
	_, _, err = parseTimeRange("08:0")
	require.ErrorAs(t, err, &timeErr)
}

func TestTimeOfDayBefore(t *testing.T) {
	require.True(t, TimeOfDay{Hour: 8, Minute: 0}.Before(TimeOfDay{Hour: 8, Minute: 45}))
	require.True(t, TimeOfDay{Hour: 7, Minute: 59}.Before(TimeOfDay{Hour: 8}))
	require.False(t, TimeOfDay{Hour: 9}.Before(TimeOfDay{Hour: 9}))
}

func TestLessonJSON(t *testing.T) {
	lesson := NewLesson(
		1,
		TimeOfDay{Hour: 8},
		TimeOfDay{Hour: 8, Minute: 45},
		"Mathematics",
		Teacher{Name: "Jane Doe"},
	)
	out, err := json.Marshal(lesson)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"ordinal": 1,
		"start": "08:00",
		"end": "08:45",
		"subject": "Mathematics",
		"teacher": {"name": "Jane Doe"}
	}`, string(out))

	var decoded Lesson
	err = json.Unmarshal(out, &decoded)
	require.NoError(t, err)
	require.Equal(t, lesson, decoded)

	err = json.Unmarshal([]byte(`{"start": "8:00"}`), &decoded)
	var timeErr *TimeFormatError
	require.ErrorAs(t, err, &timeErr)
}

func TestTeacherIsNamed(t *testing.T) {
	var named Named = Teacher{Name: "Jane Doe"}
	require.Equal(t, "Jane Doe", named.DisplayName())
}
