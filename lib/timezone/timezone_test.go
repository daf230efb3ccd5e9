package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	loc := Location

	cases := []struct {
		now         time.Time
		expectStart time.Time
	}{
		{
			// monday
			now:         time.Date(2024, time.September, 2, 10, 30, 0, 0, loc),
			expectStart: time.Date(2024, time.September, 2, 0, 0, 0, 0, loc),
		},
		{
			// sunday belongs to the week that started the monday before
			now:         time.Date(2024, time.September, 8, 23, 59, 0, 0, loc),
			expectStart: time.Date(2024, time.September, 2, 0, 0, 0, 0, loc),
		},
		{
			now:         time.Date(2024, time.September, 4, 0, 0, 0, 0, loc),
			expectStart: time.Date(2024, time.September, 2, 0, 0, 0, 0, loc),
		},
		{
			// across a month boundary
			now:         time.Date(2024, time.October, 2, 8, 0, 0, 0, loc),
			expectStart: time.Date(2024, time.September, 30, 0, 0, 0, 0, loc),
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expectStart, WeekStart(test.now))
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2024, time.September, 2, 0, 0, 0, 0, Location)
	at := At(date, 8, 45)
	require.Equal(t, 8, at.Hour())
	require.Equal(t, 45, at.Minute())
	require.Equal(t, 2, at.Day())
	require.Equal(t, Location, at.Location())
}
