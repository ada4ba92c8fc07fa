package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9, Minute: 30}, c)

	c, err = ParseClock("7:5")
	require.NoError(t, err)
	assert.Equal(t, "07:05", c.String())
	assert.Equal(t, "07:05:00", c.SQL())

	for _, bad := range []string{"25:00", "23:60", "-1:00", "0900", "09:00:00", "ab:cd", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-16")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.June, Day: 16}, d)
	assert.Equal(t, "2025-06-16", d.String())

	for _, bad := range []string{"16-06-2025", "2025-13-01", "2025-02-30", "yesterday"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOfAndSinceMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Date{Year: 2025, Month: time.June, Day: 16}, DateOf(ts, loc))
	assert.Equal(t, 90*time.Minute, SinceMidnight(ts, loc))
	assert.Equal(t, 20*time.Hour, SinceMidnight(ts, time.UTC))
	assert.Equal(t, 23*time.Hour+59*time.Minute, EndOfDay.Offset())
}
