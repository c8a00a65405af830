package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.Equal(t, Location(DefaultTimezone).String(), Location("Not/AZone").String())
	assert.Equal(t, Location(DefaultTimezone).String(), Location("").String())
	assert.False(t, IsValid(""))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("UTC", "2026-10-19", "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC), got)

	_, err = ParseDateTime("UTC", "2026-10-19", "2pm")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)
	start, end := DayBounds(ts)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), end)
}
