package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careops/shared/timezone"
)

func TestNow_InAppLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestToAppTime_SameInstant(t *testing.T) {
	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	local := timezone.ToAppTime(utc)

	assert.True(t, local.Equal(utc))
	assert.Equal(t, timezone.GetLocation(), local.Location())
}

func TestParse_DateOnly(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", timezone.Format(parsed, time.DateOnly))
	assert.Equal(t, 0, parsed.Hour())
}

func TestStartOfDay(t *testing.T) {
	moment := time.Date(2024, 3, 15, 17, 45, 12, 99, timezone.GetLocation())

	start := timezone.StartOfDay(moment)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, timezone.GetLocation()), start)
	assert.False(t, start.After(moment))
}

func TestDayRange(t *testing.T) {
	moment := time.Date(2024, 3, 15, 17, 45, 0, 0, timezone.GetLocation())

	tests := []struct {
		name    string
		days    int
		wantEnd time.Time
	}{
		{name: "today", days: 1, wantEnd: time.Date(2024, 3, 16, 0, 0, 0, 0, timezone.GetLocation())},
		{name: "next week", days: 7, wantEnd: time.Date(2024, 3, 22, 0, 0, 0, 0, timezone.GetLocation())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := timezone.DayRange(moment, tt.days)

			assert.Equal(t, timezone.StartOfDay(moment), start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
