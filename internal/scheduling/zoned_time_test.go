package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToUTCInstant_KnownOffsets(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		hhmm string
		tz   string
		want time.Time
	}{
		{"sydney winter", date(2024, 6, 10), "09:00", "Australia/Sydney", time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC)},
		{"sydney summer", date(2024, 1, 10), "09:00", "Australia/Sydney", time.Date(2024, 1, 9, 22, 0, 0, 0, time.UTC)},
		{"new york summer", date(2024, 7, 1), "09:00", "America/New_York", time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC)},
		{"new york winter", date(2024, 1, 15), "09:00", "America/New_York", time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)},
		{"utc", date(2024, 2, 29), "23:59", "UTC", time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)},
		{"half hour zone", date(2024, 3, 1), "10:15", "Asia/Kolkata", time.Date(2024, 3, 1, 4, 45, 0, 0, time.UTC)},
		{"berlin after spring switch", date(2024, 3, 31), "12:00", "Europe/Berlin", time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)},
		{"berlin before spring switch", date(2024, 3, 31), "01:00", "Europe/Berlin", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToUTCInstant(tc.date, tc.hhmm, tc.tz)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestToUTCInstant_RoundTrip(t *testing.T) {
	zones := []string{"America/New_York", "Europe/Berlin", "Australia/Sydney", "Asia/Tokyo", "America/Sao_Paulo", "Pacific/Auckland"}
	dates := []time.Time{
		date(2024, 3, 10),  // US spring forward
		date(2024, 3, 31),  // EU spring forward
		date(2024, 4, 7),   // AU fall back
		date(2024, 10, 6),  // AU spring forward
		date(2024, 10, 27), // EU fall back
		date(2024, 11, 3),  // US fall back
		date(2024, 6, 15),
		date(2025, 1, 1),
	}
	times := []string{"00:00", "01:30", "09:00", "12:45", "17:10", "23:59"}

	for _, tz := range zones {
		loc, err := LoadLocation(tz)
		require.NoError(t, err)
		for _, d := range dates {
			for _, hhmm := range times {
				instant, err := ToUTCInstant(d, hhmm, tz)
				require.NoError(t, err)

				local := instant.In(loc)
				assert.Equal(t, d.Format(domain.DateFormat), local.Format(domain.DateFormat), "%s %s %s", tz, d, hhmm)
				assert.Equal(t, hhmm, local.Format(domain.TimeFormat), "%s %s", tz, d)
			}
		}
	}
}

func TestToUTCInstant_Errors(t *testing.T) {
	_, err := ToUTCInstant(date(2024, 6, 10), "09:00", "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)

	_, err = ToUTCInstant(date(2024, 6, 10), "09:00", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)

	_, err = ToUTCInstant(date(2024, 6, 10), "09:00", "Local")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)

	for _, bad := range []string{"9:00", "25:00", "12:61", "noon", ""} {
		_, err = ToUTCInstant(date(2024, 6, 10), bad, "UTC")
		assert.ErrorIs(t, err, domain.ErrInvalidTime, bad)
	}
}

func TestLocalDate(t *testing.T) {
	loc, err := LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	// 23:00 UTC on the 9th is 09:00 on the 10th in Sydney
	got := LocalDate(time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, date(2024, 6, 10), got)
}

func TestLoadLocation_Cached(t *testing.T) {
	first, err := LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	second, err := LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	assert.Same(t, first, second)
}
