package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const testOwner = "owner-1"

func oneOffWindow(d time.Time, start, end string, duration, buffer int, tz string) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:                     "w-" + start,
		OwnerID:                testOwner,
		Date:                   ptr.Ptr(d),
		StartTime:              types.MustParseTimeOfDay(start),
		EndTime:                types.MustParseTimeOfDay(end),
		Timezone:               tz,
		SessionDurationMinutes: duration,
		BufferMinutes:          buffer,
		IsActive:               true,
	}
}

func weeklyWindow(day int, start, end string, duration, buffer int, tz string) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:                     "weekly-" + start,
		OwnerID:                testOwner,
		IsRecurring:            true,
		DayOfWeek:              ptr.Ptr(day),
		StartTime:              types.MustParseTimeOfDay(start),
		EndTime:                types.MustParseTimeOfDay(end),
		Timezone:               tz,
		SessionDurationMinutes: duration,
		BufferMinutes:          buffer,
		IsActive:               true,
	}
}

func session(id string, start time.Time, minutes int, status domain.SessionStatus) domain.Session {
	return domain.Session{
		ID:       id,
		OwnerID:  testOwner,
		ClientID: "client-1",
		StartUTC: start,
		EndUTC:   start.Add(time.Duration(minutes) * time.Minute),
		Status:   status,
	}
}

// far enough in the past that lead time never hides a slot
var longAgo = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestGenerateSlots_SydneyWindow(t *testing.T) {
	day := date(2024, 6, 10)
	windows := []domain.AvailabilityWindow{oneOffWindow(day, "09:00", "10:00", 30, 0, "Australia/Sydney")}

	slots, err := GenerateSlots(testOwner, day, windows, nil, longAgo, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC), slots[0].StartUTC)
	assert.Equal(t, time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC), slots[0].EndUTC)
	assert.Equal(t, time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC), slots[1].StartUTC)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), slots[1].EndUTC)
	for _, s := range slots {
		assert.Equal(t, 30, s.DurationMinutes)
		assert.True(t, s.Available)
	}
}

func TestGenerateSlots_RecurringWindowMatchesWeekday(t *testing.T) {
	// 2024-06-10 is a Monday
	windows := []domain.AvailabilityWindow{weeklyWindow(1, "10:00", "12:00", 60, 0, "UTC")}

	slots, err := GenerateSlots(testOwner, date(2024, 6, 10), windows, nil, longAgo, 0)
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	slots, err = GenerateSlots(testOwner, date(2024, 6, 11), windows, nil, longAgo, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_DropsTrailingShortSlot(t *testing.T) {
	day := date(2024, 6, 12)
	windows := []domain.AvailabilityWindow{oneOffWindow(day, "09:00", "10:50", 30, 0, "UTC")}

	slots, err := GenerateSlots(testOwner, day, windows, nil, longAgo, 0)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC), slots[2].EndUTC)
}

func TestGenerateSlots_RespectsBuffer(t *testing.T) {
	day := date(2024, 6, 12)
	windows := []domain.AvailabilityWindow{oneOffWindow(day, "09:00", "12:00", 45, 15, "Europe/Berlin")}

	slots, err := GenerateSlots(testOwner, day, windows, nil, longAgo, 0)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	windowEnd, err := ToUTCInstant(day, "12:00", "Europe/Berlin")
	require.NoError(t, err)

	for i, s := range slots {
		assert.Equal(t, 45*time.Minute, s.EndUTC.Sub(s.StartUTC))
		assert.False(t, s.EndUTC.After(windowEnd))
		if i > 0 {
			assert.GreaterOrEqual(t, s.StartUTC.Sub(slots[i-1].EndUTC), 15*time.Minute)
		}
	}
}

func TestGenerateSlots_MarksBookedAndLeadTime(t *testing.T) {
	day := date(2024, 6, 12)
	windows := []domain.AvailabilityWindow{oneOffWindow(day, "09:00", "13:00", 60, 0, "UTC")}
	sessions := []domain.Session{
		session("booked", time.Date(2024, 6, 12, 11, 30, 0, 0, time.UTC), 30, domain.SessionStatusScheduled),
		session("gone", time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC), 60, domain.SessionStatusCancelled),
	}
	// 09:00 and 10:00 start before now + 2h, 11:00 overlaps "booked", 12:00 is free
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(testOwner, day, windows, sessions, now, 2*time.Hour)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, []bool{false, false, false, true}, []bool{
		slots[0].Available, slots[1].Available, slots[2].Available, slots[3].Available,
	})
}

func TestGenerateSlots_LeadTimeBoundaryIsExclusive(t *testing.T) {
	day := date(2024, 6, 12)
	windows := []domain.AvailabilityWindow{oneOffWindow(day, "10:00", "11:00", 60, 0, "UTC")}
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(testOwner, day, windows, nil, now, 2*time.Hour)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].Available)
}

func TestGenerateSlots_IgnoresOtherOwnersAndInactive(t *testing.T) {
	day := date(2024, 6, 12)
	foreign := oneOffWindow(day, "09:00", "10:00", 30, 0, "UTC")
	foreign.OwnerID = "owner-2"
	inactive := oneOffWindow(day, "14:00", "15:00", 30, 0, "UTC")
	inactive.IsActive = false
	mine := oneOffWindow(day, "16:00", "17:00", 60, 0, "UTC")

	otherSession := session("x", time.Date(2024, 6, 12, 16, 0, 0, 0, time.UTC), 60, domain.SessionStatusScheduled)
	otherSession.OwnerID = "owner-2"

	slots, err := GenerateSlots(testOwner, day, []domain.AvailabilityWindow{foreign, inactive, mine}, []domain.Session{otherSession}, longAgo, 0)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
}

func TestGenerateSlots_SortedAcrossWindows(t *testing.T) {
	day := date(2024, 6, 12)
	windows := []domain.AvailabilityWindow{
		oneOffWindow(day, "15:00", "16:00", 30, 0, "UTC"),
		oneOffWindow(day, "09:00", "10:00", 30, 0, "UTC"),
		oneOffWindow(day, "09:00", "10:00", 30, 0, "Asia/Tokyo"),
	}

	slots, err := GenerateSlots(testOwner, day, windows, nil, longAgo, 0)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].StartUTC.Before(slots[i-1].StartUTC))
	}
	// Tokyo 09:00 is 00:00 UTC
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), slots[0].StartUTC)
}

func TestGenerateSlots_DSTDays(t *testing.T) {
	cases := []struct {
		day  time.Time
		want time.Time
	}{
		{date(2024, 3, 9), time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)},
		{date(2024, 3, 10), time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC)},
		{date(2024, 11, 2), time.Date(2024, 11, 2, 13, 0, 0, 0, time.UTC)},
		{date(2024, 11, 3), time.Date(2024, 11, 3, 14, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		windows := []domain.AvailabilityWindow{oneOffWindow(tc.day, "09:00", "10:00", 60, 0, "America/New_York")}
		slots, err := GenerateSlots(testOwner, tc.day, windows, nil, longAgo, 0)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, tc.want, slots[0].StartUTC, tc.day.Format(domain.DateFormat))
	}
}

func TestGenerateSlots_InvalidWindow(t *testing.T) {
	day := date(2024, 6, 12)

	cases := map[string]domain.AvailabilityWindow{
		"start after end":  oneOffWindow(day, "10:00", "09:00", 30, 0, "UTC"),
		"zero duration":    oneOffWindow(day, "09:00", "10:00", 0, 0, "UTC"),
		"negative buffer":  oneOffWindow(day, "09:00", "10:00", 30, -5, "UTC"),
		"start equals end": oneOffWindow(day, "09:00", "09:00", 30, 0, "UTC"),
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := GenerateSlots(testOwner, day, []domain.AvailabilityWindow{w}, nil, longAgo, 0)
			assert.ErrorIs(t, err, domain.ErrInvalidTime)
		})
	}

	_, err := GenerateSlots(testOwner, day, []domain.AvailabilityWindow{oneOffWindow(day, "09:00", "10:00", 30, 0, "Nowhere/City")}, nil, longAgo, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
}

func TestGenerateSlots_EmptyWithoutWindows(t *testing.T) {
	slots, err := GenerateSlots(testOwner, date(2024, 6, 12), nil, nil, longAgo, 0)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}
