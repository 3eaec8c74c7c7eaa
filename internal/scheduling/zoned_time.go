package scheduling

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // IANA database embedded so conversion does not depend on the host

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const locationCacheSize = 512

// parsed zones by IANA id
var locations = newLocationCache()

func newLocationCache() *lru.Cache[string, *time.Location] {
	cache, err := lru.New[string, *time.Location](locationCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}

// LoadLocation resolves an IANA timezone id.
// Empty ids and "Local" are rejected: the host zone is never a valid owner timezone.
func LoadLocation(tz string) (*time.Location, error) {
	if strings.TrimSpace(tz) == "" {
		return nil, fmt.Errorf("%w: empty timezone", domain.ErrInvalidTimezone)
	}
	if tz == "Local" {
		return nil, fmt.Errorf("%w: %q is not an IANA timezone", domain.ErrInvalidTimezone, tz)
	}
	if loc, ok := locations.Get(tz); ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidTimezone, tz, err)
	}

	locations.Add(tz, loc)
	return loc, nil
}

// ToUTCInstant converts a local calendar date and an "HH:MM" wall-clock time in
// the given IANA timezone to a UTC instant. Only the year, month and day of date are used.
func ToUTCInstant(date time.Time, hhmm string, tz string) (time.Time, error) {
	tod, err := types.ParseTimeOfDay(hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidTime, err)
	}
	return ToUTC(date, tod, tz)
}

// ToUTC is ToUTCInstant for an already parsed time of day
func ToUTC(date time.Time, tod types.TimeOfDay, tz string) (time.Time, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return toUTC(date, tod, loc), nil
}

// toUTC applies the zone offset in effect at that local date and time, so
// dates on either side of a DST switch get their own offset.
// Wall-clock times inside a spring-forward gap are normalized forward by the gap length.
func toUTC(date time.Time, tod types.TimeOfDay, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), 0, 0, loc).UTC()
}

// LocalDate returns the calendar date (as midnight UTC) of instant in loc
func LocalDate(instant time.Time, loc *time.Location) time.Time {
	return domain.DateOnly(instant.In(loc))
}
