package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// weekdays indexed by the domain convention: Sunday = 0
var weekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// ValidateRecurrence checks that a rule is well formed and terminates
func ValidateRecurrence(rule domain.RecurrenceRule) error {
	switch rule.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly:
	default:
		return fmt.Errorf("%w: unknown frequency %q", domain.ErrInvalidRecurrence, rule.Frequency)
	}

	if rule.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1, got %d", domain.ErrInvalidRecurrence, rule.Interval)
	}

	if rule.Count < 0 {
		return fmt.Errorf("%w: negative count %d", domain.ErrInvalidRecurrence, rule.Count)
	}
	if rule.HasCount() && rule.HasUntil() {
		return fmt.Errorf("%w: count and until are mutually exclusive", domain.ErrInvalidRecurrence)
	}
	if !rule.HasCount() && !rule.HasUntil() {
		return fmt.Errorf("%w: rule has no termination (count or until)", domain.ErrInvalidRecurrence)
	}

	for _, wd := range rule.ByWeekday {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0-6", domain.ErrInvalidRecurrence, wd)
		}
	}

	return nil
}

// Expand lists the occurrence dates of a rule, starting at the anchor date.
// Dates are returned as midnight UTC in ascending order without duplicates.
//
// Interval windows are aligned to the anchor: with a weekly rule and interval 2
// the anchor's week is an active week, the week after it is skipped, and so on.
// ByWeekday selects days inside every active window; without it every window
// yields the anchor's own weekday (weekly) or its single day (daily).
// Until is inclusive. An Until before the anchor yields an empty list.
func Expand(anchorDate time.Time, rule domain.RecurrenceRule) ([]time.Time, error) {
	r, err := buildRRule(anchorDate, rule)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return []time.Time{}, nil
	}

	occurrences := r.All()
	dates := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, domain.DateOnly(occ))
	}

	return dates, nil
}

// ExpandAtMost works like Expand but stops after limit+1 dates, so a caller
// can detect an oversized rule without materializing all of its occurrences.
func ExpandAtMost(anchorDate time.Time, rule domain.RecurrenceRule, limit int) ([]time.Time, error) {
	r, err := buildRRule(anchorDate, rule)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return []time.Time{}, nil
	}

	dates := make([]time.Time, 0)
	next := r.Iterator()
	for len(dates) <= limit {
		occ, ok := next()
		if !ok {
			break
		}
		dates = append(dates, domain.DateOnly(occ))
	}

	return dates, nil
}

// buildRRule returns nil without error when the rule ends before the anchor
func buildRRule(anchorDate time.Time, rule domain.RecurrenceRule) (*rrule.RRule, error) {
	if err := ValidateRecurrence(rule); err != nil {
		return nil, err
	}

	anchor := domain.DateOnly(anchorDate)

	opts := rrule.ROption{
		Dtstart:  anchor,
		Interval: rule.Interval,
		// week windows start on the anchor's weekday so that intervals count from the anchor
		Wkst: weekdays[anchor.Weekday()],
	}

	switch rule.Frequency {
	case domain.FrequencyDaily:
		opts.Freq = rrule.DAILY
	case domain.FrequencyWeekly:
		opts.Freq = rrule.WEEKLY
	}

	if len(rule.ByWeekday) > 0 {
		opts.Byweekday = toRRuleWeekdays(rule.ByWeekday)
	}

	if rule.HasCount() {
		opts.Count = rule.Count
	} else {
		until := domain.DateOnly(*rule.Until)
		if until.Before(anchor) {
			return nil, nil
		}
		opts.Until = until
	}

	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecurrence, err)
	}
	return r, nil
}

func toRRuleWeekdays(days []int) []rrule.Weekday {
	uniq := make(map[int]struct{}, len(days))
	sorted := make([]int, 0, len(days))
	for _, d := range days {
		if _, ok := uniq[d]; ok {
			continue
		}
		uniq[d] = struct{}{}
		sorted = append(sorted, d)
	}
	sort.Ints(sorted)

	result := make([]rrule.Weekday, 0, len(sorted))
	for _, d := range sorted {
		result = append(result, weekdays[d])
	}
	return result
}
