package biztime

import "time"

// IsWeekend reports whether t falls on Saturday or Sunday in t's location.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddWorkingDays advances start one calendar day at a time and counts only
// days that land on Monday through Friday, stopping once days have been
// counted. There is no holiday calendar. days <= 0 returns start unchanged.
//
// The weekday is evaluated in start's location, so pass business-timezone
// instants (see ToBizTimezone).
func AddWorkingDays(start time.Time, days int) time.Time {
	current := start
	for counted := 0; counted < days; {
		current = current.AddDate(0, 0, 1)
		if !IsWeekend(current) {
			counted++
		}
	}
	return current
}
