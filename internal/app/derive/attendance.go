// internal/app/derive/attendance.go
package derive

import (
	"sort"
	"time"

	"memberdash/internal/domain/models"
)

// ComputeStats derives attendance statistics from a member's records.
//
// Window counts (month/week/trailing 28 days) count every record, including
// several on the same day. Streaks count calendar days: a day with three
// check-ins advances a streak once. Streaks are computed over the set of
// distinct calendar days, walking from asOf backwards for the current streak
// and over consecutive day deltas for the longest one.
func ComputeStats(records []models.AttendanceRecord, asOf time.Time) models.AttendanceStats {
	stats := models.AttendanceStats{}
	if len(records) == 0 {
		return stats
	}

	stats.TotalVisits = len(records)

	monthStart := StartOfMonth(asOf)
	weekStart := StartOfWeek(asOf)
	fourWeeksAgo := asOf.Add(-28 * 24 * time.Hour)

	var last time.Time
	recent := 0
	for _, r := range records {
		ts := r.Timestamp
		if !ts.After(asOf) {
			if !ts.Before(monthStart) {
				stats.ThisMonthVisits++
			}
			if !ts.Before(weekStart) {
				stats.ThisWeekVisits++
			}
		}
		if !ts.Before(fourWeeksAgo) && !ts.After(asOf) {
			recent++
		}
		if ts.After(last) {
			last = ts
		}
	}
	stats.AverageWeeklyVisits = (recent + 2) / 4 // round to nearest
	if !last.IsZero() {
		lv := last
		stats.LastVisit = &lv
	}

	days := distinctDays(records, asOf.Location())
	stats.CurrentStreak = currentStreak(days, asOf)
	stats.LongestStreak = longestStreak(days)
	return stats
}

// distinctDays returns the distinct calendar days (midnight-truncated in
// loc) that have at least one record, sorted ascending.
func distinctDays(records []models.AttendanceRecord, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool, len(records))
	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		d := startOfDay(r.Timestamp.In(loc))
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// currentStreak walks distinct days backwards from asOf. The streak is n
// when there is an attended day at offset 0..n-1 from today; the walk stops
// at the first gap.
func currentStreak(days []time.Time, asOf time.Time) int {
	today := startOfDay(asOf)
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		offset := daysBetween(days[i], today)
		if offset < 0 {
			continue // future record, ignore
		}
		if offset == streak {
			streak++
		} else if offset > streak {
			break
		}
	}
	return streak
}

// longestStreak scans ascending distinct days; a delta of exactly one day
// extends the run, anything else resets it. One attended day is a streak
// of one.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// VisitDuration computes the minutes between two wall-clock HH:MM strings,
// rolling over midnight when the check-out reads earlier than the check-in.
// Unparseable input yields zero.
func VisitDuration(checkIn, checkOut string) int {
	in, ok1 := parseClock(checkIn)
	out, ok2 := parseClock(checkOut)
	if !ok1 || !ok2 {
		return 0
	}
	d := out - in
	if d < 0 {
		d += 24 * 60
	}
	return d
}

func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// StartOfWeek returns midnight of the Monday of asOf's week.
func StartOfWeek(asOf time.Time) time.Time {
	d := startOfDay(asOf)
	wd := int(d.Weekday())
	if wd == 0 { // Sunday belongs to the week that started six days earlier
		wd = 7
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// StartOfMonth returns midnight of the first day of asOf's month.
func StartOfMonth(asOf time.Time) time.Time {
	return time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b (both already
// midnight-truncated). AddDate-based instead of duration division so DST
// transitions do not skew the count.
func daysBetween(a, b time.Time) int {
	n := 0
	for a.Before(b) {
		a = a.AddDate(0, 0, 1)
		n++
	}
	for a.After(b) {
		a = a.AddDate(0, 0, -1)
		n--
	}
	return n
}
