// Package era parses the corpus's era-based timestamps and derives the
// recent/future signals used by re-ranking and future-only filtering.
//
// The wire form is fixed: "E<n>/MM/DD(weekday) HH:MM" where the Gregorian
// year is BaseYear + n and the weekday is a single kanji. Anything that
// does not match yields "signal absent", never an error: an undated or
// garbled timestamp must not get a document discarded.
package era

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// BaseYear is the fixed offset for the single era in use:
// Gregorian year = BaseYear + era index.
const BaseYear = 2018

// DefaultRecentDays is the staleness window for IsRecent.
const DefaultRecentDays = 30

var weekdayKanji = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// timestampRe is start-anchored only; trailing text after the minutes is
// tolerated, matching how ingestion appends nothing but defensive parsers
// shouldn't care.
var timestampRe = regexp.MustCompile(`^E(\d+)/(\d{1,2})/(\d{1,2})\([月火水木金土日]\)\s+(\d{1,2}):(\d{2})`)

// Parse converts an era timestamp to a time.Time. The second return is
// false for any malformed or calendar-invalid input.
func Parse(s string) (time.Time, bool) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	idx, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	year := BaseYear + idx
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	// time.Date normalizes out-of-range components (e.g. Feb 30 → Mar 2);
	// reject anything that moved.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Format renders a time as an era timestamp string (the Parse round-trip).
func Format(t time.Time) string {
	return fmt.Sprintf("E%d/%02d/%02d(%s) %02d:%02d",
		t.Year()-BaseYear, int(t.Month()), t.Day(), weekdayKanji[t.Weekday()], t.Hour(), t.Minute())
}

// Index returns the era index of a timestamp string.
func Index(s string) (int, bool) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	idx, _ := strconv.Atoi(m[1])
	return idx, true
}

// IndexOf returns the era index for a Gregorian date.
func IndexOf(t time.Time) int { return t.Year() - BaseYear }

// Label returns the era label ("E7") of a timestamp string, for the
// analytics time distribution. Unparsable input yields "".
func Label(s string) string {
	idx, ok := Index(s)
	if !ok {
		return ""
	}
	return "E" + strconv.Itoa(idx)
}

// IsRecent reports whether the timestamp falls within thresholdDays of the
// reference. Missing or unparsable timestamps fail open (recent), so
// undated content is never aged out.
func IsRecent(timestamp string, ref time.Time, thresholdDays int) bool {
	if timestamp == "" {
		return true
	}
	t, ok := Parse(timestamp)
	if !ok {
		return true
	}
	days := int(ref.Sub(t).Hours() / 24)
	return days <= thresholdDays
}

// IsFuture reports whether the timestamp's date is strictly after the
// reference date. Missing or unparsable timestamps fail closed.
func IsFuture(timestamp string, ref time.Time) bool {
	if timestamp == "" {
		return false
	}
	t, ok := Parse(timestamp)
	if !ok {
		return false
	}
	return dateOnly(t).After(dateOnly(ref))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
