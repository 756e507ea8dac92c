// Package temporal classifies free text as referring to a future date or
// not. Dates written with an explicit weekday resolve their year by probing
// which nearby year makes the weekday line up; a stated weekday that never
// lands on a future date within the probe window is treated as authoritative
// negative evidence.
package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	weekdayDateRe = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日（([月火水木金土日])）`)
	monthDayRe    = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)
	slashDateRe   = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)
	fullDateRe    = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)

	// Sentence forms that mark a message as past or in progress.
	pastPresentRes = []*regexp.Regexp{
		regexp.MustCompile(`今出発`),
		regexp.MustCompile(`今帰`),
		regexp.MustCompile(`今向かっ`),
		regexp.MustCompile(`今移動`),
		regexp.MustCompile(`現在.*中`),
		regexp.MustCompile(`終わりまして`),
		regexp.MustCompile(`開始です`),
		regexp.MustCompile(`始まり`),
		regexp.MustCompile(`しました`),
		regexp.MustCompile(`ました`),
	}

	// これから followed by an action verb reads as "starting right now",
	// not a future plan.
	koreKaraNowRe = regexp.MustCompile(`これから.*(?:し|開始|帰|向かう|移動)`)

	futureKeywords = []string{"今後", "次回", "来月", "来年", "将来", "今度", "次の", "近日", "予定"}

	kanjiWeekdays = map[string]time.Weekday{
		"日": time.Sunday,
		"月": time.Monday,
		"火": time.Tuesday,
		"水": time.Wednesday,
		"木": time.Thursday,
		"金": time.Friday,
		"土": time.Saturday,
	}
)

// RefersToFuture reports whether text mentions a date strictly after ref.
//
// Pattern families are tried most specific first. The weekday-qualified form
// decides on its first match: if no year in ref.Year()..ref.Year()+2 puts
// that month/day on the stated weekday in the future, the whole text is ruled
// out regardless of anything else it says. Texts with no date at all fall
// back to lexical cues, with past and progressive phrasing vetoing future
// keywords.
func RefersToFuture(text string, ref time.Time) bool {
	refDate := dateOnly(ref)

	if m := weekdayDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		_, ok := ResolveWeekdayDate(month, day, m[3], ref)
		return ok
	}

	for _, m := range monthDayRe.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if futureMonthDay(month, day, refDate) {
			return true
		}
	}
	for _, m := range slashDateRe.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if futureMonthDay(month, day, refDate) {
			return true
		}
	}
	for _, m := range fullDateRe.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if target, valid := makeDate(year, month, day); valid && target.After(refDate) {
			return true
		}
	}

	return lexicalFuture(text)
}

// ResolveWeekdayDate probes ref.Year() through ref.Year()+2 for the year in
// which month/day falls on the kanji weekday and lies strictly after ref.
// Returns false when no year in the window qualifies.
func ResolveWeekdayDate(month, day int, weekday string, ref time.Time) (time.Time, bool) {
	want, known := kanjiWeekdays[weekday]
	if !known {
		return time.Time{}, false
	}
	refDate := dateOnly(ref)
	for offset := 0; offset < 3; offset++ {
		cand, valid := makeDate(ref.Year()+offset, month, day)
		if valid && cand.Weekday() == want && cand.After(refDate) {
			return cand, true
		}
	}
	return time.Time{}, false
}

func futureMonthDay(month, day int, refDate time.Time) bool {
	target, valid := makeDate(refDate.Year(), month, day)
	if !valid {
		return false
	}
	// A month already behind us means next year's occurrence. A past day in
	// the current or a later month stays in this year and is simply past.
	if target.Before(refDate) && time.Month(month) < refDate.Month() {
		target, valid = makeDate(refDate.Year()+1, month, day)
		if !valid {
			return false
		}
	}
	return target.After(refDate)
}

// HasFutureScheduleDate is the stricter secondary check applied to curated
// note entries during future-only filtering. It only considers bare
// month-day mentions and, unlike RefersToFuture, refuses to roll mid-year
// months forward when the reference sits late in the year: in October, a
// "5月" mention is last spring, not next year's plan.
func HasFutureScheduleDate(text string, ref time.Time) bool {
	refDate := dateOnly(ref)
	check := func(month, day int) bool {
		target, valid := makeDate(refDate.Year(), month, day)
		if !valid {
			return false
		}
		if target.Before(refDate) {
			if refDate.Month() >= time.October && month >= 4 && month <= 9 {
				return false
			}
			if time.Month(month) < refDate.Month() {
				target, valid = makeDate(refDate.Year()+1, month, day)
				if !valid {
					return false
				}
			}
		}
		return target.After(refDate)
	}

	for _, m := range monthDayRe.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if check(month, day) {
			return true
		}
	}
	for _, m := range slashDateRe.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if check(month, day) {
			return true
		}
	}
	return false
}

func lexicalFuture(text string) bool {
	for _, re := range pastPresentRes {
		if re.MatchString(text) {
			return false
		}
	}
	if strings.Contains(text, "これから") {
		return !koreKaraNowRe.MatchString(text)
	}
	for _, kw := range futureKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func makeDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
