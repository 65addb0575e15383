package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRe       = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM)`)
	numericDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)
	monthDayRe    = regexp.MustCompile(`\b(JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER|JAN|FEB|MAR|APR|JUN|JUL|AUG|SEP|SEPT|OCT|NOV|DEC)\.?\s+(\d{1,2})\b`)
	weekdayRe     = regexp.MustCompile(`\b(SUNDAY|MONDAY|TUESDAY|WEDNESDAY|THURSDAY|FRIDAY|SATURDAY|SUN|MON|TUE|TUES|WED|THU|THUR|THURS|FRI|SAT)\b`)
)

var monthByName = map[string]time.Month{
	"JANUARY": time.January, "JAN": time.January,
	"FEBRUARY": time.February, "FEB": time.February,
	"MARCH": time.March, "MAR": time.March,
	"APRIL": time.April, "APR": time.April,
	"MAY": time.May,
	"JUNE": time.June, "JUN": time.June,
	"JULY": time.July, "JUL": time.July,
	"AUGUST": time.August, "AUG": time.August,
	"SEPTEMBER": time.September, "SEP": time.September, "SEPT": time.September,
	"OCTOBER": time.October, "OCT": time.October,
	"NOVEMBER": time.November, "NOV": time.November,
	"DECEMBER": time.December, "DEC": time.December,
}

var weekdayByName = map[string]time.Weekday{
	"SUNDAY": time.Sunday, "SUN": time.Sunday,
	"MONDAY": time.Monday, "MON": time.Monday,
	"TUESDAY": time.Tuesday, "TUE": time.Tuesday, "TUES": time.Tuesday,
	"WEDNESDAY": time.Wednesday, "WED": time.Wednesday,
	"THURSDAY": time.Thursday, "THU": time.Thursday, "THUR": time.Thursday, "THURS": time.Thursday,
	"FRIDAY": time.Friday, "FRI": time.Friday,
	"SATURDAY": time.Saturday, "SAT": time.Saturday,
}

// ParseStartTime resolves the raw time/status text of a card into a
// concrete start time relative to now. The date is resolved through an
// ordered fallback chain: explicit numeric date, month-name date
// (rolled forward a year when clearly in the past), TODAY/TOMORROW
// literals, a weekday name resolved to its next occurrence, and finally
// today. Text without a clock token is not time-stamped at all and the
// second return is false.
func ParseStartTime(text string, now time.Time) (time.Time, bool) {
	upper := strings.ToUpper(text)

	clock := clockRe.FindStringSubmatch(upper)
	if clock == nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(clock[1])
	minute, _ := strconv.Atoi(clock[2])
	if clock[3] == "PM" && hour != 12 {
		hour += 12
	}
	if clock[3] == "AM" && hour == 12 {
		hour = 0
	}

	date := resolveDate(upper, now)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location()), true
}

func resolveDate(upper string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if m := numericDateRe.FindStringSubmatch(upper); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
			year = y
		}
		if month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		}
	}

	if m := monthDayRe.FindStringSubmatch(upper); m != nil {
		month := monthByName[m[1]]
		day, _ := strconv.Atoi(m[2])
		date := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
		// A month-name date has no year; anything more than a day in the
		// past must mean next season.
		if date.Before(today.AddDate(0, 0, -1)) {
			date = date.AddDate(1, 0, 0)
		}
		return date
	}

	if strings.Contains(upper, "TOMORROW") {
		return today.AddDate(0, 0, 1)
	}
	if strings.Contains(upper, "TODAY") {
		return today
	}

	if m := weekdayRe.FindStringSubmatch(upper); m != nil {
		target := weekdayByName[m[1]]
		days := (int(target) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, days)
	}

	return today
}
