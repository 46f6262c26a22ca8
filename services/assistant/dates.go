package assistant

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ErrPastDate rejects relative dates that can only lie in the past.
var ErrPastDate = errors.New("you cannot book appointments for past dates")

// InvalidDateFormatError rejects date text the grammar cannot resolve.
type InvalidDateFormatError struct {
	Input string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: use 'today', 'tomorrow', a weekday name, 'next <weekday>', or YYYY-MM-DD", e.Input)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ResolveDate maps natural-language date text to a calendar date relative
// to now. The grammar:
//
//   - "today", "tomorrow" are literal; "yesterday" is always rejected.
//   - A bare weekday resolves to the next occurrence of that weekday,
//     counting today: "monday" said on a Monday means today.
//   - "next <weekday>" excludes today and otherwise lands on the next
//     occurrence, so it is always 1-7 days out.
//   - Anything else must parse as YYYY-MM-DD.
//
// Whether the resolved date is bookable (not in the past) is the booking
// service's decision, not this grammar's.
func ResolveDate(input string, now time.Time) (string, error) {
	text := strings.ToLower(strings.TrimSpace(input))

	switch text {
	case "today":
		return now.Format(dateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(dateLayout), nil
	case "yesterday":
		return "", ErrPastDate
	}

	if day, ok := containedWeekday(text); ok {
		ahead := int(day-now.Weekday()+7) % 7
		if strings.Contains(text, "next") && ahead == 0 {
			ahead = 7
		}
		return now.AddDate(0, 0, ahead).Format(dateLayout), nil
	}

	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input), now.Location())
	if err != nil {
		return "", &InvalidDateFormatError{Input: input}
	}
	return parsed.Format(dateLayout), nil
}

// containedWeekday returns the first weekday named in the text, scanning
// tokens left to right so input like "monday or friday" always resolves
// to the same day.
func containedWeekday(text string) (time.Weekday, bool) {
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ".,!?")
		if day, ok := weekdays[tok]; ok {
			return day, true
		}
	}
	return time.Sunday, false
}
