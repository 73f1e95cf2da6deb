package appointments

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/petspa/internal/constants"
)

// FormatDateForAPI renders t's local calendar day as YYYY-MM-DD.
func FormatDateForAPI(t time.Time) string {
	return t.In(time.Local).Format(constants.DateFormat)
}

// FormatTimeForAPI renders t's local wall clock as HH:mm, dropping seconds.
func FormatTimeForAPI(t time.Time) string {
	return t.In(time.Local).Format(constants.TimeFormat)
}

// ParseAPIDate parses YYYY-MM-DD as local midnight of that day.
func ParseAPIDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseAPITime parses HH:mm, also accepting HH:mm:ss since some backends
// serialize seconds. The result has a zero date in the local zone.
func ParseAPITime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{constants.TimeFormat, "15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected HH:mm)", s)
}

// NormalizeTime rewrites an HH:mm[:ss] string as HH:mm.
func NormalizeTime(s string) (string, error) {
	t, err := ParseAPITime(s)
	if err != nil {
		return "", err
	}
	return t.Format(constants.TimeFormat), nil
}

// Today returns local midnight of the current day.
func Today(now time.Time) time.Time {
	y, m, d := now.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
