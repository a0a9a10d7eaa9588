package league

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-month-year form league sites publish dates in.
const DateLayout = "02-01-2006"

// ParseDate converts a textual league date into a sortable time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time back into the textual league form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
