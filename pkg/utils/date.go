package utils

import (
	"time"
)

// DateLayout is the upstream provider's date key format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// LastDays returns the date keys for today and the preceding days-1 days,
// most recent first.
func LastDays(today time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, FormatDate(today.AddDate(0, 0, -i)))
	}
	return dates
}
