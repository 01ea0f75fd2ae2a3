package utils

import (
	"fmt"
	"strconv"
	"time"
)

const ISODateFormat = "2006-01-02"

// ResolvePeriod turns the query parameters of a summary request into an
// inclusive [start, end] pair. Either year or startDate/endDate must be
// given; year expands to Jan 1 through Dec 31 of that year. The end of the
// range is pushed to the last nanosecond of its day so timestamped
// transactions on the end date stay inside the period.
func ResolvePeriod(yearStr, startStr, endStr string) (time.Time, time.Time, error) {
	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid year %q", yearStr)
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		return start, end, nil
	}

	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("either year or both startDate and endDate are required")
	}
	start, err := time.Parse(ISODateFormat, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", startStr)
	}
	end, err := time.Parse(ISODateFormat, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q: expected YYYY-MM-DD", endStr)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate %s is after endDate %s", startStr, endStr)
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}
