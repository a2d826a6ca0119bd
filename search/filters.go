package search

import (
	"strconv"
	"strings"
)

// ParseYears parses a comma-separated list of years, e.g. "2008,2015".
// Whitespace around entries is ignored and empty entries are skipped. A
// malformed entry invalidates the whole list: nil is returned and no year
// filter applies, rather than silently filtering on a partial list.
func ParseYears(value string) []int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	var years []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		year, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		years = append(years, year)
	}
	return years
}
