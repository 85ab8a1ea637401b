package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// SortKey orders names case-insensitively, ignoring leading quote characters.
func SortKey(name string) string {
	return strings.ToLower(strings.TrimLeft(name, `"'`))
}

// CompareNames orders by SortKey, falling back to the raw string so the order is total.
func CompareNames(a, b string) int {
	if c := strings.Compare(SortKey(a), SortKey(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// SortNames sorts names in place by CompareNames.
func SortNames(names []string) {
	slices.SortFunc(names, CompareNames)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q (want YYYY-MM-DD)", ErrInvalidValue, s)
	}
	return t, nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
