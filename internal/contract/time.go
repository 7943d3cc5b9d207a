package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date representations used across input parsing and output rendering.
const (
	DateOnlyFormat = "2006-01-02" // canonical internal representation
	DateBRFormat   = "02/01/2006" // human-facing Brazilian format
)

// examDateLayouts are tried in order when parsing a date string.
// Day-first layouts come before month-first ones because the source
// reports are written in Brazilian Portuguese.
var examDateLayouts = []string{
	DateOnlyFormat,
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
	"1/2/2006",
}

// portugueseMonths maps lowercase month names to their numbers.
var portugueseMonths = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// portugueseDateRe matches long-form dates like "15 de janeiro de 2024".
var portugueseDateRe = regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+([a-zç]+)\s+de\s+(\d{4})`)

// ParseExamDate parses a date string in any of the supported formats:
// ISO, Brazilian numeric (day first) or Portuguese long form.
func ParseExamDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if m := portugueseDateRe.FindStringSubmatch(s); m != nil {
		if month, ok := portugueseMonths[strings.ToLower(m[2])]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if t.Day() == day {
				return t, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// FormatDateBR renders a time as DD/MM/YYYY for human-facing output.
func FormatDateBR(t time.Time) string {
	return t.Format(DateBRFormat)
}

// ParseFlexibleFloat parses a decimal number that may use a comma as the
// decimal separator, as written in Brazilian reports.
func ParseFlexibleFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("empty number string")
	}
	return strconv.ParseFloat(s, 64)
}
