// Package dates turns user-typed dates ("tomorrow", "next friday",
// "2025-03-01") into calendar days.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DayLayout is the stored session date format
const DayLayout = "2006-01-02"

var layouts = []string{
	DayLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// Parse resolves s relative to now. Fixed layouts win over natural
// language so ISO dates are never reinterpreted.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}

	// Filter tokens can't contain spaces, so "next-week" means "next week"
	text := strings.ReplaceAll(s, "-", " ")
	result, err := parser.Parse(text, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	return result.Time, nil
}

// Day parses s and formats it as YYYY-MM-DD
func Day(s string, now time.Time) (string, error) {
	t, err := Parse(s, now)
	if err != nil {
		return "", err
	}
	return t.Format(DayLayout), nil
}
