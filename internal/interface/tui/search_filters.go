package tui

import (
	"strings"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/dates"
)

// SearchFilters represents parsed filters from a search query
type SearchFilters struct {
	Query      string // The actual search text
	Lead       string // Lead id, or name with _ for spaces
	AfterDate  string // Inclusive YYYY-MM-DD
	BeforeDate string // Inclusive YYYY-MM-DD
}

// HasFilters reports whether any filter token was recognised
func (f SearchFilters) HasFilters() bool {
	return f.Lead != "" || f.AfterDate != "" || f.BeforeDate != ""
}

// ParseSearchQuery extracts filters from a search query string
// Supports:
//   - lead:<id or name> - filter by lead (use _ for spaces: lead:ada_lovelace)
//   - date:today, date:2024-11-01 - sessions on that day
//   - after:yesterday, before:next-friday - explicit date ranges
//
// Tokens whose date can't be parsed are ignored.
func ParseSearchQuery(query string, now time.Time) SearchFilters {
	filters := SearchFilters{}

	tokens := strings.Fields(query)
	var queryParts []string

	for _, token := range tokens {
		prefix, value, found := strings.Cut(token, ":")
		if !found || value == "" {
			queryParts = append(queryParts, token)
			continue
		}

		switch strings.ToLower(prefix) {
		case "lead":
			filters.Lead = value
		case "date":
			if day, err := dates.Day(value, now); err == nil {
				filters.AfterDate = day
				filters.BeforeDate = day
			}
		case "after":
			if day, err := dates.Day(value, now); err == nil {
				filters.AfterDate = day
			}
		case "before":
			if day, err := dates.Day(value, now); err == nil {
				filters.BeforeDate = day
			}
		default:
			// Not a filter, add to query
			queryParts = append(queryParts, token)
		}
	}

	filters.Query = strings.Join(queryParts, " ")
	return filters
}
