package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLen = 512

var wsPattern = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a SQL statement to one line and truncates
// it so span attributes stay small.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := wsPattern.ReplaceAllString(query, " ")
	if len(flat) <= maxTracedQueryLen {
		return flat
	}

	return flat[:maxTracedQueryLen] + "..."
}
