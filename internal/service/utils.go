package service

import (
	"strings"
	"time"
)

// sanitizeText drops invalid UTF-8 and NUL bytes, both rejected by PostgreSQL text columns.
func sanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
