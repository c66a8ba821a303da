// Package stringlist normalizes the historic storage formats of URL-list
// columns. The same column may hold a JSON array, a Postgres array
// literal, or plain comma/newline-delimited text, depending on which era
// of the schema wrote it. Parse accepts all of them; Encode is the single
// write path and preserves the NULL-when-empty convention.
package stringlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a stored value looks structured but
// cannot be parsed in any known representation.
var ErrMalformed = errors.New("stringlist: malformed stored value")

// Parse normalizes a stored list column into an ordered slice of strings.
// A nil pointer or empty string is the "no images" representation and
// yields a nil slice without error.
func Parse(raw *string) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	return ParseString(*raw)
}

// ParseString normalizes a raw stored value into an ordered slice of
// strings. Supported representations:
//
//   - JSON array: ["a","b"]
//   - Postgres array literal: {a,b} or {"a","b"}
//   - delimited text: one entry per line, or comma-separated
func ParseString(s string) ([]string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(trimmed, "["):
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return dropEmpty(items), nil
	case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
		return parseArrayLiteral(trimmed)
	default:
		return splitDelimited(trimmed), nil
	}
}

// Encode serializes a list for storage as a JSON array. An empty or nil
// list returns nil, which the store persists as SQL NULL, never an
// empty array. This is the only place the empty representation is chosen.
func Encode(items []string) *string {
	items = dropEmpty(items)
	if len(items) == 0 {
		return nil
	}
	// Marshal of []string cannot fail.
	b, _ := json.Marshal(items)
	s := string(b)
	return &s
}

// Remove returns items with every entry equal to value removed.
// Matching is exact and case-sensitive.
func Remove(items []string, value string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}

// parseArrayLiteral parses a Postgres text[] literal such as
// {a,b} or {"with, comma","esc\"aped"}.
func parseArrayLiteral(s string) ([]string, error) {
	inner := s[1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}

	var items []string
	var cur strings.Builder
	inQuotes := false
	escaped := false

	for _, r := range inner {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			items = append(items, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped || inQuotes {
		return nil, fmt.Errorf("%w: unterminated array literal %q", ErrMalformed, s)
	}
	items = append(items, strings.TrimSpace(cur.String()))
	return dropEmpty(items), nil
}

func splitDelimited(s string) []string {
	sep := ","
	if strings.Contains(s, "\n") {
		sep = "\n"
	}
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return dropEmpty(parts)
}

func dropEmpty(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
