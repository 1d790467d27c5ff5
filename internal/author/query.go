// Package author provides author name parsing and matching for filtering
// search results.
package author

import "strings"

// Query represents a parsed author search query.
type Query struct {
	First string // First name (may be empty for last-name-only queries)
	Last  string // Last name (required)
}

// ParseQuery parses an author search string into a structured Query.
//
// Supported formats:
//   - "Yu"           → last="Yu" (single word = last name only)
//   - "Timothy Yu"   → first="Timothy", last="Yu" (space-separated = First Last)
//   - "Yu, Timothy"  → first="Timothy", last="Yu" (comma = Last, First)
//
// Names are trimmed but case is preserved (matching is case-insensitive).
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	// Check for comma format: "Last, First"
	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Query{First: first, Last: last}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		// Single word = last name only
		return Query{Last: parts[0]}
	}

	// Multiple words: last word is last name, rest is first name
	// e.g., "Timothy C Yu" → first="Timothy C", last="Yu"
	last := parts[len(parts)-1]
	first := strings.Join(parts[:len(parts)-1], " ")
	return Query{First: first, Last: last}
}

// IsZero reports whether the query is empty.
func (q Query) IsZero() bool {
	return q.First == "" && q.Last == ""
}

// Canonical returns the query in "First Last" form for passing to search
// APIs that expect a plain name string.
func (q Query) Canonical() string {
	if q.First == "" {
		return q.Last
	}
	return q.First + " " + q.Last
}

// MatchesName checks if the query matches a display name like
// "Timothy C Yu".
//
// Matching rules:
//   - Last name: case-insensitive exact match against the final word
//   - First name: case-insensitive prefix match (if query has first name)
//
// This enables "Tim Yu" to match "Timothy C Yu" while preventing
// "Yu" from matching "Yujia Wang" (since "Yu" is not the last word).
func (q Query) MatchesName(displayName string) bool {
	if q.IsZero() {
		return false
	}

	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return false
	}

	last := parts[len(parts)-1]
	if !strings.EqualFold(q.Last, last) {
		return false
	}

	if q.First == "" {
		return true
	}

	first := strings.Join(parts[:len(parts)-1], " ")
	return strings.HasPrefix(
		strings.ToLower(first),
		strings.ToLower(q.First),
	)
}

// FilterNames returns the display names from the list that match the query.
func (q Query) FilterNames(names []string) []string {
	var out []string
	for _, n := range names {
		if q.MatchesName(n) {
			out = append(out, n)
		}
	}
	return out
}
