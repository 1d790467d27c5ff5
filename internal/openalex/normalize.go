package openalex

import "strings"

// NormalizeID reduces an OpenAlex author identifier to its bare form.
// OpenAlex returns IDs as full URLs ("https://openalex.org/A5023888391");
// the rest of the system works with the trailing segment ("A5023888391").
// A value that is not a URL is returned unchanged.
func NormalizeID(id string) string {
	if id == "" {
		return ""
	}
	if strings.HasPrefix(id, "http") {
		trimmed := strings.TrimRight(id, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			return trimmed[idx+1:]
		}
	}
	return id
}
