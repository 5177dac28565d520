// Package parser turns raw model responses into structured results. Every
// parse function is total: malformed responses degrade to heuristic text
// extraction and finally to fixed placeholder content, never to an error.
package parser

import (
	"regexp"
	"strings"
	"time"
)

var (
	sectionSplitRe = regexp.MustCompile(`\d+\.\s*`)
	termLineRe     = regexp.MustCompile(`(.+?)[：:]\s*(.+)`)
	bulletPrefixRe = regexp.MustCompile(`^[-•]\s*`)
)

// extractJSONSpan returns the widest substring starting at the first '{' and
// ending at the last '}', or "" when the response carries no braces.
func extractJSONSpan(response string) string {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return response[start : end+1]
}

// splitNumberedSections splits a text response at numbered list markers.
func splitNumberedSections(response string) []string {
	return sectionSplitRe.Split(response, -1)
}

// findSection returns the first section containing any of the given markers.
func findSection(sections []string, markers ...string) (string, bool) {
	for _, section := range sections {
		for _, marker := range markers {
			if strings.Contains(section, marker) {
				return section, true
			}
		}
	}
	return "", false
}

// parseTermLines extracts 术语：译法 pairs from the lines of a section.
func parseTermLines(section string) map[string]string {
	terms := map[string]string{}
	for _, line := range strings.Split(section, "\n") {
		if match := termLineRe.FindStringSubmatch(line); match != nil {
			terms[strings.TrimSpace(match[1])] = strings.TrimSpace(match[2])
		}
	}
	return terms
}

// parseSuggestionLines extracts bullet-stripped suggestion lines, skipping the
// header line naming the section.
func parseSuggestionLines(section string) []string {
	var suggestions []string
	for _, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" || strings.Contains(line, "建议") {
			continue
		}
		cleaned := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if cleaned != "" {
			suggestions = append(suggestions, cleaned)
		}
	}
	return suggestions
}

// splitLines splits a section into trimmed lines.
func splitLines(section string) []string {
	raw := strings.Split(section, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func containsAny(s string, markers ...string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// nowISO formats the current time the way clients expect analysis timestamps.
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// stringField reads the first non-empty string under any of the given keys.
func stringField(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := data[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// mapField reads the first object value under the given keys, coercing its
// members to strings.
func mapField(data map[string]any, keys ...string) map[string]string {
	for _, key := range keys {
		obj, ok := data[key].(map[string]any)
		if !ok {
			continue
		}
		result := map[string]string{}
		for k, v := range obj {
			if s, ok := v.(string); ok {
				result[k] = s
			}
		}
		return result
	}
	return nil
}

// stringSliceField reads an array of strings under the given key.
func stringSliceField(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	var values []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
