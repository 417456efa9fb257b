package analysis

import (
	"encoding/json"
	"strings"
)

// Fallback values for responses that carry no parseable JSON object.
const (
	fallbackCommitMessage = "Update code"
	fallbackCodeQuality   = "Unknown"
)

// priorityKeys is the lookup order used when a field value turns out to be a
// nested JSON object instead of the plain text the model was asked for.
var priorityKeys = []string{"summary", "description", "message", "content", "text", "value"}

// Normalize converts raw model output into a Result. It never fails: the
// response is untrusted, partially structured data, so malformed input
// degrades into a best-effort record instead of aborting the operation.
func Normalize(raw string) *Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NewResult()
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || start >= end {
		return fallbackResult(trimmed)
	}

	// Parse only the brace-bounded substring; models like to wrap the JSON
	// in prose.
	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &fields); err != nil {
		return fallbackResult(trimmed)
	}

	r := &Result{
		Summary:          extractString(fields, "summary"),
		CodeQuality:      extractString(fields, "code_quality"),
		CommitMessage:    extractString(fields, "commit_message"),
		PRDescription:    extractString(fields, "pr_description"),
		Improvements:     extractStringArray(fields, "improvements"),
		Issues:           extractStringArray(fields, "issues"),
		Explanations:     extractStringArray(fields, "explanations"),
		SecurityNotes:    extractStringArray(fields, "security_notes"),
		PerformanceNotes: extractStringArray(fields, "performance_notes"),
	}

	r.Summary = sanitizeField(r.Summary, "Summary")
	r.CodeQuality = sanitizeField(r.CodeQuality, "CodeQuality")
	r.CommitMessage = sanitizeField(r.CommitMessage, "CommitMessage")
	r.PRDescription = sanitizeField(r.PRDescription, "PR Description")

	r.Improvements = cleanStringArray(r.Improvements)
	r.Issues = cleanStringArray(r.Issues)
	r.Explanations = cleanStringArray(r.Explanations)
	r.SecurityNotes = cleanStringArray(r.SecurityNotes)
	r.PerformanceNotes = cleanStringArray(r.PerformanceNotes)

	return r
}

// fallbackResult keeps the raw text visible instead of discarding the
// response outright.
func fallbackResult(text string) *Result {
	r := NewResult()
	r.Summary = text
	r.Explanations = []string{text}
	r.CommitMessage = fallbackCommitMessage
	r.PRDescription = text
	r.CodeQuality = fallbackCodeQuality
	return r
}

func extractString(fields map[string]any, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// extractStringArray keeps only string elements; nested objects and other
// kinds are dropped, never coerced.
func extractStringArray(fields map[string]any, key string) []string {
	v, ok := fields[key]
	if !ok {
		return []string{}
	}
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// sanitizeField recovers plain text from a field the model filled with JSON.
// The unwrap is one level deep only: the recovered value is returned as-is,
// matching the model's typical one-level mis-nesting.
func sanitizeField(field, displayName string) string {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return trimmed
	}
	if !json.Valid([]byte(trimmed)) {
		// Only looked like JSON; keep the text.
		return trimmed
	}

	if strings.HasPrefix(trimmed, "{") {
		if members, err := decodeObjectMembers(trimmed); err == nil {
			for _, key := range priorityKeys {
				for _, m := range members {
					if m.key != key {
						continue
					}
					if s, ok := m.value.(string); ok && s != "" {
						return s
					}
				}
			}
			// No priority key matched; take the first string value in
			// document order.
			for _, m := range members {
				if s, ok := m.value.(string); ok && s != "" {
					return s
				}
			}
		}
	}

	return sentinel(displayName)
}

// sentinel marks a field whose nested JSON carried no recoverable text.
func sentinel(displayName string) string {
	return displayName + " generated successfully"
}

// cleanStringArray sanitizes every element and drops the ones that came out
// empty or as the list sentinel. Order is preserved.
func cleanStringArray(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		s := sanitizeField(item, "Item")
		if s == "" || s == sentinel("Item") {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

type objectMember struct {
	key   string
	value any
}

// decodeObjectMembers parses a JSON object keeping the document order of its
// keys, which map-based decoding discards. The fallback scan in sanitizeField
// depends on that order being deterministic.
func decodeObjectMembers(s string) ([]objectMember, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	var members []objectMember
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, objectMember{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return members, nil
}
