package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from a model reply. Replies
// may wrap the JSON in a markdown fence or surround it with prose; the
// fence contents win, then the first balanced object or array.
func CleanJSONBlock(text string) string {
	trimmed := strings.TrimSpace(text)

	if body, ok := fencedBlock(trimmed); ok {
		trimmed = strings.TrimSpace(body)
	}
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return trimmed
	}

	if obj, ok := extractJSONObject(trimmed); ok {
		return obj
	}
	if arr, ok := extractJSONArray(trimmed); ok {
		return arr
	}
	return trimmed
}

// fencedBlock returns the contents of the first markdown code fence,
// dropping a language tag such as "json" on the opening line.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	body := text[start+3:]

	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		tag := strings.TrimSpace(body[:nl])
		if tag != "" && len(tag) <= 10 && !strings.ContainsAny(tag, "{}[]\"") {
			body = body[nl+1:]
		}
	}

	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return body, true
}

// extractJSONObject returns the first balanced {...} in text.
func extractJSONObject(text string) (string, bool) {
	return balanced(text, '{', '}')
}

// extractJSONArray returns the first balanced [...] in text.
func extractJSONArray(text string) (string, bool) {
	return balanced(text, '[', ']')
}

// balanced finds the first open byte and returns the substring through
// its matching close. Brackets inside JSON strings do not count, and
// escaped quotes do not end a string.
func balanced(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
