package translator

import (
	"strings"
)

// reactMarkers are role labels of a leaked step-by-step reasoning trace.
// A response carrying any of these is treated as contaminated and only a
// marker-free code line may be salvaged from it.
var reactMarkers = []string{
	"thought:",
	"action:",
	"action input:",
	"observation:",
	"final answer:",
	"question:",
}

// rejectKeywords mark lines that are narration rather than code.
var rejectKeywords = []string{
	"thought:", "action:", "observation:", "final answer:", "question:",
	"here is", "here's", "the code", "to answer", "this will",
	"you can use", "we can", "let me", "i will", "i need",
	"note:", "explanation:", "query:", "output:", "returns:",
	"this code", "http",
}

// Sanitize reduces a raw model response to a single candidate expression.
// Returns empty string when no code-bearing line survives.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	text = stripCodeFences(text)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, rejectKeywords) {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from ") {
			continue
		}
		if !referencesFrame(line) {
			continue
		}
		// first valid code line wins
		return line
	}

	// Contaminated responses sometimes glue code onto a marker line
	// ("Action Input: df.head()"). Salvage the code tail when present.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		for _, marker := range reactMarkers {
			if idx := strings.Index(lower, marker); idx >= 0 {
				tail := strings.TrimSpace(line[idx+len(marker):])
				if referencesFrame(tail) && !containsAny(strings.ToLower(tail), reactMarkers) {
					return tail
				}
			}
		}
	}

	return ""
}

func stripCodeFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	if idx := strings.Index(text, "```python"); idx >= 0 {
		rest := text[idx+len("```python"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	parts := strings.Split(text, "```")
	if len(parts) >= 3 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "```", ""))
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// referencesFrame reports whether a line contains actual dataframe code.
func referencesFrame(line string) bool {
	if strings.Contains(line, "df[") || strings.Contains(line, "df.") {
		return true
	}
	if strings.HasPrefix(line, "(") && strings.Contains(line, "df") {
		return true
	}
	if strings.HasPrefix(line, "len(df") {
		return true
	}
	return false
}
