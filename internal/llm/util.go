// Package llm - util.go provides shared response-processing helpers.
package llm

import "strings"

// CleanJSONBlock recovers the JSON document from model output. Models
// often wrap JSON in ```json ... ``` fences or lead with conversational
// preamble even when instructed not to; both are stripped. Output that
// contains no JSON boundaries is returned trimmed, and validation
// rejects it downstream.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = stripFences(text)
	}
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return text
	}

	// Preamble before the document: slice from the first JSON opener to
	// its matching closer at the end.
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")
	start := objStart
	end := strings.LastIndex(text, "}")
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(text, "]")
	}
	if start == -1 || end <= start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}

func stripFences(text string) string {
	text = strings.TrimPrefix(text, "```")
	// Drop a language tag on the fence line ("json", "JSON", ...).
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "json")
		}
	} else {
		text = strings.TrimPrefix(text, "json")
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
