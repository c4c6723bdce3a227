package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingComma     = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyPattern    = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlChars      = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ParseAIJSON parses JSON produced by a model. It accepts pure JSON, fenced
// code blocks, JSON embedded in prose, and objects with trailing commas or
// unquoted keys
func ParseAIJSON(input string, target interface{}) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	candidates := []string{}
	if m := fencedJSONPattern.FindStringSubmatch(input); len(m) > 1 {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if start := strings.Index(input, "{"); start >= 0 {
		if obj := extractBalanced(input[start:], '{', '}'); obj != "" {
			candidates = append(candidates, obj)
		}
	}
	candidates = append(candidates, repairJSON(input))

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if err := json.Unmarshal([]byte(c), target); err == nil {
			return nil
		}
		if err := json.Unmarshal([]byte(repairJSON(c)), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", Truncate(input, 100))
}

// ToolQuery pulls the "query" argument out of a tool call's arguments
// Arguments that are not a JSON object are used verbatim, so a model that
// sends plain text still reaches the tool
func ToolQuery(arguments string) string {
	trimmed := strings.TrimSpace(arguments)
	if trimmed == "" {
		return ""
	}

	var args map[string]interface{}
	if err := ParseAIJSON(trimmed, &args); err == nil {
		for _, key := range []string{"query", "input", "tool_input", "__arg1"} {
			if v, ok := args[key].(string); ok {
				return v
			}
		}
		// a single-field object is taken as the query whatever its key
		if len(args) == 1 {
			for _, v := range args {
				if s, ok := v.(string); ok {
					return s
				}
			}
		}
		return ""
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		return s
	}
	return trimmed
}

// extractBalanced returns the first balanced open/close span, ignoring braces inside strings
func extractBalanced(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		switch {
		case escape:
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

func repairJSON(input string) string {
	s := trailingComma.ReplaceAllString(input, "$1")
	s = bareKeyPattern.ReplaceAllString(s, `$1"$2"$3`)
	s = singleToDoubleQuotes(s)
	return controlChars.ReplaceAllString(s, "")
}

// singleToDoubleQuotes swaps quote characters that delimit values, leaving apostrophes alone
func singleToDoubleQuotes(input string) string {
	var b strings.Builder
	inDouble := false
	escape := false
	prev := rune(0)

	for i, ch := range input {
		out := ch
		switch {
		case escape:
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"':
			inDouble = !inDouble
		case ch == '\'' && !inDouble:
			if i == 0 || strings.ContainsRune(":,[{ ", prev) || nextIsDelimiter(input[i+1:]) {
				out = '"'
			}
		}
		b.WriteRune(out)
		prev = ch
	}
	return b.String()
}

func nextIsDelimiter(rest string) bool {
	rest = strings.TrimLeft(rest, " ")
	return rest == "" || strings.ContainsAny(rest[:1], ":,}]")
}

// Truncate shortens s to at most maxLen bytes, marking the cut
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
