package emit

import "strings"

// CleanContent normalizes whitespace without disturbing code structure:
// trailing whitespace is stripped per line, runs of blank lines collapse to
// at most two, and leading and trailing blank lines are removed entirely.
// Indentation is never touched.
func CleanContent(content string) string {
	lines := strings.Split(content, "\n")

	cleaned := make([]string, 0, len(lines))
	consecutiveEmpty := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			consecutiveEmpty++
			if consecutiveEmpty <= 2 {
				cleaned = append(cleaned, "")
			}
			continue
		}
		consecutiveEmpty = 0
		cleaned = append(cleaned, line)
	}

	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
