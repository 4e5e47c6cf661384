package extract

import (
	"regexp"
	"strings"
)

var reBlankRuns = regexp.MustCompile(`\n{3,}`)

// NormalizeText collapses carriage returns to line breaks, squeezes runs of
// blank lines down to one, and trims leading/trailing whitespace. Applied to
// every extracted body so downstream prompts and exports see uniform text.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	s = strings.Join(lines, "\n")
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
