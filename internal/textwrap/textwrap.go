// Package textwrap implements greedy word wrapping for report rendering.
package textwrap

import "strings"

// Wrap splits s into lines of at most width columns, breaking on spaces.
// Words longer than width are kept intact on their own line rather than
// broken mid-word. A width of zero or less returns the input unmodified.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= width {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}
