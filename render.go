package shapecheck

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck/internal/textwrap"
)

// Rendering limits for Explain. They are cosmetic only: JSON always carries
// the complete tree.
const (
	maxShownChildren = 10
	reprWidth        = 110
	reprLines        = 16
)

// Explain renders the error as an indented multi-line report. At most ten
// children are shown per node, followed by an ellipsis marker. Leaf failures
// show the offending value and the expected schema, word-wrapped at roughly
// reprWidth columns and capped at reprLines lines each.
func (e *Error) Explain() string { return e.explain("") }

func (e *Error) explain(indent string) string {
	b := &strings.Builder{}
	b.WriteString(indent + prettify(e.Msg, true) + "\n")

	sub := indent + "  "
	subsub := sub + "  "

	for _, d := range e.Details {
		switch v := d.Value.(type) {
		case Line:
			b.WriteString(sub + prettify(d.Label, true) + " " + string(v) + "\n")
		case List:
			b.WriteString(sub + prettify(d.Label, len(v) > 0) + "\n")
			writeLines(b, v, subsub)
		}
	}

	shown := e.Children
	if len(shown) > maxShownChildren {
		shown = shown[:maxShownChildren]
	}
	for _, c := range shown {
		if c.Label != "" {
			b.WriteString(sub + "- " + prettify(c.Label, true) + "\n")
			b.WriteString(c.Err.explain(subsub))
		} else {
			b.WriteString(c.Err.explain(sub))
		}
	}
	if len(e.Children) > maxShownChildren {
		b.WriteString(sub + ". . .")
	}

	if len(e.Children) == 0 {
		writeWrapped(b, formatValue(e.Val), sub)
		b.WriteString(sub + "did not match\n")
		writeWrapped(b, schemaName(e.Schema), sub)
	}

	return b.String()
}

// JSON returns the fully faithful structured form of the error:
// {message, value, schemaName, details, children}, where children is an
// ordered list of [label, child] pairs (label is nil when absent). Nothing is
// truncated, regardless of child count or value size.
func (e *Error) JSON() map[string]any {
	details := make(map[string]any, len(e.Details))
	for _, d := range e.Details {
		details[d.Label] = linesJSON(d.Value)
	}
	children := make([]any, 0, len(e.Children))
	for _, c := range e.Children {
		var label any
		if c.Label != "" {
			label = c.Label
		}
		children = append(children, []any{label, c.Err.JSON()})
	}
	return map[string]any{
		"message":    e.Msg,
		"value":      e.Val,
		"schemaName": schemaName(e.Schema),
		"details":    details,
		"children":   children,
	}
}

func linesJSON(x Lines) any {
	switch v := x.(type) {
	case Line:
		return string(v)
	case List:
		out := make([]any, 0, len(v))
		for _, l := range v {
			out = append(out, linesJSON(l))
		}
		return out
	default:
		return nil
	}
}

// writeLines renders nested detail lines, one extra indent per nesting level.
func writeLines(b *strings.Builder, x Lines, indent string) {
	switch v := x.(type) {
	case Line:
		b.WriteString(indent + string(v) + "\n")
	case List:
		for _, l := range v {
			writeLines(b, l, indent+"  ")
		}
	}
}

func writeWrapped(b *strings.Builder, s, indent string) {
	lines := textwrap.Wrap(s, reprWidth)
	if len(lines) > reprLines {
		lines = lines[:reprLines]
	}
	for _, l := range lines {
		b.WriteString(indent + l + "\n")
	}
}

// prettify capitalizes the first rune of s, optionally appending a colon.
func prettify(s string, colon bool) string {
	out := s
	if r := []rune(s); len(r) > 0 {
		out = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	if colon {
		out += ":"
	}
	return out
}

// formatValue renders a value compactly for messages and leaf reports. The
// output is JSON with a space after separators so it word-wraps sanely.
func formatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return spaceSeparators(b)
}

// spaceSeparators inserts a space after ':' and ',' outside of strings.
func spaceSeparators(b []byte) string {
	out := make([]byte, 0, len(b)+len(b)/4)
	inString := false
	escaped := false
	for _, c := range b {
		out = append(out, c)
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ':', ',':
			out = append(out, ' ')
		}
	}
	return string(out)
}

func schemaName(s Schema) string {
	if s == nil {
		return "unknown"
	}
	return s.String()
}
