package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

// errorEntry is a unified view over a page-level GlobalError and an
// action-level ActionError, so errors.md's count/list and index.md's
// pass/fail status agree on the same combined set.
type errorEntry struct {
	message string
	stack   string
}

// collectErrors returns every error in the trace: global (uncaught) page
// errors first, followed by the errors recorded against individual actions,
// in action order.
func collectErrors(t *model.TraceContext) []errorEntry {
	entries := make([]errorEntry, 0, len(t.Errors)+len(t.Actions))
	for _, e := range t.Errors {
		entries = append(entries, errorEntry{message: e.Message, stack: formatStackFrames(e.Stack)})
	}
	for _, a := range t.Actions {
		if a.Error != nil {
			entries = append(entries, errorEntry{message: a.Error.Message, stack: a.Error.Stack})
		}
	}
	return entries
}

func formatStackFrames(frames []model.StackFrame) string {
	var b strings.Builder
	for _, f := range frames {
		fmt.Fprintf(&b, "%s:%d:%d %s\n", f.File, f.Line, f.Column, f.Func)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderErrors produces errors.md: every page-level (uncaught) error and
// every action-level error, with ANSI stripped from messages and a
// collapsible stack block.
func RenderErrors(t *model.TraceContext) string {
	var b strings.Builder

	entries := collectErrors(t)

	b.WriteString("# Errors\n\n")
	fmt.Fprintf(&b, "Total errors: %d\n\n", len(entries))

	for i, e := range entries {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, StripANSI(e.message))
		if e.stack != "" {
			b.WriteString("<details><summary>Stack</summary>\n\n```\n")
			b.WriteString(StripANSI(e.stack))
			b.WriteString("\n```\n</details>\n\n")
		}
	}

	return b.String()
}
