package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

const (
	consoleMessageTruncate  = 200
	consoleLocationTruncate = 80
)

// RenderConsole produces console.md: a four-column table of time,
// severity, truncated message, and truncated source location.
func RenderConsole(t *model.TraceContext) string {
	var b strings.Builder

	b.WriteString("# Console\n\n")
	fmt.Fprintf(&b, "Total messages: %d\n\n", len(t.Console))

	if len(t.Console) == 0 {
		return b.String()
	}

	b.WriteString("| Time | Severity | Message | Location |\n")
	b.WriteString("|---|---|---|---|\n")

	for _, c := range t.Console {
		loc := c.URL
		if c.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", c.URL, c.Line, c.Column)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			FormatRelativeMS(c.Time, t.StartTime),
			EscapePipes(c.Severity),
			EscapePipes(Truncate(StripANSI(c.Text), consoleMessageTruncate)),
			EscapePipes(Truncate(loc, consoleLocationTruncate)),
		)
	}

	return b.String()
}
