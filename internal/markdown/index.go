package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

// maxIndexErrors caps the bullet list of error messages shown on the
// index page; the full list lives in errors.md.
const maxIndexErrors = 10

// RenderIndex produces index.md: title, test path, pass/fail status,
// duration, viewport, action and error counts, and a short error digest.
// testPath is the name of the root Test-class action, if any.
func RenderIndex(t *model.TraceContext, testPath string) string {
	var b strings.Builder

	title := t.Title
	if title == "" {
		title = "Trace export"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if testPath != "" {
		fmt.Fprintf(&b, "**Test:** %s\n\n", testPath)
	}

	entries := collectErrors(t)

	status := "PASSED"
	if len(entries) > 0 {
		status = "FAILED"
	}

	fmt.Fprintf(&b, "**Status:** %s\n\n", status)
	fmt.Fprintf(&b, "**Duration:** %s\n\n", FormatDuration(t.EndTime-t.StartTime))

	if t.Options.Viewport != nil {
		fmt.Fprintf(&b, "**Viewport:** %dx%d\n\n", t.Options.Viewport.Width, t.Options.Viewport.Height)
	}

	fmt.Fprintf(&b, "**Actions:** %d\n\n", len(t.Actions))
	fmt.Fprintf(&b, "**Errors:** %d\n\n", len(entries))

	b.WriteString("See [timeline](./timeline.md), [metadata](./metadata.md), ")
	b.WriteString("[console](./console.md), [network](./network.md), ")
	b.WriteString("[filmstrip](./filmstrip.md), and [attachments](./attachments.md) for detail.\n")

	if len(entries) > 0 {
		b.WriteString("\n## Errors\n\n")
		n := len(entries)
		if n > maxIndexErrors {
			n = maxIndexErrors
		}
		for _, e := range entries[:n] {
			fmt.Fprintf(&b, "- %s\n", Truncate(StripANSI(e.message), 300))
		}
		if len(entries) > maxIndexErrors {
			fmt.Fprintf(&b, "- … and %d more, see [errors.md](./errors.md)\n", len(entries)-maxIndexErrors)
		}
	}

	return b.String()
}
