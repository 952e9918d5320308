package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

// RenderReadme produces the top-level README.md linking every other output
// file, for a reader landing in the export directory cold.
func RenderReadme(t *model.TraceContext) string {
	var b strings.Builder

	title := t.Title
	if title == "" {
		title = "Trace export"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("This directory is a static export of a recorded browser trace.\n\n")
	b.WriteString("- [index.md](./index.md) — summary and status\n")
	b.WriteString("- [metadata.md](./metadata.md) — environment and context options\n")
	b.WriteString("- [timeline.md](./timeline.md) — test actions in order\n")
	b.WriteString("- [errors.md](./errors.md) — uncaught page errors and action errors\n")
	b.WriteString("- [console.md](./console.md) — browser console messages\n")
	b.WriteString("- [network.md](./network.md) — network requests\n")
	b.WriteString("- [filmstrip.md](./filmstrip.md) — screenshots over time\n")
	b.WriteString("- [attachments.md](./attachments.md) — files attached to actions\n\n")
	b.WriteString("Rendered DOM snapshots live under `assets/snapshots/`; serve this directory ")
	b.WriteString("with a static HTTP server to view them with working relative links.\n")

	return b.String()
}
