package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

// RenderMetadata produces metadata.md: environment, context options, and
// overall timing.
func RenderMetadata(t *model.TraceContext) string {
	var b strings.Builder

	b.WriteString("# Metadata\n\n")

	b.WriteString("## Environment\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Browser | %s |\n", EscapePipes(t.BrowserName))
	fmt.Fprintf(&b, "| Channel | %s |\n", EscapePipes(t.Channel))
	fmt.Fprintf(&b, "| Platform | %s |\n", EscapePipes(t.Platform))
	fmt.Fprintf(&b, "| SDK language | %s |\n", EscapePipes(t.SDKLanguage))
	fmt.Fprintf(&b, "| Version | %s |\n", EscapePipes(t.Version))

	b.WriteString("\n## Context options\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	if t.Options.Viewport != nil {
		fmt.Fprintf(&b, "| Viewport | %dx%d |\n", t.Options.Viewport.Width, t.Options.Viewport.Height)
	}
	fmt.Fprintf(&b, "| Device scale factor | %g |\n", t.Options.DeviceScale)
	fmt.Fprintf(&b, "| Mobile | %t |\n", t.Options.IsMobile)
	fmt.Fprintf(&b, "| User agent | %s |\n", EscapePipes(t.Options.UserAgent))
	fmt.Fprintf(&b, "| Base URL | %s |\n", EscapePipes(t.Options.BaseURL))

	b.WriteString("\n## Timing\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Wall time | %s |\n", fmt.Sprintf("%.0f", t.WallTime))
	fmt.Fprintf(&b, "| Start time | %s |\n", fmt.Sprintf("%.0f", t.StartTime))
	fmt.Fprintf(&b, "| Duration | %s |\n", FormatDuration(t.EndTime-t.StartTime))

	return b.String()
}
