package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

const networkBodyTruncate = 500

// RenderNetwork produces network.md: a six-column table of every recorded
// request, plus a "Failed Requests" section for responses with
// status >= 400.
func RenderNetwork(t *model.TraceContext, assets map[string]string) string {
	var b strings.Builder

	b.WriteString("# Network\n\n")
	fmt.Fprintf(&b, "Total requests: %d\n\n", len(t.Resources))

	if len(t.Resources) > 0 {
		b.WriteString("| Method | URL | Status | Size | Content | Failure |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, r := range t.Resources {
			size := ""
			content := ""
			if r.Content != nil {
				size = FormatBytes(r.Content.Size)
				if path, ok := assets[r.Content.SHA1]; ok {
					content = fmt.Sprintf("[view](%s)", path)
				}
			}
			fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s |\n",
				EscapePipes(r.Method),
				EscapePipes(Truncate(r.URL, 150)),
				r.Status,
				size,
				content,
				EscapePipes(Truncate(StripANSI(r.FailureText), 100)),
			)
		}
	}

	var failed []model.NetworkResource
	for _, r := range t.Resources {
		if r.Status >= 400 {
			failed = append(failed, r)
		}
	}

	if len(failed) > 0 {
		b.WriteString("\n## Failed Requests\n\n")
		for _, r := range failed {
			fmt.Fprintf(&b, "### %s %s (%d)\n\n", EscapePipes(r.Method), EscapePipes(r.URL), r.Status)
			if r.FailureText != "" {
				fmt.Fprintf(&b, "**Failure:** %s\n\n", StripANSI(r.FailureText))
			}
			if r.Content != nil && r.Content.Text != "" {
				b.WriteString("<details><summary>Response body</summary>\n\n```\n")
				b.WriteString(Truncate(StripANSI(r.Content.Text), networkBodyTruncate))
				b.WriteString("\n```\n</details>\n\n")
			}
		}
	}

	return b.String()
}
