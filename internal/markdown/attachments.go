package markdown

import (
	"fmt"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

type attachmentRow struct {
	actionTitle string
	attachment  model.Attachment
}

// RenderAttachments produces attachments.md: every attachment across every
// action, linked to its friendly-named extracted path.
func RenderAttachments(t *model.TraceContext, assets map[string]string) string {
	var rows []attachmentRow
	for _, a := range t.Actions {
		for _, att := range a.Attachments {
			rows = append(rows, attachmentRow{actionTitle: a.Title, attachment: att})
		}
	}

	var b strings.Builder
	b.WriteString("# Attachments\n\n")
	fmt.Fprintf(&b, "Total attachments: %d\n\n", len(rows))

	if len(rows) == 0 {
		return b.String()
	}

	b.WriteString("| Action | Name | Content type | Link |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range rows {
		link := ""
		if r.attachment.SHA1 != "" {
			if path, ok := assets[r.attachment.SHA1]; ok {
				link = fmt.Sprintf("[download](%s)", path)
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			EscapePipes(r.actionTitle),
			EscapePipes(r.attachment.Name),
			EscapePipes(r.attachment.ContentType),
			link,
		)
	}

	return b.String()
}
