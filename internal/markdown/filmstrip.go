package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

type filmstripEntry struct {
	pageID    string
	sha1      string
	timestamp float64
}

// RenderFilmstrip produces filmstrip.md: every screencast frame across all
// pages, sorted globally ascending by timestamp.
func RenderFilmstrip(t *model.TraceContext, assets map[string]string) string {
	var entries []filmstripEntry
	for _, p := range t.Pages {
		for _, f := range p.Frames {
			entries = append(entries, filmstripEntry{pageID: p.PageID, sha1: f.SHA1, timestamp: f.Timestamp})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].timestamp < entries[j].timestamp
	})

	var b strings.Builder
	b.WriteString("# Filmstrip\n\n")
	fmt.Fprintf(&b, "Total screenshots: %d\n\n", len(entries))

	if len(entries) == 0 {
		return b.String()
	}

	b.WriteString("| Time | Page | Screenshot |\n")
	b.WriteString("|---|---|---|\n")
	for _, e := range entries {
		link := ""
		if path, ok := assets[e.sha1]; ok {
			link = fmt.Sprintf("[view](%s)", path)
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			FormatRelativeMS(e.timestamp, t.StartTime),
			EscapePipes(e.pageID),
			link,
		)
	}

	return b.String()
}
