// Package render reconstructs a single frame snapshot into a complete,
// self-contained HTML document: subtree references are resolved against
// earlier snapshots of the same frame, every URL-bearing attribute
// (including srcset and inline CSS url(...)) is rewritten to point at
// extracted local files, and a fixed restoration script is appended to
// re-apply runtime-only DOM state on load.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

// Result is the output of rendering one frame snapshot.
type Result struct {
	HTML string
	// UsedSHA1s is the set of content hashes this render's URL rewrites
	// actually referenced, reported back to the asset extractor so it can
	// fetch blobs discovered only through rendering (e.g. via inline CSS
	// url() scanning).
	UsedSHA1s map[string]struct{}
}

// Render reconstructs the HTML document for snapshots[i], given the global
// URL -> content-hash map derived from the network log.
func Render(snapshots []*model.FrameSnapshot, i int, networkMap map[string]string) (*Result, error) {
	if i < 0 || i >= len(snapshots) {
		return nil, fmt.Errorf("render: snapshot index %d out of range (len=%d)", i, len(snapshots))
	}
	snap := snapshots[i]

	overrides := buildOverrideMap(snapshots, i)
	res := newResolver(overrides, networkMap, snap.FrameURL)
	c := newCtx(snapshots, res)

	var body strings.Builder
	serializeNode(&body, c, snap.Root, i, 0)

	var doc strings.Builder
	doctype := snap.Doctype
	if doctype == "" {
		doctype = "html"
	}
	doc.WriteString("<!DOCTYPE ")
	doc.WriteString(doctype)
	doc.WriteString(">\n")

	doc.WriteString("<!-- snapshot: ")
	doc.WriteString(html.EscapeString(snap.SnapshotName))
	doc.WriteString(" | frame: ")
	doc.WriteString(html.EscapeString(snap.FrameURL))
	doc.WriteString(" | time: ")
	doc.WriteString(strconv.FormatFloat(snap.Timestamp, 'f', -1, 64))
	if snap.Viewport != nil {
		doc.WriteString(" | viewport: ")
		doc.WriteString(strconv.Itoa(snap.Viewport.Width))
		doc.WriteByte('x')
		doc.WriteString(strconv.Itoa(snap.Viewport.Height))
	}
	doc.WriteString(" -->\n")

	doc.WriteString(body.String())
	doc.WriteByte('\n')
	doc.WriteString(restoreScript)
	doc.WriteByte('\n')

	return &Result{
		HTML:      doc.String(),
		UsedSHA1s: res.usedHashes(),
	}, nil
}
