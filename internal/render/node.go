package render

import (
	"html"
	"sort"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/tracehub/trace-export/internal/domnode"
	"github.com/tracehub/trace-export/internal/model"
)

// maxSpliceDepth bounds subtree-reference recursion. References only ever
// point backward (snapshotsAgo >= 0, target <= current index), so no cycle
// is possible under a well-formed trace — this is a defensive backstop,
// not an expected code path.
const maxSpliceDepth = 4096

// ctx carries the immutable inputs one snapshot render needs: the full
// per-frame snapshot list, a lazily memoized post-order index per
// snapshot, and the URL resolver.
type ctx struct {
	snapshots []*model.FrameSnapshot
	postOrder map[int][]domnode.Node
	resolver  *resolver
}

func newCtx(snapshots []*model.FrameSnapshot, resolver *resolver) *ctx {
	return &ctx{
		snapshots: snapshots,
		postOrder: make(map[int][]domnode.Node),
		resolver:  resolver,
	}
}

func (c *ctx) postOrderFor(idx int) []domnode.Node {
	if po, ok := c.postOrder[idx]; ok {
		return po
	}
	po := domnode.PostOrder(c.snapshots[idx].Root)
	c.postOrder[idx] = po
	return po
}

// serializeNode writes the HTML for n, interpreted relative to snapshot
// currentIdx (the snapshot whose post-order list n's own subtree
// references, if any, would be resolved against).
func serializeNode(out *strings.Builder, c *ctx, n domnode.Node, currentIdx, depth int) {
	if depth > maxSpliceDepth {
		return
	}

	switch n.Kind {
	case domnode.KindText:
		out.WriteString(html.EscapeString(n.Text))

	case domnode.KindRef:
		targetIdx := currentIdx - n.SnapshotsAgo
		if targetIdx < 0 || targetIdx > currentIdx || targetIdx >= len(c.snapshots) {
			return // out of range: graceful degradation, emit nothing
		}
		po := c.postOrderFor(targetIdx)
		if n.NodeIndex < 0 || n.NodeIndex >= len(po) {
			return
		}
		serializeNode(out, c, po[n.NodeIndex], targetIdx, depth+1)

	case domnode.KindElement:
		serializeElement(out, c, n, currentIdx, depth)
	}
}

func serializeElement(out *strings.Builder, c *ctx, n domnode.Node, currentIdx, depth int) {
	tagUpper := strings.ToUpper(n.Name)
	a := atom.Lookup([]byte(strings.ToLower(n.Name)))

	// BASE would poison relative-URL resolution in the browser viewing
	// the export — drop it entirely.
	if a == atom.Base || tagUpper == "BASE" {
		return
	}

	emitName := n.Name
	// NOSCRIPT is renamed so the exported page doesn't suppress its
	// children based on scripting state.
	if a == atom.Noscript || tagUpper == "NOSCRIPT" {
		emitName = renameNoscript(n.Name)
	}

	out.WriteByte('<')
	out.WriteString(emitName)
	writeAttrs(out, c, n, tagUpper)
	out.WriteByte('>')

	if isSelfClosing(tagUpper) {
		return
	}

	if tagUpper == "STYLE" {
		for _, child := range n.Children {
			if child.Kind == domnode.KindText {
				out.WriteString(rewriteCSSURLs(child.Text, c.resolver.resolve))
			} else {
				serializeNode(out, c, child, currentIdx, depth+1)
			}
		}
	} else {
		for _, child := range n.Children {
			serializeNode(out, c, child, currentIdx, depth+1)
		}
	}

	out.WriteString("</")
	out.WriteString(emitName)
	out.WriteByte('>')
}

func renameNoscript(name string) string {
	if name == strings.ToUpper(name) {
		return "X-NOSCRIPT"
	}
	return "x-noscript"
}

func writeAttrs(out *strings.Builder, c *ctx, n domnode.Node, tagUpper string) {
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := n.Attrs[name]
		if !keepAttr(name) {
			continue
		}

		switch {
		case name == attrIframeSrc && (tagUpper == "IFRAME" || tagUpper == "FRAME"):
			writeAttr(out, "src", c.resolver.resolve(value))
			continue
		case name == "href" && tagUpper == "LINK":
			writeAttr(out, name, c.resolver.resolve(value))
			continue
		case name == "src" && tagUpper != "A" && tagUpper != "LINK":
			writeAttr(out, name, c.resolver.resolve(value))
			continue
		case name == "srcset":
			writeAttr(out, name, rewriteSrcset(value, c.resolver.resolve))
			continue
		case name == "style":
			writeAttr(out, name, rewriteCSSURLs(value, c.resolver.resolve))
			continue
		}

		writeAttr(out, name, value)
	}
}

func writeAttr(out *strings.Builder, name, value string) {
	out.WriteByte(' ')
	out.WriteString(name)
	out.WriteString(`="`)
	out.WriteString(html.EscapeString(value))
	out.WriteByte('"')
}

// rewriteSrcset parses a comma-separated srcset value, rewrites the URL
// portion of each entry, and preserves each entry's descriptor (e.g. "2x",
// "500w").
func rewriteSrcset(value string, resolve func(string) string) string {
	entries := strings.Split(value, ",")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		parts := strings.Fields(e)
		if len(parts) == 0 {
			continue
		}
		rewritten := resolve(parts[0])
		if len(parts) > 1 {
			out = append(out, rewritten+" "+strings.Join(parts[1:], " "))
		} else {
			out = append(out, rewritten)
		}
	}
	return strings.Join(out, ", ")
}
