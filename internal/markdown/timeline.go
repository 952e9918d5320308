package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
	"github.com/tracehub/trace-export/internal/tree"
)

const maxHeadingDepth = 6

// testNode is the Test-class-only forest timeline.md renders: nesting
// follows the nearest Test-class ancestor, skipping any API-level actions
// in between.
type testNode struct {
	action   *model.Action
	children []*testNode
}

func buildTestForest(root *tree.Node) []*testNode {
	var roots []*testNode
	var walk func(n *tree.Node, parent *testNode)
	walk = func(n *tree.Node, parent *testNode) {
		for _, child := range n.Children {
			if child.Action != nil && child.Action.Class == "Test" {
				tn := &testNode{action: child.Action}
				if parent != nil {
					parent.children = append(parent.children, tn)
				} else {
					roots = append(roots, tn)
				}
				walk(child, tn)
			} else {
				walk(child, parent)
			}
		}
	}
	walk(root, nil)
	return roots
}

// RenderTimeline produces timeline.md: a heading tree of Test-class
// actions with a table of contents, per-action timing, parameters,
// results, source location, snapshot and attachment links, and
// collapsible log/stack detail.
//
// snapshotPaths maps a snapshot name to its extracted HTML path (relative
// to the output root); assets maps a content hash to its extracted path,
// used for attachment links.
func RenderTimeline(t *model.TraceContext, tr *tree.Tree, snapshotPaths map[string]string, assets map[string]string) string {
	forest := buildTestForest(tr.Root)

	total := countNodes(forest)

	var toc strings.Builder
	var body strings.Builder

	toc.WriteString("## Table of Contents\n\n")

	var walkRender func(nodes []*testNode, depth int)
	walkRender = func(nodes []*testNode, depth int) {
		for _, n := range nodes {
			renderTestNode(&body, &toc, t, tr, n, depth, snapshotPaths, assets)
			walkRender(n.children, depth+1)
		}
	}
	walkRender(forest, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "# Timeline\n\n")
	fmt.Fprintf(&b, "Total actions: %d\n\n", total)
	b.WriteString(toc.String())
	b.WriteString("\n")
	b.WriteString(body.String())
	return b.String()
}

func countNodes(nodes []*testNode) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.children)
	}
	return n
}

func headingLevel(depth int) int {
	level := depth + 1
	if level > maxHeadingDepth {
		level = maxHeadingDepth
	}
	return level
}

func renderTestNode(body, toc *strings.Builder, t *model.TraceContext, tr *tree.Tree, n *testNode, depth int, snapshotPaths, assets map[string]string) {
	a := n.action
	level := headingLevel(depth)
	anchor := GenerateAnchor(a.Title)

	fmt.Fprintf(toc, "%s- [%s](#%s)\n", strings.Repeat("  ", depth), a.Title, anchor)

	body.WriteString(strings.Repeat("#", level))
	fmt.Fprintf(body, " %s\n\n", a.Title)

	fmt.Fprintf(body, "**Start:** %s  \n", FormatRelativeMS(a.StartTime, t.StartTime))
	fmt.Fprintf(body, "**Duration:** %s\n\n", FormatDuration(a.EndTime-a.StartTime))

	if a.Group != "internal" && len(a.Params) > 0 {
		body.WriteString("**Parameters:**\n\n```\n")
		keys := sortedParamKeys(a.Params)
		for _, k := range keys {
			fmt.Fprintf(body, "%s: %v\n", k, a.Params[k])
		}
		body.WriteString("```\n\n")
	}

	if a.Result != nil {
		fmt.Fprintf(body, "**Result:** %v\n\n", a.Result)
	}

	if len(a.Stack) > 0 {
		f := a.Stack[0]
		fmt.Fprintf(body, "**Source:** %s:%d\n\n", f.File, f.Line)
	}

	before, after := tr.SnapshotsFor(a)
	var links []string
	if before != "" {
		if path, ok := snapshotPaths[before]; ok {
			links = append(links, fmt.Sprintf("[before](%s)", path))
		}
	}
	if after != "" {
		if path, ok := snapshotPaths[after]; ok {
			links = append(links, fmt.Sprintf("[after](%s)", path))
		}
	}
	if len(links) > 0 {
		fmt.Fprintf(body, "**Snapshots:** %s\n\n", strings.Join(links, " "))
	}

	if len(a.Attachments) > 0 {
		var attLinks []string
		for _, att := range a.Attachments {
			if path, ok := assets[att.SHA1]; ok {
				attLinks = append(attLinks, fmt.Sprintf("[%s](%s)", att.Name, path))
			}
		}
		if len(attLinks) > 0 {
			fmt.Fprintf(body, "**Attachments:** %s\n\n", strings.Join(attLinks, ", "))
		}
	}

	if len(a.Log) > 0 {
		body.WriteString("<details><summary>Log</summary>\n\n```\n")
		for _, le := range a.Log {
			fmt.Fprintf(body, "[%s] %s\n", FormatRelativeMS(le.Time, t.StartTime), StripANSI(le.Message))
		}
		body.WriteString("```\n</details>\n\n")
	}

	if a.Error != nil {
		fmt.Fprintf(body, "**Error:** %s\n\n", StripANSI(a.Error.Message))
		if a.Error.Stack != "" {
			body.WriteString("<details><summary>Stack</summary>\n\n```\n")
			body.WriteString(StripANSI(a.Error.Stack))
			body.WriteString("\n```\n</details>\n\n")
		}
	}
}

func sortedParamKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
