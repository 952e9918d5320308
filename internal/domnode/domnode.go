// Package domnode implements the DOM node tagged union described by the
// trace format: a text node (JSON string), a subtree reference (a
// single-element JSON array whose one element is itself a two-element
// numeric array, [[snapshotsAgo, nodeIndex]]), or an element (JSON array:
// [name, attributes, ...children]).
//
// The three shapes are discriminated structurally during decode, not by an
// explicit type tag — the subtree-ref variant is the only one whose first
// (and only) element is itself a two-element array.
package domnode

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which of the three variants a Node holds.
type Kind int

const (
	KindText Kind = iota
	KindRef
	KindElement
)

// Node is the tagged union. Exactly one field group is meaningful,
// selected by Kind.
type Node struct {
	Kind Kind

	// KindText
	Text string

	// KindRef
	SnapshotsAgo int
	NodeIndex    int

	// KindElement
	Name     string
	Attrs    map[string]string
	Children []Node
}

// UnmarshalJSON decodes one of the three shapes described above.
func (n *Node) UnmarshalJSON(data []byte) error {
	// Text node: a bare JSON string.
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		n.Kind = KindText
		n.Text = text
		return nil
	}

	// Anything else must be a JSON array.
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("domnode: unrecognized node shape: %w", err)
	}

	// Subtree reference: a single element that is itself a two-element
	// numeric array, i.e. [[snapshotsAgo, nodeIndex]].
	if len(raw) == 1 {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw[0], &pair); err == nil && len(pair) == 2 {
			var snapshotsAgo, nodeIndex int
			if err1 := json.Unmarshal(pair[0], &snapshotsAgo); err1 == nil {
				if err2 := json.Unmarshal(pair[1], &nodeIndex); err2 == nil {
					n.Kind = KindRef
					n.SnapshotsAgo = snapshotsAgo
					n.NodeIndex = nodeIndex
					return nil
				}
			}
		}
	}

	// Element: [name, attributes, ...children].
	if len(raw) < 2 {
		return fmt.Errorf("domnode: element array too short (%d elements)", len(raw))
	}
	var name string
	if err := json.Unmarshal(raw[0], &name); err != nil {
		return fmt.Errorf("domnode: element name not a string: %w", err)
	}
	var attrs map[string]string
	if err := json.Unmarshal(raw[1], &attrs); err != nil {
		return fmt.Errorf("domnode: element attrs not an object: %w", err)
	}
	children := make([]Node, 0, len(raw)-2)
	for _, c := range raw[2:] {
		var child Node
		if err := json.Unmarshal(c, &child); err != nil {
			// A single malformed child degrades gracefully: skip it rather
			// than fail the whole subtree.
			continue
		}
		children = append(children, child)
	}

	n.Kind = KindElement
	n.Name = name
	n.Attrs = attrs
	n.Children = children
	return nil
}

// PostOrder returns the post-order (children-before-self) traversal of the
// subtree rooted at n, used to address subtree references by index.
// Subtree-ref nodes are pushed as themselves (not resolved) — resolution
// against an even-earlier snapshot happens at splice time, not here, since
// resolving here would require the full snapshot chain and risk unbounded
// recursion on chained references.
func PostOrder(n Node) []Node {
	var out []Node
	var visit func(Node)
	visit = func(cur Node) {
		if cur.Kind == KindElement {
			for _, c := range cur.Children {
				visit(c)
			}
		}
		out = append(out, cur)
	}
	visit(n)
	return out
}
