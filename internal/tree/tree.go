// Package tree reconstructs the action hierarchy from an ingested trace:
// parent/child relationships from Action.ParentID, siblings sorted by
// start time, and a stepId -> {before, after} snapshot map linking
// API-level actions back to the user-level Test step that caused them.
package tree

import (
	"sort"

	"github.com/tracehub/trace-export/internal/model"
)

// RootID is the synthetic call id actions re-root under when ParentID is
// empty or refers to an action not present in this trace.
const RootID = ""

// Node is one entry in the reconstructed action tree.
type Node struct {
	Action   *model.Action // nil for the synthetic root
	Children []*Node
}

// StepSnapshots is the {before?, after?} pair a Test step inherits from its
// first API-level child action that carries a stepId back-reference.
type StepSnapshots struct {
	Before string
	After  string
}

// Tree is the result of building the action hierarchy.
type Tree struct {
	Root *Node
	// TestActions is every action with Class == "Test", used for timeline
	// rendering.
	TestActions []*model.Action
	// StepSnapshots maps stepId -> the snapshots of the first action that
	// references it.
	StepSnapshots map[string]StepSnapshots
}

// Build reconstructs the tree for t.
func Build(t *model.TraceContext) *Tree {
	byID := make(map[string]*Node, len(t.Actions))
	root := &Node{}

	for _, a := range t.Actions {
		byID[a.CallID] = &Node{Action: a}
	}

	for _, a := range t.Actions {
		n := byID[a.CallID]
		parent := root
		if a.ParentID != "" {
			if p, ok := byID[a.ParentID]; ok {
				parent = p
			}
		}
		parent.Children = append(parent.Children, n)
	}

	var sortChildren func(n *Node)
	sortChildren = func(n *Node) {
		sort.SliceStable(n.Children, func(i, j int) bool {
			return n.Children[i].Action.StartTime < n.Children[j].Action.StartTime
		})
		for _, c := range n.Children {
			sortChildren(c)
		}
	}
	sortChildren(root)

	result := &Tree{
		Root:          root,
		StepSnapshots: make(map[string]StepSnapshots),
	}

	for _, a := range t.Actions {
		if a.Class == "Test" {
			result.TestActions = append(result.TestActions, a)
		}
		if a.Class != "Test" && a.StepID != "" {
			if (a.BeforeSnapshot != "" || a.AfterSnapshot != "") {
				if _, exists := result.StepSnapshots[a.StepID]; !exists {
					result.StepSnapshots[a.StepID] = StepSnapshots{
						Before: a.BeforeSnapshot,
						After:  a.AfterSnapshot,
					}
				}
			}
		}
	}

	return result
}

// SnapshotsFor returns the snapshot names a Test action should link to: its
// own beforeSnapshot/afterSnapshot if set, otherwise its stepId-linked
// child's snapshots.
func (tr *Tree) SnapshotsFor(a *model.Action) (before, after string) {
	before, after = a.BeforeSnapshot, a.AfterSnapshot
	if before == "" && after == "" {
		if s, ok := tr.StepSnapshots[a.CallID]; ok {
			before, after = s.Before, s.After
		}
	}
	return before, after
}
