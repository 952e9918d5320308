package tree

import (
	"testing"

	"github.com/tracehub/trace-export/internal/model"
)

func buildContext(actions ...*model.Action) *model.TraceContext {
	tc := model.New()
	for _, a := range actions {
		tc.PutAction(a.CallID, a)
	}
	return tc
}

func TestBuildParentChildNesting(t *testing.T) {
	tc := buildContext(
		&model.Action{CallID: "root", Class: "Test", Title: "root test", StartTime: 0},
		&model.Action{CallID: "child", Class: "Test", Title: "child test", ParentID: "root", StartTime: 5},
		&model.Action{CallID: "grandchild", Class: "Test", Title: "grandchild test", ParentID: "child", StartTime: 10},
	)

	tr := Build(tc)

	if len(tr.Root.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(tr.Root.Children))
	}
	root := tr.Root.Children[0]
	if root.Action.CallID != "root" {
		t.Fatalf("expected root action first, got %s", root.Action.CallID)
	}
	if len(root.Children) != 1 || root.Children[0].Action.CallID != "child" {
		t.Fatalf("expected child nested under root, got %+v", root.Children)
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].Action.CallID != "grandchild" {
		t.Fatalf("expected grandchild nested under child")
	}
}

func TestBuildSiblingsSortedByStartTime(t *testing.T) {
	tc := buildContext(
		&model.Action{CallID: "b", Class: "Test", StartTime: 20},
		&model.Action{CallID: "a", Class: "Test", StartTime: 10},
	)

	tr := Build(tc)

	if len(tr.Root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tr.Root.Children))
	}
	if tr.Root.Children[0].Action.CallID != "a" {
		t.Fatalf("expected earlier start time first, got %s", tr.Root.Children[0].Action.CallID)
	}
}

func TestUnknownParentReRootsUnderSyntheticRoot(t *testing.T) {
	tc := buildContext(
		&model.Action{CallID: "orphan", Class: "Test", ParentID: "missing-parent", StartTime: 1},
	)

	tr := Build(tc)

	if len(tr.Root.Children) != 1 || tr.Root.Children[0].Action.CallID != "orphan" {
		t.Fatalf("expected orphan re-rooted at top level, got %+v", tr.Root.Children)
	}
}

func TestStepSnapshotsLinkedFromFirstReferencingAction(t *testing.T) {
	// A Test action's own CallID is the stepId its API-level children
	// reference via StepID (glossary: "Step").
	tc := buildContext(
		&model.Action{CallID: "api1", Class: "PageClick", StepID: "step1", BeforeSnapshot: "snap-before", AfterSnapshot: "snap-after"},
		&model.Action{CallID: "api2", Class: "PageClick", StepID: "step1", BeforeSnapshot: "snap-other"},
		&model.Action{CallID: "step1", Class: "Test"},
	)
	tr := Build(tc)

	testAction, _ := tc.Action("step1")
	before, after := tr.SnapshotsFor(testAction)
	if before != "snap-before" || after != "snap-after" {
		t.Fatalf("expected test action to inherit step1's snapshots, got %q/%q", before, after)
	}

	s, ok := tr.StepSnapshots["step1"]
	if !ok || s.Before != "snap-before" || s.After != "snap-after" {
		t.Fatalf("expected step1 snapshots recorded, got %+v (ok=%v)", s, ok)
	}
}

func TestSnapshotsForFallsBackToOwnFields(t *testing.T) {
	tr := &Tree{StepSnapshots: map[string]StepSnapshots{}}
	a := &model.Action{CallID: "x", BeforeSnapshot: "own-before"}
	before, after := tr.SnapshotsFor(a)
	if before != "own-before" || after != "" {
		t.Fatalf("expected own fields to win when present, got %q/%q", before, after)
	}
}
