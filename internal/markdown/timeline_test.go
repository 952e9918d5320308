package markdown

import (
	"strings"
	"testing"

	"github.com/tracehub/trace-export/internal/model"
	"github.com/tracehub/trace-export/internal/tree"
)

func buildTraceForTimeline() *model.TraceContext {
	tc := model.New()
	tc.StartTime = 0
	tc.PutAction("test1", &model.Action{
		CallID: "test1", Class: "Test", Title: "login test", StartTime: 0, EndTime: 1000,
	})
	tc.PutAction("click1", &model.Action{
		CallID: "click1", Class: "PageClick", Title: "click submit", ParentID: "test1",
		StepID: "test1", StartTime: 10, EndTime: 50,
		BeforeSnapshot: "snap-before", AfterSnapshot: "snap-after",
		Group:  "api",
		Params: map[string]interface{}{"selector": "#submit"},
	})
	return tc
}

func TestRenderTimelineRendersTestActionsOnly(t *testing.T) {
	tc := buildTraceForTimeline()
	tr := tree.Build(tc)

	snapshotPaths := map[string]string{
		"snap-before": "./assets/snapshots/snap_before.html",
		"snap-after":  "./assets/snapshots/snap_after.html",
	}

	out := RenderTimeline(tc, tr, snapshotPaths, nil)

	if !strings.Contains(out, "Total actions: 1") {
		t.Fatalf("expected only the single Test action counted, got:\n%s", out)
	}
	if !strings.Contains(out, "# login test") {
		t.Fatalf("expected heading for test action, got:\n%s", out)
	}
	if strings.Contains(out, "click submit") {
		t.Fatalf("expected API-level action not to get its own heading, got:\n%s", out)
	}
	if !strings.Contains(out, "[before](./assets/snapshots/snap_before.html)") {
		t.Fatalf("expected test action to inherit its stepId child's before snapshot, got:\n%s", out)
	}
	if !strings.Contains(out, "[after](./assets/snapshots/snap_after.html)") {
		t.Fatalf("expected test action to inherit its stepId child's after snapshot, got:\n%s", out)
	}
}

func TestRenderTimelineTableOfContentsAnchor(t *testing.T) {
	tc := buildTraceForTimeline()
	tr := tree.Build(tc)

	out := RenderTimeline(tc, tr, nil, nil)

	if !strings.Contains(out, "#login-test") {
		t.Fatalf("expected TOC anchor for login test, got:\n%s", out)
	}
}
