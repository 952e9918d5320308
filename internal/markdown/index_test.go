package markdown

import (
	"strings"
	"testing"

	"github.com/tracehub/trace-export/internal/model"
)

func TestRenderIndexPassedTrace(t *testing.T) {
	tc := model.New()
	tc.Title = "Checkout flow"
	tc.StartTime = 0
	tc.EndTime = 1500
	tc.Options.Viewport = &model.Viewport{Width: 1280, Height: 720}
	for i := 0; i < 12; i++ {
		tc.PutAction(string(rune('a'+i)), &model.Action{CallID: string(rune('a' + i))})
	}

	out := RenderIndex(tc, "checkout.spec.ts")

	for _, want := range []string{
		"**Test:** checkout.spec.ts",
		"**Status:** PASSED",
		"**Viewport:** 1280x720",
		"**Actions:** 12",
		"**Errors:** 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderIndexFailedTraceListsErrors(t *testing.T) {
	tc := model.New()
	tc.Errors = []model.GlobalError{{Message: "boom"}}

	out := RenderIndex(tc, "")

	if !strings.Contains(out, "**Status:** FAILED") {
		t.Fatalf("expected FAILED status, got:\n%s", out)
	}
	if !strings.Contains(out, "- boom") {
		t.Fatalf("expected error bullet, got:\n%s", out)
	}
	if strings.Contains(out, "**Test:**") {
		t.Fatalf("expected no test path line when empty, got:\n%s", out)
	}
}

func TestRenderIndexFailedTraceFromActionError(t *testing.T) {
	tc := model.New()
	tc.PutAction("call-1", &model.Action{
		CallID: "call-1",
		Error:  &model.ActionError{Message: "Protocol error (Page.navigate): Target closed"},
	})

	out := RenderIndex(tc, "")

	if !strings.Contains(out, "**Status:** FAILED") {
		t.Fatalf("expected FAILED status for an action-level error, got:\n%s", out)
	}
	if !strings.Contains(out, "**Errors:** 1") {
		t.Fatalf("expected error count of 1, got:\n%s", out)
	}
	if !strings.Contains(out, "- Protocol error (Page.navigate): Target closed") {
		t.Fatalf("expected action error bullet, got:\n%s", out)
	}
}

func TestRenderIndexCapsErrorDigestAt10(t *testing.T) {
	tc := model.New()
	for i := 0; i < 15; i++ {
		tc.Errors = append(tc.Errors, model.GlobalError{Message: "err"})
	}

	out := RenderIndex(tc, "")
	if !strings.Contains(out, "… and 5 more") {
		t.Fatalf("expected overflow note for 5 remaining errors, got:\n%s", out)
	}
}
