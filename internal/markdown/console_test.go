package markdown

import (
	"strings"
	"testing"

	"github.com/tracehub/trace-export/internal/model"
)

func TestRenderConsoleFormatsLocationWhenLineKnown(t *testing.T) {
	tc := model.New()
	tc.StartTime = 0
	tc.Console = []model.ConsoleEvent{
		{Time: 50, Severity: "warning", Text: "oops", URL: "app.js", Line: 12, Column: 3},
		{Time: 100, Severity: "log", Text: "no location", URL: "app.js"},
	}

	out := RenderConsole(tc)

	if !strings.Contains(out, "Total messages: 2") {
		t.Fatalf("got:\n%s", out)
	}
	if !strings.Contains(out, "app.js:12:3") {
		t.Fatalf("expected location with line/col, got:\n%s", out)
	}
}

func TestRenderConsoleEmpty(t *testing.T) {
	tc := model.New()
	out := RenderConsole(tc)
	if !strings.Contains(out, "Total messages: 0") {
		t.Fatalf("got:\n%s", out)
	}
}
