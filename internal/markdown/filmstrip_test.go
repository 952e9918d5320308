package markdown

import (
	"strings"
	"testing"

	"github.com/tracehub/trace-export/internal/model"
)

func TestRenderFilmstripSortsGloballyByTimestamp(t *testing.T) {
	tc := model.New()
	p1 := tc.GetOrCreatePage("p1")
	p1.Frames = []model.ScreencastFrame{
		{SHA1: "h3", Timestamp: 300},
		{SHA1: "h1", Timestamp: 100},
	}
	p2 := tc.GetOrCreatePage("p2")
	p2.Frames = []model.ScreencastFrame{
		{SHA1: "h2", Timestamp: 200},
		{SHA1: "h4", Timestamp: 400},
		{SHA1: "h5", Timestamp: 500},
	}

	assets := map[string]string{
		"h1": "./assets/resources/h1",
		"h2": "./assets/resources/h2",
		"h3": "./assets/resources/h3",
		"h4": "./assets/resources/h4",
		"h5": "./assets/resources/h5",
	}

	out := RenderFilmstrip(tc, assets)

	if !strings.Contains(out, "Total screenshots: 5") {
		t.Fatalf("expected 5 screenshots, got:\n%s", out)
	}
	idx1 := strings.Index(out, "h1")
	idx2 := strings.Index(out, "h2")
	idx3 := strings.Index(out, "h3")
	idx4 := strings.Index(out, "h4")
	idx5 := strings.Index(out, "h5")
	if !(idx1 < idx2 && idx2 < idx3 && idx3 < idx4 && idx4 < idx5) {
		t.Fatalf("expected rows ordered by ascending timestamp, got:\n%s", out)
	}
	for _, h := range []string{"h1", "h2", "h3", "h4", "h5"} {
		if !strings.Contains(out, "[view](./assets/resources/"+h+")") {
			t.Fatalf("expected link for %s, got:\n%s", h, out)
		}
	}
}

func TestRenderFilmstripEmpty(t *testing.T) {
	tc := model.New()
	out := RenderFilmstrip(tc, nil)
	if !strings.Contains(out, "Total screenshots: 0") {
		t.Fatalf("got:\n%s", out)
	}
}
