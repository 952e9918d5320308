package markdown

import (
	"strings"
	"testing"

	"github.com/tracehub/trace-export/internal/model"
)

func TestRenderMetadataTables(t *testing.T) {
	tc := model.New()
	tc.BrowserName = "chromium"
	tc.Channel = "stable"
	tc.Platform = "linux"
	tc.SDKLanguage = "javascript"
	tc.Version = "1.40.0"
	tc.Options.Viewport = &model.Viewport{Width: 1280, Height: 720}
	tc.Options.DeviceScale = 1
	tc.Options.UserAgent = "Mozilla/5.0"
	tc.StartTime = 0
	tc.EndTime = 2500

	out := RenderMetadata(tc)

	for _, want := range []string{
		"| Browser | chromium |",
		"| Platform | linux |",
		"| Viewport | 1280x720 |",
		"| User agent | Mozilla/5.0 |",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q, got:\n%s", want, out)
		}
	}
}
