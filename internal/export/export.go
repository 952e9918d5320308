// Package export wires the archive reader, ingestor, action tree, asset
// extractor, snapshot renderer, and Markdown writers into the single
// ExportTrace entry point: archive path in, populated output directory
// out.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tracehub/trace-export/internal/archive"
	"github.com/tracehub/trace-export/internal/assets"
	"github.com/tracehub/trace-export/internal/ingest"
	"github.com/tracehub/trace-export/internal/markdown"
	"github.com/tracehub/trace-export/internal/model"
	"github.com/tracehub/trace-export/internal/render"
	"github.com/tracehub/trace-export/internal/tree"
)

// Options configures one export.
type Options struct {
	// OutDir is the directory export output is written to. Created if it
	// does not exist.
	OutDir string
}

// Result summarizes one completed export.
type Result struct {
	OutDir          string
	ActionCount     int
	ErrorCount      int
	SnapshotCount   int
	RenderedCount   int
	ExtractedAssets int
}

// ExportTrace reads the trace archive at archivePath and writes the full
// Markdown + HTML export to opts.OutDir. Archive-open failure is fatal and
// returned to the caller, as are failures to create output directories or
// write the Markdown files. Per-item problems degrade gracefully instead
// (bad lines, missing resources, and failed snapshot renders are logged and
// skipped; the export continues).
func ExportTrace(archivePath string, opts Options) (*Result, error) {
	store, err := archive.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create output dir %q: %w", opts.OutDir, err)
	}

	t := ingest.Ingest(store)
	actionTree := tree.Build(t)

	extractor := assets.New(store, opts.OutDir)
	needed := assets.NeededHashes(t)
	assetPaths, err := extractor.ExtractAll(t, needed)
	if err != nil {
		return nil, fmt.Errorf("export: extract assets: %w", err)
	}

	snapshotPaths := renderSnapshots(t, extractor, assetPaths)

	if err := writeMarkdown(t, actionTree, opts.OutDir, snapshotPaths, assetPaths); err != nil {
		return nil, err
	}

	return &Result{
		OutDir:          opts.OutDir,
		ActionCount:     len(t.Actions),
		ErrorCount:      errorCount(t),
		SnapshotCount:   len(t.SnapshotsInOrder),
		RenderedCount:   len(snapshotPaths),
		ExtractedAssets: len(assetPaths),
	}, nil
}

// errorCount is the total error count the Markdown writers report: global
// page errors plus action-level errors, matching internal/markdown's
// combined view.
func errorCount(t *model.TraceContext) int {
	n := len(t.Errors)
	for _, a := range t.Actions {
		if a.Error != nil {
			n++
		}
	}
	return n
}

// renderSnapshots renders every frame snapshot in ingestion order to an
// HTML document and extracts it to assets/snapshots/. A render failure for
// one snapshot is non-fatal: the timeline loses that snapshot's link, but
// the export continues.
func renderSnapshots(t *model.TraceContext, extractor *assets.Extractor, assetPaths map[string]string) map[string]string {
	paths := make(map[string]string, len(t.SnapshotsInOrder))

	// Position of the next snapshot within its own frame's list.
	nextIdx := make(map[string]int, len(t.Snapshots))
	for _, snap := range t.SnapshotsInOrder {
		frameID := snap.FrameID
		snaps := t.Snapshots[frameID]
		i := nextIdx[frameID]
		nextIdx[frameID]++
		result, err := render.Render(snaps, i, t.URLToHash)
		if err != nil {
			slog.Debug("export: snapshot render failed", "frameId", frameID, "snapshot", snap.SnapshotName, "error", err)
			continue
		}
		extractor.ExtendWithUsed(assetPaths, result.UsedSHA1s)
		path, err := extractor.WriteSnapshotHTML(snap.SnapshotName, result.HTML)
		if err != nil {
			slog.Debug("export: snapshot write failed", "snapshot", snap.SnapshotName, "error", err)
			continue
		}
		paths[snap.SnapshotName] = path
	}

	return paths
}

func writeMarkdown(t *model.TraceContext, tr *tree.Tree, outDir string, snapshotPaths, assetPaths map[string]string) error {
	testPath := ""
	if len(tr.TestActions) > 0 {
		testPath = tr.TestActions[0].Title
	}

	files := map[string]string{
		"README.md":      markdown.RenderReadme(t),
		"index.md":       markdown.RenderIndex(t, testPath),
		"metadata.md":    markdown.RenderMetadata(t),
		"timeline.md":    markdown.RenderTimeline(t, tr, snapshotPaths, assetPaths),
		"errors.md":      markdown.RenderErrors(t),
		"console.md":     markdown.RenderConsole(t),
		"network.md":     markdown.RenderNetwork(t, assetPaths),
		"filmstrip.md":   markdown.RenderFilmstrip(t, assetPaths),
		"attachments.md": markdown.RenderAttachments(t, assetPaths),
	}

	for name, content := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("export: write %s: %w", name, err)
		}
	}

	return nil
}
