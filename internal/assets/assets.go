// Package assets computes the transitive closure of content hashes a trace
// export needs and extracts them from the archive's resources/ store to
// disk, returning a content-hash -> relative-path map the Markdown writers
// and rendered snapshots use for all ./assets/... links.
package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tracehub/trace-export/internal/model"
)

// BlobStore is the narrow interface onto the archive this package needs.
type BlobStore interface {
	Read(name string) ([]byte, error)
}

// sanitizeChars are replaced with underscore in any filename derived from
// trace-supplied data, defeating path traversal via attachment names.
const sanitizeChars = `/\:*?"<>|`

// Sanitize replaces every character in sanitizeChars with an underscore.
func Sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if strings.ContainsRune(sanitizeChars, r) {
			sb.WriteByte('_')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeSnapshotName replaces any character outside [A-Za-z0-9@_-] with
// underscore, matching the allowed character set for extracted snapshot filenames.
func SanitizeSnapshotName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '@', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Extractor resolves and writes trace assets to outDir/assets/...
type Extractor struct {
	store BlobStore
	outDir string
}

// New creates an Extractor writing under outDir.
func New(store BlobStore, outDir string) *Extractor {
	return &Extractor{store: store, outDir: outDir}
}

// NeededHashes computes the transitive closure of content hashes reachable
// from snapshot overrides (including ref chains), screencast frames, the
// network URL map, and attachments.
func NeededHashes(t *model.TraceContext) map[string]bool {
	need := make(map[string]bool)

	for frameID, snaps := range t.Snapshots {
		for i := range snaps {
			for _, o := range snaps[i].ResourceOverrides {
				if o.HasSHA1 {
					need[o.SHA1] = true
					continue
				}
				if o.HasRef {
					if h, ok := chainSHA1(t.Snapshots[frameID], i, o.URL, o.Ref, 0); ok {
						need[h] = true
					}
				}
			}
		}
	}

	for _, p := range t.Pages {
		for _, f := range p.Frames {
			if f.SHA1 != "" {
				need[f.SHA1] = true
			}
		}
	}

	for _, h := range t.URLToHash {
		need[h] = true
	}

	for _, a := range t.Actions {
		for _, att := range a.Attachments {
			if att.SHA1 != "" {
				need[att.SHA1] = true
			}
		}
	}

	return need
}

const maxChainDepth = 4096

func chainSHA1(snaps []*model.FrameSnapshot, i int, url string, ref int, depth int) (string, bool) {
	if depth > maxChainDepth {
		return "", false
	}
	target := i - ref
	if target < 0 || target > i || target >= len(snaps) {
		return "", false
	}
	for _, o := range snaps[target].ResourceOverrides {
		if o.URL != url {
			continue
		}
		if o.HasSHA1 {
			return o.SHA1, true
		}
		if o.HasRef {
			return chainSHA1(snaps, target, url, o.Ref, depth+1)
		}
		return "", false
	}
	return "", false
}

// ExtractAll writes every hash in hashes to assets/resources/<hash>, and
// additionally writes each attachment of t's actions to
// assets/attachments/<sanitized-name>; an attachment hash that is also in
// hashes ends up in both directories. Extraction failures are non-fatal:
// the item is skipped and logged, the export continues. The returned map
// is keyed by content hash; where an attachment and a plain resource share
// a hash, the attachment's friendly path wins.
func (e *Extractor) ExtractAll(t *model.TraceContext, hashes map[string]bool) (map[string]string, error) {
	resourcesDir := filepath.Join(e.outDir, "assets", "resources")
	attachmentsDir := filepath.Join(e.outDir, "assets", "attachments")
	if err := os.MkdirAll(resourcesDir, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create resources dir: %w", err)
	}
	if err := os.MkdirAll(attachmentsDir, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create attachments dir: %w", err)
	}

	paths := make(map[string]string, len(hashes))

	for hash := range hashes {
		data, err := e.store.Read("resources/" + hash)
		if err != nil {
			slog.Debug("assets: missing resource", "hash", hash, "error", err)
			continue
		}
		dest := filepath.Join(resourcesDir, hash)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			slog.Debug("assets: write resource failed", "hash", hash, "error", err)
			continue
		}
		paths[hash] = "./assets/resources/" + hash
	}

	for _, a := range t.Actions {
		for _, att := range a.Attachments {
			if att.SHA1 == "" {
				continue
			}
			data, err := e.store.Read("resources/" + att.SHA1)
			if err != nil {
				slog.Debug("assets: missing attachment", "name", att.Name, "hash", att.SHA1, "error", err)
				continue
			}
			name := Sanitize(att.Name)
			dest := filepath.Join(attachmentsDir, name)
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				slog.Debug("assets: write attachment failed", "name", att.Name, "error", err)
				continue
			}
			// Attachments win over resource paths for the same hash.
			paths[att.SHA1] = "./assets/attachments/" + name
		}
	}

	return paths, nil
}

// ExtendWithUsed writes additional hashes discovered during snapshot
// rendering (e.g. via inline CSS url() scanning) that weren't part of the
// pre-computed closure, merging their paths into paths.
func (e *Extractor) ExtendWithUsed(paths map[string]string, used map[string]struct{}) {
	resourcesDir := filepath.Join(e.outDir, "assets", "resources")
	for hash := range used {
		if _, ok := paths[hash]; ok {
			continue
		}
		data, err := e.store.Read("resources/" + hash)
		if err != nil {
			slog.Debug("assets: missing discovered resource", "hash", hash, "error", err)
			continue
		}
		dest := filepath.Join(resourcesDir, hash)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			slog.Debug("assets: write discovered resource failed", "hash", hash, "error", err)
			continue
		}
		paths[hash] = "./assets/resources/" + hash
	}
}

// WriteSnapshotHTML writes one rendered snapshot document to
// assets/snapshots/<sanitized-name>.html.
func (e *Extractor) WriteSnapshotHTML(snapshotName, htmlContent string) (string, error) {
	dir := filepath.Join(e.outDir, "assets", "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("assets: create snapshots dir: %w", err)
	}
	name := SanitizeSnapshotName(snapshotName) + ".html"
	dest := filepath.Join(dir, name)
	if err := os.WriteFile(dest, []byte(htmlContent), 0o644); err != nil {
		return "", fmt.Errorf("assets: write snapshot %q: %w", snapshotName, err)
	}
	return "./assets/snapshots/" + name, nil
}
