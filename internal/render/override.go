package render

import (
	"net/url"

	"github.com/tracehub/trace-export/internal/model"
)

// maxOverrideChainDepth bounds ref-chain traversal. Override refs only ever
// point backward to an earlier snapshot of the same frame, so no cycle is
// possible if inputs obey that contract — but we still refuse to walk past
// the current snapshot's own index, as a defensive bound against malformed
// traces.
const maxOverrideChainDepth = 4096

// buildOverrideMap constructs the URL -> content-hash override map for the
// snapshot at index i within snapshots (all snapshots of one frameId, in
// ingestion order).
func buildOverrideMap(snapshots []*model.FrameSnapshot, i int) map[string]string {
	m := make(map[string]string)
	cur := snapshots[i]
	for _, o := range cur.ResourceOverrides {
		if o.HasSHA1 {
			m[o.URL] = o.SHA1
			continue
		}
		if o.HasRef {
			if hash, ok := resolveRef(snapshots, i, o.URL, o.Ref, 0); ok {
				m[o.URL] = hash
			}
		}
	}
	return m
}

// resolveRef follows a ref chain backward: snapshot i's override for url
// with Ref=ref points at snapshots[i-ref]'s override matching the same
// url; if that override itself is a ref, keep following until a sha1 is
// found or the chain runs out of range / exceeds the depth bound.
func resolveRef(snapshots []*model.FrameSnapshot, i int, url string, ref int, depth int) (string, bool) {
	if depth > maxOverrideChainDepth {
		return "", false
	}
	target := i - ref
	if target < 0 || target >= len(snapshots) || target > i {
		return "", false
	}
	for _, o := range snapshots[target].ResourceOverrides {
		if o.URL != url {
			continue
		}
		if o.HasSHA1 {
			return o.SHA1, true
		}
		if o.HasRef {
			return resolveRef(snapshots, target, url, o.Ref, depth+1)
		}
		return "", false
	}
	return "", false
}

// resolver looks up the final rewrite target for a raw URL reference
// (attribute value or CSS url()): snapshot overrides first (direct, then
// resolved against the frame URL), then the network log's URL->hash map
// (direct, then frame-resolved). It records every hash it actually uses.
type resolver struct {
	overrides map[string]string
	network   map[string]string
	frameURL  string
	used      map[string]struct{}
}

func newResolver(overrides, network map[string]string, frameURL string) *resolver {
	return &resolver{
		overrides: overrides,
		network:   network,
		frameURL:  frameURL,
		used:      make(map[string]struct{}),
	}
}

// resolve returns the rewritten URL for raw, or raw unchanged if no hash is
// found. data:, blob:, and javascript: URLs are never rewritten.
func (r *resolver) resolve(raw string) string {
	if isSkippedScheme(raw) {
		return raw
	}

	resolved := r.resolveAgainstFrame(raw)

	if h, ok := r.overrides[raw]; ok {
		r.used[h] = struct{}{}
		return "../resources/" + h
	}
	if resolved != raw {
		if h, ok := r.overrides[resolved]; ok {
			r.used[h] = struct{}{}
			return "../resources/" + h
		}
	}
	if h, ok := r.network[raw]; ok {
		r.used[h] = struct{}{}
		return "../resources/" + h
	}
	if resolved != raw {
		if h, ok := r.network[resolved]; ok {
			r.used[h] = struct{}{}
			return "../resources/" + h
		}
	}
	return raw
}

func (r *resolver) resolveAgainstFrame(raw string) string {
	base, err := url.Parse(r.frameURL)
	if err != nil || r.frameURL == "" {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

// usedHashes returns the set of content hashes this resolver's rewrites
// actually referenced.
func (r *resolver) usedHashes() map[string]struct{} {
	return r.used
}

func isSkippedScheme(raw string) bool {
	return hasPrefixFold(raw, "data:") || hasPrefixFold(raw, "blob:") || hasPrefixFold(raw, "javascript:")
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
