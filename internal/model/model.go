// Package model defines the typed in-memory representation of a browser
// trace: context metadata, actions, console events, global errors, network
// resources, pages, and DOM snapshots. Values are constructed once during
// ingestion and are thereafter treated as immutable by every downstream
// component.
package model

import "github.com/tracehub/trace-export/internal/domnode"

// Viewport is a page viewport size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ContextOptions mirrors Playwright's BrowserContext options relevant to
// rendering: viewport, device scale, mobile emulation, user agent, and the
// base URL used to resolve relative navigation.
type ContextOptions struct {
	Viewport    *Viewport `json:"viewport,omitempty"`
	DeviceScale float64   `json:"deviceScaleFactor,omitempty"`
	IsMobile    bool      `json:"isMobile,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	BaseURL     string    `json:"baseURL,omitempty"`
}

// LogEntry is one progress line appended to an Action during its lifetime.
type LogEntry struct {
	Time    float64 `json:"time"`
	Message string  `json:"message"`
}

// ActionError is the error recorded against an Action's "after" event.
type ActionError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Attachment is a named, optionally content-hash-addressed blob attached to
// an Action (log file, screenshot, downloaded artifact, ...).
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	SHA1        string `json:"sha1,omitempty"`
}

// Action is one recorded browser-automation operation or user-level test
// step, identified by its CallID (unique within the trace).
type Action struct {
	CallID         string
	Class          string
	Method         string
	Params         map[string]interface{}
	StartTime      float64
	EndTime        float64
	Log            []LogEntry
	Error          *ActionError
	Result         interface{}
	Stack          []StackFrame
	PageID         string
	ParentID       string
	Title          string
	Group          string
	StepID         string
	BeforeSnapshot string
	AfterSnapshot  string
	Attachments    []Attachment
}

// StackFrame is one frame of an Action's recorded call stack.
type StackFrame struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
	Func   string `json:"function,omitempty"`
}

// ConsoleEvent is one browser console message.
type ConsoleEvent struct {
	Type     string
	Time     float64
	Severity string
	Text     string
	URL      string
	Line     int
	Column   int
}

// GlobalError is a page-level (uncaught) error.
type GlobalError struct {
	Message string
	Stack   []StackFrame
}

// ResourceContent describes a network response body.
type ResourceContent struct {
	Size int64  `json:"size"`
	Text string `json:"text,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
}

// NetworkResource is one request/response pair from the network log.
type NetworkResource struct {
	Method      string
	URL         string
	Status      int
	Content     *ResourceContent
	FailureText string
}

// ScreencastFrame is one timestamped screencast image.
type ScreencastFrame struct {
	SHA1      string
	Timestamp float64
}

// Page groups the screencast frames captured for one pageId.
type Page struct {
	PageID string
	Frames []ScreencastFrame
}

// ResourceOverride rewrites a URL reference within one FrameSnapshot, either
// directly (SHA1 set) or by reference to an earlier same-frame snapshot's
// override for the same URL (Ref set, counted in snapshots-ago).
type ResourceOverride struct {
	URL     string
	SHA1    string
	Ref     int
	HasSHA1 bool
	HasRef  bool
}

// FrameSnapshot is a serialized DOM tree of one frame at one instant,
// identified by (CallID, SnapshotName).
type FrameSnapshot struct {
	CallID            string
	SnapshotName      string
	FrameID           string
	FrameURL          string
	Timestamp         float64
	Doctype           string
	Viewport          *Viewport
	Root              domnode.Node
	ResourceOverrides []ResourceOverride
}

// TraceContext is the top-level container for one ingested trace.
type TraceContext struct {
	BrowserName string
	Channel     string
	Platform    string
	SDKLanguage string
	Version     string
	WallTime    float64
	StartTime   float64
	EndTime     float64
	Options     ContextOptions
	Title       string

	Actions     []*Action
	actionsByID map[string]*Action

	Console []ConsoleEvent
	Errors  []GlobalError

	Resources []NetworkResource
	// URLToHash is the URL -> content-hash map derived from the network
	// log; later inserts win on duplicate URLs.
	URLToHash map[string]string

	Pages     []*Page
	pagesByID map[string]*Page

	// Snapshots groups FrameSnapshots by FrameID, in ingestion order. This
	// order is what "snapshotsAgo" addressing is relative to.
	Snapshots map[string][]*FrameSnapshot
	// SnapshotsInOrder preserves the global ingestion order across all
	// frames, used for deterministic iteration in the snapshot renderer.
	SnapshotsInOrder []*FrameSnapshot
}

// New returns an empty TraceContext ready for ingestion.
func New() *TraceContext {
	return &TraceContext{
		actionsByID: make(map[string]*Action),
		URLToHash:   make(map[string]string),
		pagesByID:   make(map[string]*Page),
		Snapshots:   make(map[string][]*FrameSnapshot),
	}
}

// Action returns the action registered for callID, if any. It never
// creates one: "after"/"log" events use it and are dropped for an unknown
// callID, while "before" registers actions through PutAction.
func (t *TraceContext) Action(callID string) (*Action, bool) {
	a, ok := t.actionsByID[callID]
	return a, ok
}

// PutAction inserts or overwrites the action keyed by callID. Mirrors the
// source's documented "before" overwrite-on-duplicate behavior.
func (t *TraceContext) PutAction(callID string, a *Action) {
	if _, existed := t.actionsByID[callID]; !existed {
		t.Actions = append(t.Actions, a)
	} else {
		for i, existing := range t.Actions {
			if existing.CallID == callID {
				t.Actions[i] = a
				break
			}
		}
	}
	t.actionsByID[callID] = a
}

// GetOrCreatePage returns the Page for pageID, creating it if necessary.
func (t *TraceContext) GetOrCreatePage(pageID string) *Page {
	if p, ok := t.pagesByID[pageID]; ok {
		return p
	}
	p := &Page{PageID: pageID}
	t.pagesByID[pageID] = p
	t.Pages = append(t.Pages, p)
	return p
}

// AddFrameSnapshot appends a frame snapshot to both the per-frame list (for
// snapshotsAgo addressing) and the global ingestion-order list.
func (t *TraceContext) AddFrameSnapshot(s *FrameSnapshot) {
	t.Snapshots[s.FrameID] = append(t.Snapshots[s.FrameID], s)
	t.SnapshotsInOrder = append(t.SnapshotsInOrder, s)
}

// FrameSnapshotsFor returns the full ordered snapshot list for one frame.
func (t *TraceContext) FrameSnapshotsFor(frameID string) []*FrameSnapshot {
	return t.Snapshots[frameID]
}
