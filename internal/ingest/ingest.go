// Package ingest reads the NDJSON event logs of a trace archive (every
// *.trace and *.network entry) and builds a typed model.TraceContext.
// Malformed lines and unrecognized event types are dropped silently; the
// trace is treated as best-effort, since traces are produced by live
// recorders under tight timing and partial corruption is common.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/tracehub/trace-export/internal/domnode"
	"github.com/tracehub/trace-export/internal/model"
)

// BlobStore is the narrow interface onto the archive this package needs:
// list entry names, read an entry's bytes. internal/archive.Store satisfies
// this.
type BlobStore interface {
	Names() []string
	Read(name string) ([]byte, error)
}

// isEventLog reports whether name ends with any of the event-log suffixes
// this ingestor reads.
func isEventLog(name string) bool {
	return hasSuffix(name, ".trace") || hasSuffix(name, ".network")
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

// rawEvent is the minimal envelope every event line is decoded into first,
// so we can dispatch on Type before committing to a full shape.
type rawEvent struct {
	Type string `json:"type"`
}

// Ingest reads every *.trace and *.network entry from store and returns the
// resulting trace model. Actions are sorted by start time ascending before
// return, and the trace's EndTime is the max over all action end times.
func Ingest(store BlobStore) *model.TraceContext {
	t := model.New()

	names := store.Names()
	sort.Strings(names)

	for _, name := range names {
		if !isEventLog(name) {
			continue
		}
		data, err := store.Read(name)
		if err != nil {
			slog.Debug("ingest: unreadable trace entry", "name", name, "error", err)
			continue
		}
		ingestLines(t, data)
	}

	sort.SliceStable(t.Actions, func(i, j int) bool {
		return t.Actions[i].StartTime < t.Actions[j].StartTime
	})

	var maxEnd float64
	for _, a := range t.Actions {
		if a.EndTime > maxEnd {
			maxEnd = a.EndTime
		}
	}
	if maxEnd > t.EndTime {
		t.EndTime = maxEnd
	}

	return t
}

func ingestLines(t *model.TraceContext, data []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var env rawEvent
		if err := json.Unmarshal(line, &env); err != nil {
			slog.Debug("ingest: malformed event line", "error", err)
			continue
		}

		switch env.Type {
		case "context-options":
			dispatchContextOptions(t, line)
		case "before":
			dispatchBefore(t, line)
		case "after":
			dispatchAfter(t, line)
		case "log":
			dispatchLog(t, line)
		case "console":
			dispatchConsole(t, line)
		case "error":
			dispatchError(t, line)
		case "resource-snapshot":
			dispatchResourceSnapshot(t, line)
		case "screencast-frame":
			dispatchScreencastFrame(t, line)
		case "frame-snapshot":
			dispatchFrameSnapshot(t, line)
		default:
			// Unrecognized event types are silently ignored.
		}
	}
}

type contextOptionsEvent struct {
	BrowserName string      `json:"browserName"`
	Channel     string      `json:"channel"`
	Platform    string      `json:"platform"`
	SDKLanguage string      `json:"sdkLanguage"`
	Version     json.RawMessage `json:"version"`
	WallTime    float64     `json:"wallTime"`
	StartTime   float64     `json:"monotonicTime"`
	Title       string      `json:"title"`
	Options     struct {
		Viewport *struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"viewport"`
		DeviceScaleFactor float64 `json:"deviceScaleFactor"`
		IsMobile          bool    `json:"isMobile"`
		UserAgent         string  `json:"userAgent"`
		BaseURL           string  `json:"baseURL"`
	} `json:"options"`
}

func dispatchContextOptions(t *model.TraceContext, line []byte) {
	var ev contextOptionsEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		slog.Debug("ingest: bad context-options event", "error", err)
		return
	}
	t.BrowserName = ev.BrowserName
	t.Channel = ev.Channel
	t.Platform = ev.Platform
	t.SDKLanguage = ev.SDKLanguage
	// version may be a JSON string ("1.40.0") or a bare number.
	if len(ev.Version) > 0 {
		var s string
		if err := json.Unmarshal(ev.Version, &s); err == nil {
			t.Version = s
		} else {
			t.Version = string(ev.Version)
		}
	}
	t.WallTime = ev.WallTime
	t.StartTime = ev.StartTime
	t.Title = ev.Title
	if ev.Options.Viewport != nil {
		t.Options.Viewport = &model.Viewport{
			Width:  ev.Options.Viewport.Width,
			Height: ev.Options.Viewport.Height,
		}
	}
	t.Options.DeviceScale = ev.Options.DeviceScaleFactor
	t.Options.IsMobile = ev.Options.IsMobile
	t.Options.UserAgent = ev.Options.UserAgent
	t.Options.BaseURL = ev.Options.BaseURL
}

type beforeEvent struct {
	CallID         string                 `json:"callId"`
	Title          string                 `json:"title"`
	Class          string                 `json:"class"`
	Method         string                 `json:"method"`
	Params         map[string]interface{} `json:"params"`
	StartTime      float64                `json:"startTime"`
	PageID         string                 `json:"pageId"`
	ParentID       string                 `json:"parentId"`
	StepID         string                 `json:"stepId"`
	Group          string                 `json:"group"`
	BeforeSnapshot string                 `json:"beforeSnapshot"`
	Stack          []model.StackFrame     `json:"stack"`
}

func dispatchBefore(t *model.TraceContext, line []byte) {
	var ev beforeEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.CallID == "" {
		slog.Debug("ingest: bad before event", "error", err)
		return
	}
	a := &model.Action{
		CallID:         ev.CallID,
		Class:          ev.Class,
		Method:         ev.Method,
		Params:         ev.Params,
		StartTime:      ev.StartTime,
		PageID:         ev.PageID,
		ParentID:       ev.ParentID,
		Title:          ev.Title,
		Group:          ev.Group,
		StepID:         ev.StepID,
		BeforeSnapshot: ev.BeforeSnapshot,
		Stack:          ev.Stack,
	}
	// Duplicate callId overwrites the prior action wholesale rather than
	// merging fields into it.
	t.PutAction(ev.CallID, a)
}

type afterEvent struct {
	CallID        string               `json:"callId"`
	EndTime       float64              `json:"endTime"`
	Error         *model.ActionError   `json:"error"`
	Result        interface{}          `json:"result"`
	AfterSnapshot string               `json:"afterSnapshot"`
	Attachments   []model.Attachment   `json:"attachments"`
}

func dispatchAfter(t *model.TraceContext, line []byte) {
	var ev afterEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.CallID == "" {
		slog.Debug("ingest: bad after event", "error", err)
		return
	}
	a, ok := t.Action(ev.CallID)
	if !ok {
		// Unknown callId: drop. "before" may simply not have arrived yet
		// (or arrived-after is tolerated but the callId must exist in
		// the trace at all for the after to land anywhere sensible).
		return
	}
	a.EndTime = ev.EndTime
	a.Error = ev.Error
	a.Result = ev.Result
	a.AfterSnapshot = ev.AfterSnapshot
	a.Attachments = ev.Attachments
}

type logEvent struct {
	CallID  string  `json:"callId"`
	Time    float64 `json:"time"`
	Message string  `json:"message"`
}

func dispatchLog(t *model.TraceContext, line []byte) {
	var ev logEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.CallID == "" {
		return
	}
	a, ok := t.Action(ev.CallID)
	if !ok {
		return
	}
	a.Log = append(a.Log, model.LogEntry{Time: ev.Time, Message: ev.Message})
}

type consoleEvent struct {
	Time     float64 `json:"time"`
	Severity string  `json:"messageType"`
	Text     string  `json:"text"`
	Location *struct {
		URL    string `json:"url"`
		Line   int    `json:"lineNumber"`
		Column int    `json:"columnNumber"`
	} `json:"location"`
}

func dispatchConsole(t *model.TraceContext, line []byte) {
	var ev consoleEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return
	}
	ce := model.ConsoleEvent{
		Type:     "console",
		Time:     ev.Time,
		Severity: ev.Severity,
		Text:     ev.Text,
	}
	if ev.Location != nil {
		ce.URL = ev.Location.URL
		ce.Line = ev.Location.Line
		ce.Column = ev.Location.Column
	}
	t.Console = append(t.Console, ce)
}

type errorEvent struct {
	Error struct {
		Message string             `json:"message"`
		Stack   []model.StackFrame `json:"stack"`
	} `json:"error"`
}

func dispatchError(t *model.TraceContext, line []byte) {
	var ev errorEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return
	}
	t.Errors = append(t.Errors, model.GlobalError{
		Message: ev.Error.Message,
		Stack:   ev.Error.Stack,
	})
}

type resourceSnapshotEvent struct {
	Snapshot struct {
		Request struct {
			Method string `json:"method"`
			URL    string `json:"url"`
		} `json:"request"`
		Response struct {
			Status  int `json:"status"`
			Content *struct {
				Size int64  `json:"size"`
				Text string `json:"text"`
				SHA1 string `json:"sha1"`
			} `json:"content"`
			FailureText string `json:"_failureText"`
		} `json:"response"`
	} `json:"snapshot"`
}

func dispatchResourceSnapshot(t *model.TraceContext, line []byte) {
	var ev resourceSnapshotEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return
	}
	r := model.NetworkResource{
		Method:      ev.Snapshot.Request.Method,
		URL:         ev.Snapshot.Request.URL,
		Status:      ev.Snapshot.Response.Status,
		FailureText: ev.Snapshot.Response.FailureText,
	}
	if ev.Snapshot.Response.Content != nil {
		r.Content = &model.ResourceContent{
			Size: ev.Snapshot.Response.Content.Size,
			Text: ev.Snapshot.Response.Content.Text,
			SHA1: ev.Snapshot.Response.Content.SHA1,
		}
		if r.URL != "" && r.Content.SHA1 != "" {
			// Last insert wins on duplicate URLs.
			t.URLToHash[r.URL] = r.Content.SHA1
		}
	}
	t.Resources = append(t.Resources, r)
}

type screencastFrameEvent struct {
	PageID    string  `json:"pageId"`
	SHA1      string  `json:"sha1"`
	Timestamp float64 `json:"timestamp"`
}

func dispatchScreencastFrame(t *model.TraceContext, line []byte) {
	var ev screencastFrameEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return
	}
	p := t.GetOrCreatePage(ev.PageID)
	p.Frames = append(p.Frames, model.ScreencastFrame{
		SHA1:      ev.SHA1,
		Timestamp: ev.Timestamp,
	})
}

type resourceOverrideWire struct {
	URL  string  `json:"url"`
	SHA1 *string `json:"sha1"`
	Ref  *int    `json:"ref"`
}

type frameSnapshotEvent struct {
	Snapshot struct {
		CallID       string       `json:"callId"`
		SnapshotName string       `json:"snapshotName"`
		FrameID      string       `json:"frameId"`
		FrameURL     string       `json:"frameUrl"`
		Doctype      string       `json:"doctype"`
		HTML         domnode.Node `json:"html"`
		Viewport     *struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"viewport"`
		Timestamp         float64                `json:"timestamp"`
		ResourceOverrides []resourceOverrideWire `json:"resourceOverrides"`
	} `json:"snapshot"`
}

func dispatchFrameSnapshot(t *model.TraceContext, line []byte) {
	var ev frameSnapshotEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		slog.Debug("ingest: bad frame-snapshot event", "error", err)
		return
	}
	s := &model.FrameSnapshot{
		CallID:       ev.Snapshot.CallID,
		SnapshotName: ev.Snapshot.SnapshotName,
		FrameID:      ev.Snapshot.FrameID,
		FrameURL:     ev.Snapshot.FrameURL,
		Timestamp:    ev.Snapshot.Timestamp,
		Doctype:      ev.Snapshot.Doctype,
		Root:         ev.Snapshot.HTML,
	}
	if ev.Snapshot.Viewport != nil {
		s.Viewport = &model.Viewport{
			Width:  ev.Snapshot.Viewport.Width,
			Height: ev.Snapshot.Viewport.Height,
		}
	}
	for _, o := range ev.Snapshot.ResourceOverrides {
		ov := model.ResourceOverride{URL: o.URL}
		if o.SHA1 != nil {
			ov.SHA1 = *o.SHA1
			ov.HasSHA1 = true
		}
		if o.Ref != nil {
			ov.Ref = *o.Ref
			ov.HasRef = true
		}
		s.ResourceOverrides = append(s.ResourceOverrides, ov)
	}
	t.AddFrameSnapshot(s)
}
