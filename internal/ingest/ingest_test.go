package ingest

import (
	"testing"
)

type fakeStore struct {
	files map[string][]byte
}

func (f *fakeStore) Names() []string {
	names := make([]string, 0, len(f.files))
	for n := range f.files {
		names = append(names, n)
	}
	return names
}

func (f *fakeStore) Read(name string) ([]byte, error) {
	return f.files[name], nil
}

func TestIngestContextOptions(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(`{"type":"context-options","browserName":"chromium","title":"My test","monotonicTime":100,"options":{"viewport":{"width":1280,"height":720}}}` + "\n"),
	}}
	tc := Ingest(store)

	if tc.BrowserName != "chromium" || tc.Title != "My test" {
		t.Fatalf("got %+v", tc)
	}
	if tc.Options.Viewport == nil || tc.Options.Viewport.Width != 1280 {
		t.Fatalf("viewport not ingested: %+v", tc.Options.Viewport)
	}
}

func TestIngestBeforeAfterRoundTrip(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(
			`{"type":"before","callId":"c1","class":"Test","method":"click","startTime":10}` + "\n" +
				`{"type":"after","callId":"c1","endTime":20}` + "\n",
		),
	}}
	tc := Ingest(store)

	if len(tc.Actions) != 1 {
		t.Fatalf("expected exactly 1 action, got %d", len(tc.Actions))
	}
	a := tc.Actions[0]
	if a.StartTime != 10 || a.EndTime != 20 {
		t.Fatalf("got %+v", a)
	}
}

func TestIngestAfterBeforeBeforeArrives(t *testing.T) {
	// "after" arrives first for an unknown callId: it's tolerated (dropped,
	// not a parse error), and a later "before" still creates the action.
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(
			`{"type":"after","callId":"c1","endTime":20}` + "\n" +
				`{"type":"before","callId":"c1","class":"Test","method":"click","startTime":10}` + "\n",
		),
	}}
	tc := Ingest(store)

	if len(tc.Actions) != 1 {
		t.Fatalf("expected exactly 1 action, got %d", len(tc.Actions))
	}
	if tc.Actions[0].EndTime != 0 {
		t.Fatalf("expected out-of-order after to be dropped, got EndTime=%v", tc.Actions[0].EndTime)
	}
}

func TestIngestConsoleAndError(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(
			`{"type":"console","time":5,"messageType":"warning","text":"oops"}` + "\n" +
				`{"type":"error","error":{"message":"boom","stack":[]}}` + "\n",
		),
	}}
	tc := Ingest(store)

	if len(tc.Console) != 1 || tc.Console[0].Text != "oops" {
		t.Fatalf("got console %+v", tc.Console)
	}
	if len(tc.Errors) != 1 || tc.Errors[0].Message != "boom" {
		t.Fatalf("got errors %+v", tc.Errors)
	}
}

func TestIngestResourceSnapshotLastWriteWins(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.network": []byte(
			`{"type":"resource-snapshot","snapshot":{"request":{"method":"GET","url":"/a.png"},"response":{"status":200,"content":{"size":10,"sha1":"hash1"}}}}` + "\n" +
				`{"type":"resource-snapshot","snapshot":{"request":{"method":"GET","url":"/a.png"},"response":{"status":200,"content":{"size":20,"sha1":"hash2"}}}}` + "\n",
		),
	}}

	tc := Ingest(store)

	if len(tc.Resources) != 2 {
		t.Fatalf("expected 2 resource records, got %d", len(tc.Resources))
	}
	if tc.URLToHash["/a.png"] != "hash2" {
		t.Fatalf("expected last write to win, got %q", tc.URLToHash["/a.png"])
	}
}

func TestIngestScreencastFrame(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(`{"type":"screencast-frame","pageId":"p1","sha1":"hash1","timestamp":42}` + "\n"),
	}}
	tc := Ingest(store)

	if len(tc.Pages) != 1 || len(tc.Pages[0].Frames) != 1 {
		t.Fatalf("got pages %+v", tc.Pages)
	}
	if tc.Pages[0].Frames[0].Timestamp != 42 {
		t.Fatalf("got frame %+v", tc.Pages[0].Frames[0])
	}
}

func TestIngestFrameSnapshot(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(
			`{"type":"frame-snapshot","snapshot":{"callId":"c1","snapshotName":"s1","frameId":"f1","frameUrl":"https://example.com","html":["DIV",{},"hi"],"resourceOverrides":[{"url":"/a.png","sha1":"hash1"}]}}` + "\n",
		),
	}}
	tc := Ingest(store)

	snaps := tc.FrameSnapshotsFor("f1")
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	if snaps[0].SnapshotName != "s1" || snaps[0].Root.Name != "DIV" {
		t.Fatalf("got %+v", snaps[0])
	}
	if len(snaps[0].ResourceOverrides) != 1 || !snaps[0].ResourceOverrides[0].HasSHA1 {
		t.Fatalf("got overrides %+v", snaps[0].ResourceOverrides)
	}
}

func TestIngestMalformedLineSwallowed(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte("not json\n" + `{"type":"console","time":1,"messageType":"log","text":"ok"}` + "\n"),
	}}
	tc := Ingest(store)

	if len(tc.Console) != 1 {
		t.Fatalf("expected malformed line dropped and valid line kept, got console=%+v", tc.Console)
	}
}

func TestIngestUnknownEventTypeIgnored(t *testing.T) {
	store := &fakeStore{files: map[string][]byte{
		"0-trace.trace": []byte(`{"type":"totally-unknown"}` + "\n"),
	}}
	tc := Ingest(store)

	if len(tc.Actions) != 0 || len(tc.Console) != 0 || len(tc.Errors) != 0 {
		t.Fatalf("expected unknown event type to be a no-op, got %+v", tc)
	}
}
