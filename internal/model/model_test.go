package model

import "testing"

func TestPutActionOverwritesOnDuplicateCallID(t *testing.T) {
	tc := New()

	tc.PutAction("c1", &Action{CallID: "c1", Method: "first"})
	tc.PutAction("c1", &Action{CallID: "c1", Method: "second"})

	if len(tc.Actions) != 1 {
		t.Fatalf("expected 1 action after duplicate callId, got %d", len(tc.Actions))
	}
	a, ok := tc.Action("c1")
	if !ok {
		t.Fatal("expected action c1 to exist")
	}
	if a.Method != "second" {
		t.Fatalf("expected overwrite to win, got method %q", a.Method)
	}
}

func TestGetOrCreatePage(t *testing.T) {
	tc := New()

	p1 := tc.GetOrCreatePage("page1")
	p2 := tc.GetOrCreatePage("page1")
	if p1 != p2 {
		t.Fatal("expected same page pointer for repeated pageId")
	}
	if len(tc.Pages) != 1 {
		t.Fatalf("expected 1 registered page, got %d", len(tc.Pages))
	}
}

func TestAddFrameSnapshotOrdering(t *testing.T) {
	tc := New()

	s1 := &FrameSnapshot{FrameID: "f1", SnapshotName: "s1"}
	s2 := &FrameSnapshot{FrameID: "f2", SnapshotName: "s2"}
	s3 := &FrameSnapshot{FrameID: "f1", SnapshotName: "s3"}

	tc.AddFrameSnapshot(s1)
	tc.AddFrameSnapshot(s2)
	tc.AddFrameSnapshot(s3)

	if len(tc.SnapshotsInOrder) != 3 {
		t.Fatalf("expected 3 snapshots in global order, got %d", len(tc.SnapshotsInOrder))
	}
	f1Snaps := tc.FrameSnapshotsFor("f1")
	if len(f1Snaps) != 2 || f1Snaps[0] != s1 || f1Snaps[1] != s3 {
		t.Fatalf("expected per-frame ordering [s1, s3], got %+v", f1Snaps)
	}
}

func TestURLToHashLastWriteWins(t *testing.T) {
	tc := New()
	tc.URLToHash["/a.png"] = "hash1"
	tc.URLToHash["/a.png"] = "hash2"

	if tc.URLToHash["/a.png"] != "hash2" {
		t.Fatalf("expected last write to win, got %q", tc.URLToHash["/a.png"])
	}
}
