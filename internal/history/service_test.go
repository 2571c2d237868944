package history

import (
	"strings"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(t.TempDir())
}

func TestRecordAndRevisions(t *testing.T) {
	svc := newTestService(t)

	snap := Snapshot{Title: "الرحلة", Category: "مغامرة", Content: "النسخة الأولى"}
	if err := svc.Record("story-a", snap, "ليلى", "create story"); err != nil {
		t.Fatalf("record: %v", err)
	}
	snap.Content = "النسخة الثانية"
	if err := svc.Record("story-a", snap, "ليلى", "update story"); err != nil {
		t.Fatalf("record update: %v", err)
	}

	revisions, err := svc.Revisions("story-a", 0)
	if err != nil {
		t.Fatalf("revisions: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revisions))
	}
	if !strings.Contains(revisions[0].Message, "update story") {
		t.Errorf("newest revision should be the update, got %q", revisions[0].Message)
	}
	if !strings.Contains(revisions[1].Message, "create story") {
		t.Errorf("oldest revision should be the create, got %q", revisions[1].Message)
	}
	if revisions[0].Author != "ليلى" {
		t.Errorf("author = %q, want ليلى", revisions[0].Author)
	}
	if len(revisions[0].Hash) != 7 {
		t.Errorf("hash should be abbreviated to 7 chars, got %q", revisions[0].Hash)
	}
}

func TestRevisionsLimit(t *testing.T) {
	svc := newTestService(t)

	snap := Snapshot{Title: "t", Category: "مغامرة"}
	for i := 0; i < 5; i++ {
		snap.Content = strings.Repeat("x", i+1)
		if err := svc.Record("story-b", snap, "user", "edit"); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	revisions, err := svc.Revisions("story-b", 3)
	if err != nil {
		t.Fatalf("revisions: %v", err)
	}
	if len(revisions) != 3 {
		t.Errorf("expected limit of 3 revisions, got %d", len(revisions))
	}
}

func TestRevisionsUnknownStory(t *testing.T) {
	svc := newTestService(t)

	revisions, err := svc.Revisions("story-missing", 10)
	if err != nil {
		t.Fatalf("revisions: %v", err)
	}
	if len(revisions) != 0 {
		t.Errorf("expected empty history, got %d entries", len(revisions))
	}
}

func TestSnapshotAt(t *testing.T) {
	svc := newTestService(t)

	first := Snapshot{Title: "قبل", Category: "دراما", Content: "أصل القصة"}
	if err := svc.Record("story-c", first, "فاطمة", "create"); err != nil {
		t.Fatalf("record: %v", err)
	}
	second := first
	second.Title = "بعد"
	if err := svc.Record("story-c", second, "فاطمة", "rename"); err != nil {
		t.Fatalf("record: %v", err)
	}

	revisions, err := svc.Revisions("story-c", 0)
	if err != nil {
		t.Fatalf("revisions: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revisions))
	}

	got, err := svc.SnapshotAt("story-c", revisions[1].Hash)
	if err != nil {
		t.Fatalf("snapshot at %s: %v", revisions[1].Hash, err)
	}
	if got.Title != "قبل" {
		t.Errorf("old snapshot title = %q, want قبل", got.Title)
	}

	got, err = svc.SnapshotAt("story-c", revisions[0].Hash)
	if err != nil {
		t.Fatalf("snapshot at head: %v", err)
	}
	if got.Title != "بعد" {
		t.Errorf("head snapshot title = %q, want بعد", got.Title)
	}
}

func TestForget(t *testing.T) {
	svc := newTestService(t)

	snap := Snapshot{Title: "t", Category: "مغامرة", Content: "c"}
	if err := svc.Record("story-d", snap, "user", "create"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Forget("story-d"); err != nil {
		t.Fatalf("forget: %v", err)
	}

	revisions, err := svc.Revisions("story-d", 0)
	if err != nil {
		t.Fatalf("revisions after forget: %v", err)
	}
	if len(revisions) != 0 {
		t.Errorf("expected no revisions after forget, got %d", len(revisions))
	}
}
