package progress

import (
	"testing"
	"time"

	"github.com/gtu-learn/backend/internal/models"
	"github.com/gtu-learn/backend/internal/storage"
)

func TestSessionLifecycle(t *testing.T) {
	kv := storage.NewMemoryKV()
	tracker := NewTracker(kv)

	if err := tracker.StartSession("p.json", "1_a", models.SessionStudy); err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}

	qp := tracker.Get("p.json", "1_a")
	if qp.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1", qp.ReviewCount)
	}
	if qp.LastStudied == nil {
		t.Error("LastStudied not set on session start")
	}

	var open models.ActiveSession
	if found, _ := kv.Get("active-study-session", &open); !found {
		t.Fatal("no active session persisted")
	}
	if open.QuestionID != "1_a" || open.Type != models.SessionStudy {
		t.Errorf("active session = %+v", open)
	}

	tracker.EndSession("p.json", "1_a")

	qp = tracker.Get("p.json", "1_a")
	if len(qp.Sessions) != 1 {
		t.Fatalf("got %d recorded sessions, want 1", len(qp.Sessions))
	}
	if found, _ := kv.Get("active-study-session", &open); found {
		t.Error("active session still persisted after end")
	}
	if found, _ := kv.Get("session-cleanup-needed", &open); found {
		t.Error("cleanup marker still persisted after end")
	}
}

func TestEndSessionRequiresMatch(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryKV())
	tracker.StartSession("p.json", "1_a", models.SessionStudy)

	// Wrong question: the open session stays open.
	tracker.EndSession("p.json", "2_a")
	if got := tracker.Get("p.json", "1_a"); len(got.Sessions) != 0 {
		t.Errorf("session closed by mismatched EndSession: %+v", got.Sessions)
	}

	tracker.EndSession("p.json", "1_a")
	if got := tracker.Get("p.json", "1_a"); len(got.Sessions) != 1 {
		t.Errorf("got %d sessions, want 1", len(got.Sessions))
	}
}

func TestStartSessionClosesPrevious(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryKV())

	tracker.StartSession("p.json", "1_a", models.SessionStudy)
	tracker.StartSession("p.json", "1_b", models.SessionRevision)

	if got := tracker.Get("p.json", "1_a"); len(got.Sessions) != 1 {
		t.Errorf("first session not closed: %d recorded", len(got.Sessions))
	}

	var open models.ActiveSession
	if found, _ := tracker.kv.Get("active-study-session", &open); !found || open.QuestionID != "1_b" {
		t.Errorf("active session = %+v, want 1_b", open)
	}
}

func TestStartSessionRejectsUnknownType(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryKV())
	if err := tracker.StartSession("p.json", "1_a", "cramming"); err == nil {
		t.Error("StartSession() accepted unknown session type")
	}
}

func TestRecoverPendingSession(t *testing.T) {
	kv := storage.NewMemoryKV()

	// Simulate a crash: a cleanup marker from ten minutes ago was never
	// followed by EndSession.
	start := time.Now().Add(-10 * time.Minute)
	kv.Put("session-cleanup-needed", models.ActiveSession{
		PaperID:    "p.json",
		QuestionID: "1_a",
		StartTime:  start,
		Type:       models.SessionStudy,
	})

	tracker := NewTracker(kv)

	qp := tracker.Get("p.json", "1_a")
	if len(qp.Sessions) != 1 {
		t.Fatalf("got %d recovered sessions, want 1", len(qp.Sessions))
	}
	// Wall-clock recovery: about 600 seconds
	if qp.TimeSpentSeconds < 599 || qp.TimeSpentSeconds > 601 {
		t.Errorf("TimeSpentSeconds = %d, want ~600", qp.TimeSpentSeconds)
	}

	var marker models.ActiveSession
	if found, _ := kv.Get("session-cleanup-needed", &marker); found {
		t.Error("cleanup marker survived recovery")
	}
}

func TestCompletionAndConfidence(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryKV())

	tracker.MarkCompleted("p.json", "1_a")
	qp := tracker.Get("p.json", "1_a")
	if !qp.Completed || qp.CompletedAt == nil {
		t.Errorf("after MarkCompleted: %+v", qp)
	}

	tracker.MarkIncomplete("p.json", "1_a")
	qp = tracker.Get("p.json", "1_a")
	if qp.Completed || qp.CompletedAt != nil {
		t.Errorf("after MarkIncomplete: %+v", qp)
	}

	if err := tracker.UpdateConfidence("p.json", "1_a", 6); err == nil {
		t.Error("UpdateConfidence(6) accepted, want error")
	}
	if err := tracker.UpdateConfidence("p.json", "1_a", 4); err != nil {
		t.Fatalf("UpdateConfidence(4) error: %v", err)
	}
	if got := tracker.Get("p.json", "1_a").Confidence; got != 4 {
		t.Errorf("Confidence = %d, want 4", got)
	}
}

func TestLegacyKeyMigration(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Put("progress-tracking-global", map[string]models.QuestionProgress{
		"Q1_a":         {Completed: true},
		"p.json::Q2_a": {Confidence: 3},
	})

	tracker := NewTracker(kv)

	if got := tracker.Get(defaultPaperID, "Q1_a"); !got.Completed {
		t.Error("legacy entry not reachable under default paper id")
	}
	if got := tracker.Get("p.json", "Q2_a"); got.Confidence != 3 {
		t.Errorf("namespaced entry Confidence = %d, want 3", got.Confidence)
	}

	all := tracker.All()
	if _, ok := all["Q1_a"]; ok {
		t.Error("unnamespaced key survived migration")
	}
}
