// Package progress tracks per-question study state (sessions, completion,
// confidence) and derives the aggregate statistics shown on the dashboard.
package progress

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gtu-learn/backend/internal/models"
	"github.com/gtu-learn/backend/internal/storage"
)

const (
	storageKey       = "progress-tracking-global"
	activeSessionKey = "active-study-session"
	cleanupNeededKey = "session-cleanup-needed"
	separator        = "::"
	defaultPaperID   = "default"
)

type Tracker struct {
	mu sync.Mutex
	kv storage.KV
}

// NewTracker builds the tracker and folds in any session left open by an
// ungraceful exit before normal reads proceed.
func NewTracker(kv storage.KV) *Tracker {
	t := &Tracker{kv: kv}
	t.recoverPendingSession()
	return t
}

func progressKey(paperID, questionID string) string {
	return paperID + separator + questionID
}

// load reads the full progress map, migrating legacy unnamespaced keys
// under the default paper id. Migration writes back immediately and is
// idempotent.
func (t *Tracker) load() map[string]models.QuestionProgress {
	m := make(map[string]models.QuestionProgress)
	if _, err := t.kv.Get(storageKey, &m); err != nil {
		log.Printf("[progress] load: %v", err)
		return make(map[string]models.QuestionProgress)
	}

	migrated := false
	for key, qp := range m {
		if !strings.Contains(key, separator) {
			delete(m, key)
			m[progressKey(defaultPaperID, key)] = qp
			migrated = true
		}
	}
	if migrated {
		t.save(m)
	}
	return m
}

func (t *Tracker) save(m map[string]models.QuestionProgress) {
	if err := t.kv.Put(storageKey, m); err != nil {
		log.Printf("[progress] save: %v", err)
	}
}

// recoverPendingSession closes a session that never saw EndSession. Its
// duration is wall-clock from the stored start to now, which overstates
// focus time slightly but never loses it.
func (t *Tracker) recoverPendingSession() {
	t.mu.Lock()
	defer t.mu.Unlock()

	var pending models.ActiveSession
	found, err := t.kv.Get(cleanupNeededKey, &pending)
	if err != nil {
		log.Printf("[progress] read pending session: %v", err)
		return
	}
	if !found {
		return
	}

	now := time.Now()
	duration := int(now.Sub(pending.StartTime).Seconds())
	if duration < 0 {
		duration = 0
	}

	m := t.load()
	qp := m[progressKey(pending.PaperID, pending.QuestionID)]
	qp.Sessions = append(qp.Sessions, models.StudySession{
		StartTime:       pending.StartTime,
		EndTime:         now,
		DurationSeconds: duration,
		Type:            pending.Type,
	})
	qp.TimeSpentSeconds += duration
	m[progressKey(pending.PaperID, pending.QuestionID)] = qp
	t.save(m)

	t.kv.Delete(cleanupNeededKey)
	t.kv.Delete(activeSessionKey)
	log.Printf("[progress] recovered pending session for %s (%ds)", pending.QuestionID, duration)
}

// StartSession opens a timed session on a question. An already-open session
// on another question is closed first so two sessions never overlap.
func (t *Tracker) StartSession(paperID, questionID string, sessionType models.SessionType) error {
	if !models.ValidSessionTypes[sessionType] {
		return fmt.Errorf("invalid session type %q", sessionType)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var open models.ActiveSession
	if found, _ := t.kv.Get(activeSessionKey, &open); found {
		t.closeSession(open, time.Now())
	}

	now := time.Now()
	session := models.ActiveSession{
		PaperID:    paperID,
		QuestionID: questionID,
		StartTime:  now,
		Type:       sessionType,
	}
	if err := t.kv.Put(activeSessionKey, session); err != nil {
		log.Printf("[progress] persist active session: %v", err)
	}
	// The cleanup marker mirrors the active session; it is what the next
	// boot reads if this session is never closed.
	if err := t.kv.Put(cleanupNeededKey, session); err != nil {
		log.Printf("[progress] persist cleanup marker: %v", err)
	}

	m := t.load()
	qp := m[progressKey(paperID, questionID)]
	qp.ReviewCount++
	qp.LastStudied = &now
	m[progressKey(paperID, questionID)] = qp
	t.save(m)
	return nil
}

// EndSession closes the open session if it belongs to this paper+question.
// Ending when no matching session is open is a no-op.
func (t *Tracker) EndSession(paperID, questionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var open models.ActiveSession
	found, err := t.kv.Get(activeSessionKey, &open)
	if err != nil || !found {
		return
	}
	if open.PaperID != paperID || open.QuestionID != questionID {
		return
	}
	t.closeSession(open, time.Now())
}

// closeSession appends the closed session record and clears both session
// keys. Caller holds the lock.
func (t *Tracker) closeSession(open models.ActiveSession, end time.Time) {
	duration := int(end.Sub(open.StartTime).Seconds())
	if duration < 0 {
		duration = 0
	}

	m := t.load()
	qp := m[progressKey(open.PaperID, open.QuestionID)]
	qp.Sessions = append(qp.Sessions, models.StudySession{
		StartTime:       open.StartTime,
		EndTime:         end,
		DurationSeconds: duration,
		Type:            open.Type,
	})
	qp.TimeSpentSeconds += duration
	m[progressKey(open.PaperID, open.QuestionID)] = qp
	t.save(m)

	t.kv.Delete(activeSessionKey)
	t.kv.Delete(cleanupNeededKey)
}

func (t *Tracker) MarkCompleted(paperID, questionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	m := t.load()
	qp := m[progressKey(paperID, questionID)]
	qp.Completed = true
	qp.CompletedAt = &now
	m[progressKey(paperID, questionID)] = qp
	t.save(m)
}

func (t *Tracker) MarkIncomplete(paperID, questionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.load()
	qp := m[progressKey(paperID, questionID)]
	qp.Completed = false
	qp.CompletedAt = nil
	m[progressKey(paperID, questionID)] = qp
	t.save(m)
}

// UpdateConfidence sets the 0-5 confidence level, independent of completion.
func (t *Tracker) UpdateConfidence(paperID, questionID string, level int) error {
	if level < 0 || level > 5 {
		return fmt.Errorf("confidence must be between 0 and 5, got %d", level)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.load()
	qp := m[progressKey(paperID, questionID)]
	qp.Confidence = level
	m[progressKey(paperID, questionID)] = qp
	t.save(m)
	return nil
}

func (t *Tracker) Get(paperID, questionID string) models.QuestionProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()[progressKey(paperID, questionID)]
}

// All returns the full progress map keyed "{paperID}::{questionID}".
func (t *Tracker) All() map[string]models.QuestionProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}
