// Package quiz keeps the history of quiz attempts and the statistics
// derived from it.
package quiz

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gtu-learn/backend/internal/models"
	"github.com/gtu-learn/backend/internal/rating"
	"github.com/gtu-learn/backend/internal/storage"
)

const storageKey = "quiz-history"

// ProgressUpdater receives the per-question confidence collected in quiz
// mode, already mapped to the tracker's 1-5 scale.
type ProgressUpdater interface {
	UpdateConfidence(paperID, questionID string, level int) error
}

type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	progress ProgressUpdater
}

// NewStore builds the store. progress may be nil when quiz results should
// not feed the tracker (tests).
func NewStore(kv storage.KV, progress ProgressUpdater) *Store {
	return &Store{kv: kv, progress: progress}
}

// isInvalid reports whether an attempt is an empty husk: started but never
// meaningfully run. These are purged on every load and save.
func isInvalid(a models.QuizAttempt) bool {
	return a.DurationSeconds == 0 && a.TotalQuestions == 0 && a.CorrectAnswers == 0 && a.Score == 0
}

func (s *Store) load() []models.QuizAttempt {
	var attempts []models.QuizAttempt
	if _, err := s.kv.Get(storageKey, &attempts); err != nil {
		log.Printf("[quiz] load: %v", err)
		return nil
	}

	valid := attempts[:0]
	for _, a := range attempts {
		if !isInvalid(a) {
			valid = append(valid, a)
		}
	}
	return valid
}

func (s *Store) save(attempts []models.QuizAttempt) {
	valid := make([]models.QuizAttempt, 0, len(attempts))
	for _, a := range attempts {
		if !isInvalid(a) {
			valid = append(valid, a)
		}
	}
	if err := s.kv.Put(storageKey, valid); err != nil {
		log.Printf("[quiz] save: %v", err)
	}
}

// StartAttempt creates and immediately persists a new attempt with zeroed
// results.
//
// A freshly started attempt is, by the invariant above, invalid until
// EndAttempt fills it in — TotalQuestions is set here precisely so the
// attempt survives the purge while in flight.
func (s *Store) StartAttempt(paperID string, questions []models.Question, filters models.QuizFilters) models.QuizAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt := models.QuizAttempt{
		ID:             newAttemptID(),
		PaperID:        paperID,
		StartTime:      time.Now(),
		TotalQuestions: len(questions),
		Results:        []models.QuizQuestionResult{},
		Filters:        filters,
	}

	s.save(append(s.load(), attempt))
	return attempt
}

// EndAttempt finalizes an attempt: end time, duration, correct count and
// the marks-weighted score. The result list replaces whatever was there.
func (s *Store) EndAttempt(attemptID string, results []models.QuizQuestionResult) (*models.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.load()
	for i := range attempts {
		if attempts[i].ID != attemptID {
			continue
		}

		now := time.Now()
		a := &attempts[i]
		a.EndTime = &now
		a.DurationSeconds = int(now.Sub(a.StartTime).Seconds())
		a.TotalQuestions = len(results)
		a.Results = results

		correct, earnedMarks, totalMarks := 0, 0, 0
		for j := range results {
			res := &results[j]
			res.Confidence = rating.ConfidenceFromQuizRating(res.DifficultyRating)
			totalMarks += res.Marks
			if res.Correct {
				correct++
				earnedMarks += res.Marks
			}
		}
		a.CorrectAnswers = correct
		if totalMarks > 0 {
			a.Score = int(math.Round(float64(earnedMarks) / float64(totalMarks) * 100))
		} else {
			a.Score = 0
		}

		finalized := *a
		s.save(attempts)
		s.feedProgress(finalized)

		// The attempt may have purged itself if it ended all-zero.
		if isInvalid(finalized) {
			return nil, nil
		}
		return &finalized, nil
	}
	return nil, fmt.Errorf("attempt %s not found", attemptID)
}

// feedProgress pushes each result's mapped confidence into the tracker.
func (s *Store) feedProgress(a models.QuizAttempt) {
	if s.progress == nil {
		return
	}
	for _, res := range a.Results {
		paperID := res.SourcePaper
		if paperID == "" {
			paperID = a.PaperID
		}
		if res.Confidence > 0 {
			if err := s.progress.UpdateConfidence(paperID, res.QuestionID, res.Confidence); err != nil {
				log.Printf("[quiz] feed confidence for %s: %v", res.QuestionID, err)
			}
		}
	}
}

func (s *Store) setHidden(attemptID string, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.load()
	for i := range attempts {
		if attempts[i].ID == attemptID {
			attempts[i].Hidden = hidden
			s.save(attempts)
			return nil
		}
	}
	return fmt.Errorf("attempt %s not found", attemptID)
}

func (s *Store) Hide(attemptID string) error { return s.setHidden(attemptID, true) }
func (s *Store) Show(attemptID string) error { return s.setHidden(attemptID, false) }

func (s *Store) Delete(attemptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.load()
	for i := range attempts {
		if attempts[i].ID == attemptID {
			s.save(append(attempts[:i], attempts[i+1:]...))
			return nil
		}
	}
	return fmt.Errorf("attempt %s not found", attemptID)
}

// Visible returns all non-hidden attempts.
func (s *Store) Visible() []models.QuizAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return visible(s.load())
}

func visible(attempts []models.QuizAttempt) []models.QuizAttempt {
	var out []models.QuizAttempt
	for _, a := range attempts {
		if !a.Hidden {
			out = append(out, a)
		}
	}
	return out
}

var attemptRng = rand.New(rand.NewSource(time.Now().UnixNano()))

// newAttemptID combines a millisecond timestamp with a random suffix.
func newAttemptID() string {
	return fmt.Sprintf("%d-%06d", time.Now().UnixMilli(), attemptRng.Intn(1000000))
}
