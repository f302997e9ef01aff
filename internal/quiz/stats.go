package quiz

import (
	"sort"
	"time"

	"github.com/gtu-learn/backend/internal/models"
)

// Derived aggregates over visible attempts. Recomputed per call, like the
// progress aggregates.

// ByTimeRange returns visible attempts started within the last `days` days.
// days <= 0 means no time filter.
func (s *Store) ByTimeRange(days int) []models.QuizAttempt {
	attempts := s.Visible()
	if days <= 0 {
		if attempts == nil {
			attempts = []models.QuizAttempt{}
		}
		return attempts
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	out := []models.QuizAttempt{}
	for _, a := range attempts {
		if a.StartTime.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

// PerformanceTrend buckets visible attempts by calendar day and averages
// the score per day, oldest day first.
func (s *Store) PerformanceTrend(days int) []models.DailyScore {
	type bucket struct {
		attempts int
		scoreSum int
	}
	buckets := make(map[string]*bucket)
	for _, a := range s.ByTimeRange(days) {
		day := a.StartTime.Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.attempts++
		b.scoreSum += a.Score
	}

	dates := make([]string, 0, len(buckets))
	for day := range buckets {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	trend := make([]models.DailyScore, 0, len(dates))
	for _, day := range dates {
		b := buckets[day]
		trend = append(trend, models.DailyScore{
			Date:         day,
			Attempts:     b.attempts,
			AverageScore: float64(b.scoreSum) / float64(b.attempts),
		})
	}
	return trend
}

// TopicPerformance groups results by question number and averages a binary
// correct/incorrect score per group.
//
// The grouping key is the question number, not the question's tags — tags
// are not carried into quiz results, so "topic" here really means "question
// slot across papers". Kept as-is for continuity with existing history.
func (s *Store) TopicPerformance() []models.TopicStat {
	type bucket struct{ attempted, correct int }
	buckets := make(map[string]*bucket)
	var order []string

	for _, a := range s.Visible() {
		for _, res := range a.Results {
			topic := "Q" + res.QuestionNo
			b, ok := buckets[topic]
			if !ok {
				b = &bucket{}
				buckets[topic] = b
				order = append(order, topic)
			}
			b.attempted++
			if res.Correct {
				b.correct++
			}
		}
	}

	stats := make([]models.TopicStat, 0, len(order))
	sort.Strings(order)
	for _, topic := range order {
		b := buckets[topic]
		stats = append(stats, models.TopicStat{
			Topic:        topic,
			Attempted:    b.attempted,
			Correct:      b.correct,
			AverageScore: float64(b.correct) / float64(b.attempted) * 100,
		})
	}
	return stats
}

// Stats summarizes all visible attempts. The improvement trend compares the
// average score of the chronologically first half against the second half,
// and stays 0 until at least 4 attempts exist.
func (s *Store) Stats() models.QuizStats {
	attempts := s.Visible()

	stats := models.QuizStats{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return stats
	}

	scoreSum, questionCount := 0, 0
	for _, a := range attempts {
		scoreSum += a.Score
		if a.Score > stats.BestScore {
			stats.BestScore = a.Score
		}
		stats.TotalTimeSeconds += a.DurationSeconds
		questionCount += a.TotalQuestions
	}
	stats.AverageScore = float64(scoreSum) / float64(len(attempts))
	if questionCount > 0 {
		stats.AvgTimePerQuestion = float64(stats.TotalTimeSeconds) / float64(questionCount)
	}

	if len(attempts) >= 4 {
		sorted := make([]models.QuizAttempt, len(attempts))
		copy(sorted, attempts)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		})

		half := len(sorted) / 2
		firstSum, secondSum := 0, 0
		for _, a := range sorted[:half] {
			firstSum += a.Score
		}
		for _, a := range sorted[half:] {
			secondSum += a.Score
		}
		first := float64(firstSum) / float64(half)
		second := float64(secondSum) / float64(len(sorted)-half)
		stats.ImprovementTrend = second - first
	}

	return stats
}
