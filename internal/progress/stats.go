package progress

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gtu-learn/backend/internal/models"
)

// Derived aggregates. All of these are pure functions over the full progress
// map, recomputed on demand — nothing here is cached or persisted.

const recentWindow = 7 * 24 * time.Hour

// StatsForPaper computes the dashboard summary. Completion counts are scoped
// to the given paper; time spent, confidence, weekly progress and streak are
// global across papers, matching what the dashboard displays.
func StatsForPaper(all map[string]models.QuestionProgress, paperID string, totalQuestions int, now time.Time) models.PaperStats {
	stats := models.PaperStats{TotalQuestions: totalQuestions}

	prefix := paperID + separator
	confidenceSum, confidenceCount := 0, 0
	for key, qp := range all {
		if strings.HasPrefix(key, prefix) && qp.Completed {
			stats.CompletedQuestions++
		}
		stats.TotalTimeSeconds += qp.TimeSpentSeconds
		if qp.Confidence > 0 {
			confidenceSum += qp.Confidence
			confidenceCount++
		}
		if qp.LastStudied != nil && now.Sub(*qp.LastStudied) <= recentWindow {
			stats.WeeklyProgress++
		}
	}

	if totalQuestions > 0 {
		stats.CompletionPercent = math.Round(float64(stats.CompletedQuestions) / float64(totalQuestions) * 100)
	}
	if confidenceCount > 0 {
		stats.AverageConfidence = float64(confidenceSum) / float64(confidenceCount)
	}
	stats.StreakDays = Streak(all, now)
	return stats
}

// Streak counts consecutive calendar days with at least one study event,
// most recent first. The chain may anchor on today or yesterday; if the most
// recent study day is older than yesterday the streak is 0.
func Streak(all map[string]models.QuestionProgress, now time.Time) int {
	days := make(map[string]bool)
	for _, qp := range all {
		if qp.LastStudied != nil {
			days[qp.LastStudied.Format("2006-01-02")] = true
		}
	}
	if len(days) == 0 {
		return 0
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
		if !days[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// ProgressByDifficulty buckets completed/total counts by each question's own
// 1-5 rating (0 = unrated).
func ProgressByDifficulty(all map[string]models.QuestionProgress, paperID string, questions []models.Question) map[int]models.BucketStat {
	buckets := make(map[int]models.BucketStat)
	for _, q := range questions {
		b := buckets[q.Rating]
		b.Total++
		if all[progressKey(paperID, q.ID())].Completed {
			b.Completed++
		}
		buckets[q.Rating] = b
	}
	return buckets
}

// ProgressByMarks buckets completed/total counts by mark value.
func ProgressByMarks(all map[string]models.QuestionProgress, paperID string, questions []models.Question) map[int]models.BucketStat {
	buckets := make(map[int]models.BucketStat)
	for _, q := range questions {
		b := buckets[q.Marks]
		b.Total++
		if all[progressKey(paperID, q.ID())].Completed {
			b.Completed++
		}
		buckets[q.Marks] = b
	}
	return buckets
}

// WeakAreas returns the tags where more than half of the tagged questions
// sit at confidence 1 or 2. Tags with no rated question are skipped.
func WeakAreas(all map[string]models.QuestionProgress, paperID string, questions []models.Question) []models.WeakArea {
	type tagCount struct{ tagged, rated, low int }
	counts := make(map[string]*tagCount)
	var order []string

	for _, q := range questions {
		conf := all[progressKey(paperID, q.ID())].Confidence
		for _, tag := range q.Tags {
			tc, ok := counts[tag]
			if !ok {
				tc = &tagCount{}
				counts[tag] = tc
				order = append(order, tag)
			}
			tc.tagged++
			if conf > 0 {
				tc.rated++
			}
			if conf == 1 || conf == 2 {
				tc.low++
			}
		}
	}

	var weak []models.WeakArea
	for _, tag := range order {
		tc := counts[tag]
		if tc.rated >= 1 && tc.low*2 > tc.tagged {
			weak = append(weak, models.WeakArea{Tag: tag, LowConfidence: tc.low, Rated: tc.rated})
		}
	}
	sort.Slice(weak, func(i, j int) bool { return weak[i].LowConfidence > weak[j].LowConfidence })
	return weak
}

// ExamReadiness scores each question up to 3 points (completed, confidence
// >= 4, studied within 7 days), scales by its marks, and reports the total
// as a percentage of the maximum possible.
func ExamReadiness(all map[string]models.QuestionProgress, paperID string, questions []models.Question, now time.Time) float64 {
	earned, max := 0, 0
	for _, q := range questions {
		qp := all[progressKey(paperID, q.ID())]
		points := 0
		if qp.Completed {
			points++
		}
		if qp.Confidence >= 4 {
			points++
		}
		if qp.LastStudied != nil && now.Sub(*qp.LastStudied) <= recentWindow {
			points++
		}
		earned += points * q.Marks
		max += 3 * q.Marks
	}
	if max == 0 {
		return 0
	}
	return math.Round(float64(earned) / float64(max) * 100)
}
