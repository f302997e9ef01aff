package progress

import (
	"testing"
	"time"

	"github.com/gtu-learn/backend/internal/models"
)

var statsNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := statsNow.AddDate(0, 0, -n)
	return &t
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		last []*time.Time
		want int
	}{
		{"no activity", nil, 0},
		{"today only", []*time.Time{daysAgo(0)}, 1},
		{"three consecutive days", []*time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, 3},
		{"anchored on yesterday", []*time.Time{daysAgo(1), daysAgo(2)}, 2},
		{"gap breaks the chain", []*time.Time{daysAgo(0), daysAgo(2), daysAgo(3)}, 1},
		{"stale activity", []*time.Time{daysAgo(3), daysAgo(4)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := make(map[string]models.QuestionProgress)
			for i, ts := range tt.last {
				all[progressKey("p.json", string(rune('a'+i)))] = models.QuestionProgress{LastStudied: ts}
			}
			if got := Streak(all, statsNow); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatsForPaper(t *testing.T) {
	all := map[string]models.QuestionProgress{
		progressKey("p.json", "1_a"): {Completed: true, TimeSpentSeconds: 120, Confidence: 4, LastStudied: daysAgo(0)},
		progressKey("p.json", "1_b"): {Completed: true, TimeSpentSeconds: 60, Confidence: 2, LastStudied: daysAgo(10)},
		progressKey("p.json", "2_a"): {TimeSpentSeconds: 30},
		// Completion on another paper must not count toward p.json
		progressKey("q.json", "1_a"): {Completed: true, TimeSpentSeconds: 90, LastStudied: daysAgo(1)},
	}

	stats := StatsForPaper(all, "p.json", 4, statsNow)

	if stats.CompletedQuestions != 2 {
		t.Errorf("CompletedQuestions = %d, want 2", stats.CompletedQuestions)
	}
	if stats.CompletionPercent != 50 {
		t.Errorf("CompletionPercent = %v, want 50", stats.CompletionPercent)
	}
	// Time is global across papers
	if stats.TotalTimeSeconds != 300 {
		t.Errorf("TotalTimeSeconds = %d, want 300", stats.TotalTimeSeconds)
	}
	// Average over rated entries only: (4+2)/2
	if stats.AverageConfidence != 3 {
		t.Errorf("AverageConfidence = %v, want 3", stats.AverageConfidence)
	}
	// Studied within 7 days: today and yesterday
	if stats.WeeklyProgress != 2 {
		t.Errorf("WeeklyProgress = %d, want 2", stats.WeeklyProgress)
	}
	if stats.StreakDays != 2 {
		t.Errorf("StreakDays = %d, want 2", stats.StreakDays)
	}
}

func TestProgressBuckets(t *testing.T) {
	questions := []models.Question{
		{QuestionNo: "1", SubQuestionNo: "a", Marks: 3, Rating: 5},
		{QuestionNo: "1", SubQuestionNo: "b", Marks: 3, Rating: 5},
		{QuestionNo: "2", SubQuestionNo: "a", Marks: 7},
	}
	all := map[string]models.QuestionProgress{
		progressKey("p.json", "1_a"): {Completed: true},
	}

	byDiff := ProgressByDifficulty(all, "p.json", questions)
	if got := byDiff[5]; got.Total != 2 || got.Completed != 1 {
		t.Errorf("difficulty bucket 5 = %+v, want {Completed:1 Total:2}", got)
	}
	if got := byDiff[0]; got.Total != 1 || got.Completed != 0 {
		t.Errorf("unrated bucket = %+v, want {Completed:0 Total:1}", got)
	}

	byMarks := ProgressByMarks(all, "p.json", questions)
	if got := byMarks[3]; got.Total != 2 || got.Completed != 1 {
		t.Errorf("marks bucket 3 = %+v, want {Completed:1 Total:2}", got)
	}
	if got := byMarks[7]; got.Total != 1 {
		t.Errorf("marks bucket 7 = %+v, want Total 1", got)
	}
}

func TestWeakAreas(t *testing.T) {
	questions := []models.Question{
		{QuestionNo: "1", SubQuestionNo: "a", Tags: []string{"circuits"}},
		{QuestionNo: "1", SubQuestionNo: "b", Tags: []string{"circuits"}},
		{QuestionNo: "2", SubQuestionNo: "a", Tags: []string{"circuits", "theory"}},
		{QuestionNo: "3", SubQuestionNo: "a", Tags: []string{"theory"}},
		{QuestionNo: "4", SubQuestionNo: "a", Tags: []string{"unrated"}},
	}
	all := map[string]models.QuestionProgress{
		progressKey("p.json", "1_a"): {Confidence: 1},
		progressKey("p.json", "1_b"): {Confidence: 2},
		progressKey("p.json", "2_a"): {Confidence: 5},
		progressKey("p.json", "3_a"): {Confidence: 4},
	}

	weak := WeakAreas(all, "p.json", questions)
	if len(weak) != 1 {
		t.Fatalf("got %d weak areas, want 1: %+v", len(weak), weak)
	}
	// circuits: 2 of 3 at low confidence. theory has none low, unrated has
	// no rated questions at all.
	if weak[0].Tag != "circuits" || weak[0].LowConfidence != 2 || weak[0].Rated != 3 {
		t.Errorf("weak area = %+v, want circuits with 2 low of 3 rated", weak[0])
	}
}

func TestExamReadiness(t *testing.T) {
	questions := []models.Question{
		{QuestionNo: "1", SubQuestionNo: "a", Marks: 7},
		{QuestionNo: "1", SubQuestionNo: "b", Marks: 3},
	}

	if got := ExamReadiness(nil, "p.json", questions, statsNow); got != 0 {
		t.Errorf("readiness with no progress = %v, want 0", got)
	}
	if got := ExamReadiness(nil, "p.json", nil, statsNow); got != 0 {
		t.Errorf("readiness with no questions = %v, want 0", got)
	}

	all := map[string]models.QuestionProgress{
		progressKey("p.json", "1_a"): {Completed: true, Confidence: 5, LastStudied: daysAgo(1)},
		progressKey("p.json", "1_b"): {Completed: true, Confidence: 5, LastStudied: daysAgo(1)},
	}
	if got := ExamReadiness(all, "p.json", questions, statsNow); got != 100 {
		t.Errorf("readiness fully prepared = %v, want 100", got)
	}

	// Only the 7-mark question fully prepared: 21 of 30 points.
	delete(all, progressKey("p.json", "1_b"))
	if got := ExamReadiness(all, "p.json", questions, statsNow); got != 70 {
		t.Errorf("readiness = %v, want 70", got)
	}
}
