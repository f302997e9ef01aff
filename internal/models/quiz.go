package models

import "time"

// ── Quiz Attempts ────────────────────────────────────────

// QuizFilters is a snapshot of the filter settings an attempt was started
// with, kept for display alongside the attempt.
type QuizFilters struct {
	Tags       []string `json:"tags,omitempty"`
	Marks      []int    `json:"marks,omitempty"`
	MaxMinutes int      `json:"max_minutes,omitempty"`
	Count      int      `json:"count,omitempty"`
}

type QuizQuestionResult struct {
	QuestionID       string `json:"question_id"`
	QuestionNo       string `json:"question_no"`
	Answer           string `json:"answer"`
	Correct          bool   `json:"correct"`
	Marks            int    `json:"marks"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
	// DifficultyRating is the 1-10 self-rating collected in quiz mode.
	DifficultyRating int `json:"difficulty_rating"`
	// Confidence is the 1-5 value fed to the progress tracker.
	Confidence  int    `json:"confidence"`
	SourcePaper string `json:"source_paper,omitempty"`
}

type QuizAttempt struct {
	ID              string               `json:"id"`
	PaperID         string               `json:"paper_id"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         *time.Time           `json:"end_time,omitempty"`
	DurationSeconds int                  `json:"duration_seconds"`
	TotalQuestions  int                  `json:"total_questions"`
	CorrectAnswers  int                  `json:"correct_answers"`
	Score           int                  `json:"score"`
	Results         []QuizQuestionResult `json:"results"`
	Filters         QuizFilters          `json:"filters"`
	Hidden          bool                 `json:"hidden"`
}

// ── Derived Aggregates ───────────────────────────────────

type DailyScore struct {
	Date         string  `json:"date"`
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
}

type TopicStat struct {
	Topic        string  `json:"topic"`
	Attempted    int     `json:"attempted"`
	Correct      int     `json:"correct"`
	AverageScore float64 `json:"average_score"`
}

type QuizStats struct {
	TotalAttempts      int     `json:"total_attempts"`
	AverageScore       float64 `json:"average_score"`
	BestScore          int     `json:"best_score"`
	TotalTimeSeconds   int     `json:"total_time_seconds"`
	AvgTimePerQuestion float64 `json:"avg_time_per_question"`
	// ImprovementTrend is second-half average minus first-half average of
	// chronologically sorted attempts; 0 until at least 4 attempts exist.
	ImprovementTrend float64 `json:"improvement_trend"`
}
