package models

import "time"

// ── Study Sessions ───────────────────────────────────────

type SessionType string

const (
	SessionStudy    SessionType = "study"
	SessionQuiz     SessionType = "quiz"
	SessionRevision SessionType = "revision"
)

var ValidSessionTypes = map[SessionType]bool{
	SessionStudy:    true,
	SessionQuiz:     true,
	SessionRevision: true,
}

// StudySession is one closed timed interval on a single question.
type StudySession struct {
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	DurationSeconds int         `json:"duration_seconds"`
	Type            SessionType `json:"type"`
}

// ActiveSession marks an open session. It is persisted separately so a
// session that never saw EndSession (process killed, page closed) can be
// folded back into the owning question's stats on the next load.
type ActiveSession struct {
	PaperID    string      `json:"paper_id"`
	QuestionID string      `json:"question_id"`
	StartTime  time.Time   `json:"start_time"`
	Type       SessionType `json:"type"`
}

// ── Per-Question Progress ────────────────────────────────

type QuestionProgress struct {
	Completed        bool           `json:"completed"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	TimeSpentSeconds int            `json:"time_spent_seconds"`
	ReviewCount      int            `json:"review_count"`
	LastStudied      *time.Time     `json:"last_studied,omitempty"`
	Confidence       int            `json:"confidence"`
	Sessions         []StudySession `json:"sessions,omitempty"`
}

// ── Derived Aggregates ───────────────────────────────────

type PaperStats struct {
	TotalQuestions     int     `json:"total_questions"`
	CompletedQuestions int     `json:"completed_questions"`
	CompletionPercent  float64 `json:"completion_percent"`
	TotalTimeSeconds   int     `json:"total_time_seconds"`
	AverageConfidence  float64 `json:"average_confidence"`
	WeeklyProgress     int     `json:"weekly_progress"`
	StreakDays         int     `json:"streak_days"`
}

// BucketStat is completed/total for one difficulty-rating or marks bucket.
type BucketStat struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type WeakArea struct {
	Tag           string `json:"tag"`
	LowConfidence int    `json:"low_confidence"`
	Rated         int    `json:"rated"`
}

type ReadinessResponse struct {
	Score float64 `json:"score"`
}
