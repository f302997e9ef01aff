package models

import "fmt"

// ── Paper Types ──────────────────────────────────────────

// PaperMetadata describes one exam paper file.
type PaperMetadata struct {
	Examination string `json:"examination"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	TotalMarks  int    `json:"total_marks"`
}

// MemoryAids holds optional mnemonic material attached to a question.
type MemoryAids struct {
	Story  string `json:"story,omitempty"`
	Palace string `json:"palace,omitempty"`
}

type Question struct {
	QuestionNo    string      `json:"question_no"`
	SubQuestionNo string      `json:"sub_question_no"`
	Question      string      `json:"question"`
	Marks         int         `json:"marks"`
	Tags          []string    `json:"tags,omitempty"`
	Answer        string      `json:"answer"`
	Diagram       string      `json:"diagram,omitempty"`
	MemoryAids    *MemoryAids `json:"memory_aids,omitempty"`
	Rating        int         `json:"rating,omitempty"`
}

// ID returns the natural key every store uses for this question,
// unique within a paper.
func (q Question) ID() string {
	return fmt.Sprintf("%s_%s", q.QuestionNo, q.SubQuestionNo)
}

// QuestionPaper is one loaded exam paper. PaperID is the filename it was
// loaded from — the canonical paper identifier for all storage keys.
type QuestionPaper struct {
	PaperID   string        `json:"paper_id"`
	Metadata  PaperMetadata `json:"metadata"`
	Questions []Question    `json:"questions"`
}

// PaperSummary is what cross-paper discovery returns per reachable paper.
type PaperSummary struct {
	Filename string        `json:"filename"`
	Metadata PaperMetadata `json:"metadata"`
}
