package progress

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/models"
)

// PaperLoader supplies the paper's question list for the aggregates that
// bucket by question attributes.
type PaperLoader interface {
	Load(ctx context.Context, filename string) (*models.QuestionPaper, error)
}

type Handler struct {
	tracker *Tracker
	papers  PaperLoader
}

func NewHandler(tracker *Tracker, papers PaperLoader) *Handler {
	return &Handler{tracker: tracker, papers: papers}
}

// ── Session Lifecycle ───────────────────────────────────

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Type models.SessionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Type == "" {
		req.Type = models.SessionStudy
	}

	if err := h.tracker.StartSession(vars["paperID"], vars["questionID"], req.Type); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.tracker.Get(vars["paperID"], vars["questionID"]))
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.tracker.EndSession(vars["paperID"], vars["questionID"])
	writeJSON(w, http.StatusOK, h.tracker.Get(vars["paperID"], vars["questionID"]))
}

func (h *Handler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.tracker.MarkCompleted(vars["paperID"], vars["questionID"])
	writeJSON(w, http.StatusOK, h.tracker.Get(vars["paperID"], vars["questionID"]))
}

func (h *Handler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.tracker.MarkIncomplete(vars["paperID"], vars["questionID"])
	writeJSON(w, http.StatusOK, h.tracker.Get(vars["paperID"], vars["questionID"]))
}

func (h *Handler) UpdateConfidence(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.tracker.UpdateConfidence(vars["paperID"], vars["questionID"], req.Level); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.tracker.Get(vars["paperID"], vars["questionID"]))
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, h.tracker.Get(vars["paperID"], vars["questionID"]))
}

// ── Aggregates ──────────────────────────────────────────

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperID"]
	paper, err := h.papers.Load(r.Context(), paperID)
	if err != nil {
		h.paperError(w, paperID, err)
		return
	}
	stats := StatsForPaper(h.tracker.All(), paperID, len(paper.Questions), time.Now())
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ByDifficulty(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperID"]
	paper, err := h.papers.Load(r.Context(), paperID)
	if err != nil {
		h.paperError(w, paperID, err)
		return
	}
	writeJSON(w, http.StatusOK, ProgressByDifficulty(h.tracker.All(), paperID, paper.Questions))
}

func (h *Handler) ByMarks(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperID"]
	paper, err := h.papers.Load(r.Context(), paperID)
	if err != nil {
		h.paperError(w, paperID, err)
		return
	}
	writeJSON(w, http.StatusOK, ProgressByMarks(h.tracker.All(), paperID, paper.Questions))
}

func (h *Handler) WeakAreas(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperID"]
	paper, err := h.papers.Load(r.Context(), paperID)
	if err != nil {
		h.paperError(w, paperID, err)
		return
	}
	weak := WeakAreas(h.tracker.All(), paperID, paper.Questions)
	if weak == nil {
		weak = []models.WeakArea{}
	}
	writeJSON(w, http.StatusOK, weak)
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperID"]
	paper, err := h.papers.Load(r.Context(), paperID)
	if err != nil {
		h.paperError(w, paperID, err)
		return
	}
	score := ExamReadiness(h.tracker.All(), paperID, paper.Questions, time.Now())
	writeJSON(w, http.StatusOK, models.ReadinessResponse{Score: score})
}

func (h *Handler) paperError(w http.ResponseWriter, paperID string, err error) {
	log.Printf("[progress] load paper %s: %v", paperID, err)
	writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Paper not found"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
