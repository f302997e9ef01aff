package quiz

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) StartAttempt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperID   string             `json:"paper_id"`
		Questions []models.Question  `json:"questions"`
		Filters   models.QuizFilters `json:"filters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.PaperID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "paper_id is required"})
		return
	}

	attempt := h.store.StartAttempt(req.PaperID, req.Questions, req.Filters)
	writeJSON(w, http.StatusCreated, attempt)
}

func (h *Handler) EndAttempt(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["id"]

	var req struct {
		Results []models.QuizQuestionResult `json:"results"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	attempt, err := h.store.EndAttempt(attemptID, req.Results)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attempt not found"})
		return
	}
	if attempt == nil {
		// Finalized to an all-zero attempt and purged.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (h *Handler) Hide(w http.ResponseWriter, r *http.Request) {
	h.toggleHidden(w, r, h.store.Hide)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	h.toggleHidden(w, r, h.store.Show)
}

func (h *Handler) toggleHidden(w http.ResponseWriter, r *http.Request, op func(string) error) {
	if err := op(mux.Vars(r)["id"]); err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attempt not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(mux.Vars(r)["id"]); err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attempt not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r.URL.Query(), "days", 0)
	writeJSON(w, http.StatusOK, h.store.ByTimeRange(days))
}

func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r.URL.Query(), "days", 30)
	writeJSON(w, http.StatusOK, h.store.PerformanceTrend(days))
}

func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.TopicPerformance())
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
