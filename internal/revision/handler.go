package revision

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/models"
)

type Handler struct {
	store   *Store
	service *Service
}

func NewHandler(store *Store, service *Service) *Handler {
	return &Handler{store: store, service: service}
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	marked := h.store.Toggle(vars["paperID"], vars["questionID"])
	writeJSON(w, http.StatusOK, map[string]bool{"marked": marked})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, map[string]bool{
		"marked": h.store.IsMarked(vars["paperID"], vars["questionID"]),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperID"]
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question_ids": h.store.List(paperID),
		"count":        h.store.Count(paperID),
	})
}

func (h *Handler) SubjectCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.SubjectCounts(r.Context())
	if err != nil {
		log.Printf("[revision] subject counts: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to aggregate revision counts"})
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
