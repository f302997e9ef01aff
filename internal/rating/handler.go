package rating

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.store.Set(vars["paperID"], vars["questionID"], req.Rating); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rating": req.Rating})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, map[string]int{
		"rating": h.store.Get(vars["paperID"], vars["questionID"]),
	})
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.All(mux.Vars(r)["paperID"]))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
