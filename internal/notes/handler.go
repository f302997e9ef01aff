package notes

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

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"text": h.store.Get(vars["questionID"], vars["paperID"]),
	})
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.store.Set(vars["questionID"], req.Text, vars["paperID"]); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": req.Text})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.store.Clear(vars["questionID"], vars["paperID"])
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
