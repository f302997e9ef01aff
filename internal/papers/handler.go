package papers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/models"
)

type Handler struct {
	loader *Loader
}

func NewHandler(loader *Loader) *Handler {
	return &Handler{loader: loader}
}

// ListPapers runs cross-paper discovery.
func (h *Handler) ListPapers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.loader.Discover(r.Context())
	if err != nil {
		log.Printf("[papers] discovery error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to discover papers"})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	paper, err := h.loader.Load(r.Context(), filename)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Paper not found"})
		case errors.Is(err, ErrInvalidFormat):
			writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Paper file is not valid JSON"})
		default:
			log.Printf("[papers] load %s: %v", filename, err)
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to fetch paper"})
		}
		return
	}

	writeJSON(w, http.StatusOK, paper)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
