package memoryaid

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/models"
)

type PaperLoader interface {
	Load(ctx context.Context, filename string) (*models.QuestionPaper, error)
}

type Handler struct {
	service *Service
	papers  PaperLoader
}

func NewHandler(service *Service, papers PaperLoader) *Handler {
	return &Handler{service: service, papers: papers}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paperID, questionID := vars["paperID"], vars["questionID"]

	paper, err := h.papers.Load(r.Context(), paperID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Paper not found"})
		return
	}

	for _, q := range paper.Questions {
		if q.ID() != questionID {
			continue
		}

		aids, err := h.service.Generate(r.Context(), q)
		if err != nil {
			log.Printf("[memoryaid] generate for %s/%s: %v", paperID, questionID, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Generation failed"})
			return
		}
		writeJSON(w, http.StatusOK, aids)
		return
	}

	writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
