// Package papers loads exam paper JSON files from a static file host and
// discovers which papers that host actually has.
package papers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gtu-learn/backend/internal/models"
)

// Load failure taxonomy. Callers branch with errors.Is.
var (
	ErrNotFound      = errors.New("paper not found")
	ErrInvalidFormat = errors.New("invalid paper format")
	ErrServer        = errors.New("paper server error")
)

type Loader struct {
	baseURL string
	client  *http.Client
}

func NewLoader(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Load fetches and parses one paper file. The returned paper's PaperID is
// the filename — the canonical identifier every store keys on.
func (l *Loader) Load(ctx context.Context, filename string) (*models.QuestionPaper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+filename, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServer, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d for %s", ErrServer, resp.StatusCode, filename)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServer, err)
	}

	return parsePaper(filename, body)
}

func parsePaper(filename string, body []byte) (*models.QuestionPaper, error) {
	// A static host that has lost the file often answers 200 with an HTML
	// error page. Catch that before handing it to the JSON decoder.
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<") {
		return nil, fmt.Errorf("%w: got HTML instead of JSON for %s", ErrInvalidFormat, filename)
	}

	var doc struct {
		Metadata  *models.PaperMetadata `json:"metadata"`
		Questions []models.Question     `json:"questions"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if doc.Metadata == nil || doc.Questions == nil {
		return nil, fmt.Errorf("%w: missing metadata or questions in %s", ErrInvalidFormat, filename)
	}

	paper := &models.QuestionPaper{
		PaperID:   filename,
		Metadata:  *doc.Metadata,
		Questions: doc.Questions,
	}
	cleanQuestions(paper)
	return paper, nil
}

// cleanQuestions runs the text cleanup over every question. A cleanup
// failure keeps the raw value for that question only.
func cleanQuestions(paper *models.QuestionPaper) {
	for i := range paper.Questions {
		q := &paper.Questions[i]
		if cleaned, err := CleanText(q.Question); err == nil {
			q.Question = cleaned
		} else {
			log.Printf("[papers] cleanup failed for %s question %s: %v", paper.PaperID, q.ID(), err)
		}
		if cleaned, err := CleanText(q.Answer); err == nil {
			q.Answer = cleaned
		} else {
			log.Printf("[papers] cleanup failed for %s answer %s: %v", paper.PaperID, q.ID(), err)
		}
	}
}
