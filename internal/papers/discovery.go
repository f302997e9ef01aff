package papers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gtu-learn/backend/internal/models"
)

// CandidateFiles is the probe list used when the host carries no manifest.
// Static hosting offers no directory listing, so discovery is best-effort:
// any file not on this list is invisible until the manifest is published.
var CandidateFiles = []string{
	"3110005_winter_2023.json",
	"3110005_summer_2023.json",
	"3110003_winter_2023.json",
	"3110003_summer_2023.json",
	"3130006_winter_2023.json",
	"3130006_summer_2023.json",
	"3140705_winter_2023.json",
	"3140705_summer_2023.json",
	"3150710_winter_2023.json",
	"3160707_summer_2023.json",
}

const manifestFile = "index.json"

// Discover returns summaries for every paper reachable on the host. It
// prefers an index.json manifest (array of filenames) and falls back to
// probing CandidateFiles. Individual fetch failures are skipped; discovery
// itself only fails if nothing at all is reachable and no manifest exists.
func (l *Loader) Discover(ctx context.Context) ([]models.PaperSummary, error) {
	filenames := l.manifest(ctx)
	if filenames == nil {
		filenames = CandidateFiles
	}

	var summaries []models.PaperSummary
	for _, name := range filenames {
		paper, err := l.Load(ctx, name)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Printf("[papers] discovery skipping %s: %v", name, err)
			}
			continue
		}
		summaries = append(summaries, models.PaperSummary{
			Filename: name,
			Metadata: paper.Metadata,
		})
	}
	if summaries == nil {
		summaries = []models.PaperSummary{}
	}
	return summaries, nil
}

// manifest fetches index.json if the host publishes one. Returns nil when
// there is no usable manifest.
func (l *Loader) manifest(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+manifestFile, nil)
	if err != nil {
		return nil
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		return nil
	}

	var filenames []string
	if err := json.Unmarshal(body, &filenames); err != nil || len(filenames) == 0 {
		return nil
	}
	return filenames
}
