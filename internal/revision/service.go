package revision

import (
	"context"
	"fmt"

	"github.com/gtu-learn/backend/internal/models"
)

// PaperDiscoverer is what the cross-paper aggregation needs from the paper
// loader.
type PaperDiscoverer interface {
	Discover(ctx context.Context) ([]models.PaperSummary, error)
}

type Service struct {
	store  *Store
	papers PaperDiscoverer
}

func NewService(store *Store, papers PaperDiscoverer) *Service {
	return &Service{store: store, papers: papers}
}

type SubjectCount struct {
	Subject string `json:"subject"`
	Flagged int    `json:"flagged"`
	Papers  int    `json:"papers"`
}

// SubjectCounts aggregates revision-set sizes by subject name across every
// discoverable paper. Papers the discovery step could not fetch are simply
// absent; a partial host never fails the whole computation.
func (s *Service) SubjectCounts(ctx context.Context) ([]SubjectCount, error) {
	summaries, err := s.papers.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover papers: %w", err)
	}

	byName := make(map[string]*SubjectCount)
	var order []string
	for _, sum := range summaries {
		legacyID := fmt.Sprintf("%s_%s", sum.Metadata.SubjectCode, sum.Metadata.Examination)
		s.store.AdoptLegacy(sum.Filename, legacyID)

		name := sum.Metadata.SubjectName
		sc, ok := byName[name]
		if !ok {
			sc = &SubjectCount{Subject: name}
			byName[name] = sc
			order = append(order, name)
		}
		sc.Flagged += s.store.Count(sum.Filename)
		sc.Papers++
	}

	counts := make([]SubjectCount, 0, len(order))
	for _, name := range order {
		counts = append(counts, *byName[name])
	}
	return counts, nil
}
