package papers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const validPaper = `{
	"metadata": {"examination": "winter_2023", "subject_code": "3110005", "subject_name": "Basic Electrical Engineering", "total_marks": 70},
	"questions": [
		{"question_no": "1", "sub_question_no": "a", "question": "Define  resistance", "marks": 3, "answer": "Opposition to current flow"},
		{"question_no": "1", "sub_question_no": "b", "question": "State Ohm's law", "marks": 4, "answer": "V = IR"},
		{"question_no": "2", "sub_question_no": "a", "question": "Explain \\alpha decay", "marks": 7, "answer": "..."}
	]
}`

func paperServer(t *testing.T, handler http.HandlerFunc) *Loader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLoader(srv.URL, srv.Client())
}

func TestLoadValidPaper(t *testing.T) {
	loader := paperServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validPaper))
	})

	paper, err := loader.Load(context.Background(), "3110005_winter_2023.json")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if paper.PaperID != "3110005_winter_2023.json" {
		t.Errorf("PaperID = %q, want the filename", paper.PaperID)
	}
	if len(paper.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(paper.Questions))
	}

	// Question ids must be unique within the paper
	seen := make(map[string]bool)
	for _, q := range paper.Questions {
		id := q.ID()
		if seen[id] {
			t.Errorf("duplicate question id %q", id)
		}
		seen[id] = true
	}
	if !seen["1_a"] || !seen["1_b"] || !seen["2_a"] {
		t.Errorf("unexpected question ids: %v", seen)
	}

	// Cleanup ran: whitespace collapsed, LaTeX normalized
	if paper.Questions[0].Question != "Define resistance" {
		t.Errorf("question text = %q, want cleaned", paper.Questions[0].Question)
	}
	if paper.Questions[2].Question != "Explain α decay" {
		t.Errorf("question text = %q, want math normalized", paper.Questions[2].Question)
	}
}

func TestLoadErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"missing file", http.StatusNotFound, "not found", ErrNotFound},
		{"server error", http.StatusInternalServerError, "boom", ErrServer},
		{"html instead of json", http.StatusOK, "<html><body>error</body></html>", ErrInvalidFormat},
		{"malformed json", http.StatusOK, `{"metadata": `, ErrInvalidFormat},
		{"missing sections", http.StatusOK, `{"something": "else"}`, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := paperServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := loader.Load(context.Background(), "paper.json")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverSkipsFailures(t *testing.T) {
	// Host serves exactly one candidate and no manifest; everything else
	// 404s. Discovery must return that one paper and not fail.
	loader := paperServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+CandidateFiles[0] {
			w.Write([]byte(validPaper))
			return
		}
		http.NotFound(w, r)
	})

	summaries, err := loader.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].Filename != CandidateFiles[0] {
		t.Errorf("Filename = %q, want %q", summaries[0].Filename, CandidateFiles[0])
	}
	if summaries[0].Metadata.SubjectName != "Basic Electrical Engineering" {
		t.Errorf("SubjectName = %q", summaries[0].Metadata.SubjectName)
	}
}

func TestDiscoverPrefersManifest(t *testing.T) {
	loader := paperServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`["custom_paper.json"]`))
		case "/custom_paper.json":
			w.Write([]byte(validPaper))
		default:
			http.NotFound(w, r)
		}
	})

	summaries, err := loader.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Filename != "custom_paper.json" {
		t.Fatalf("summaries = %+v, want just custom_paper.json", summaries)
	}
}
