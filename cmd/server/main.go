package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gtu-learn/backend/internal/auth"
	"github.com/gtu-learn/backend/internal/database"
	"github.com/gtu-learn/backend/internal/memoryaid"
	"github.com/gtu-learn/backend/internal/middleware"
	"github.com/gtu-learn/backend/internal/notes"
	"github.com/gtu-learn/backend/internal/papers"
	"github.com/gtu-learn/backend/internal/progress"
	"github.com/gtu-learn/backend/internal/quiz"
	"github.com/gtu-learn/backend/internal/rating"
	"github.com/gtu-learn/backend/internal/revision"
	"github.com/gtu-learn/backend/internal/settings"
	"github.com/gtu-learn/backend/internal/storage"
	"github.com/rs/cors"
)

func main() {
	// Storage backend: Postgres when DB_HOST is configured, otherwise a
	// file-backed store under DATA_DIR. Auth needs the users table, so it
	// is only wired in Postgres mode; file mode runs as an open personal
	// instance.
	var kv storage.KV
	var authHandler *auth.Handler

	if os.Getenv("DB_HOST") != "" {
		db, err := database.Connect()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		kv = storage.NewPostgresKV(db)
		authHandler = auth.NewHandler(db)
		log.Println("Using Postgres storage")
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "./data"
		}
		fileKV, err := storage.NewFileKV(dataDir)
		if err != nil {
			log.Fatalf("Failed to open data dir: %v", err)
		}
		kv = fileKV
		log.Printf("Using file storage in %s", dataDir)
	}

	papersBase := os.Getenv("PAPERS_BASE_URL")
	if papersBase == "" {
		papersBase = "http://localhost:8081/papers"
	}
	loader := papers.NewLoader(papersBase, nil)

	// Stores and services
	tracker := progress.NewTracker(kv)
	revisionStore := revision.NewStore(kv)
	revisionService := revision.NewService(revisionStore, loader)
	ratingStore := rating.NewStore(kv)
	notesStore := notes.NewStore(kv)
	quizStore := quiz.NewStore(kv, tracker)
	settingsStore := settings.NewStore(kv)
	aidService := memoryaid.NewService(memoryaid.NewClient())

	// Handlers
	papersHandler := papers.NewHandler(loader)
	progressHandler := progress.NewHandler(tracker, loader)
	revisionHandler := revision.NewHandler(revisionStore, revisionService)
	ratingHandler := rating.NewHandler(ratingStore)
	notesHandler := notes.NewHandler(notesStore)
	quizHandler := quiz.NewHandler(quizStore)
	settingsHandler := settings.NewHandler(settingsStore)
	aidHandler := memoryaid.NewHandler(aidService, loader)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	if authHandler != nil {
		api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
		api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
		protected.Use(middleware.AuthMiddleware)
		protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	}

	// Papers
	protected.HandleFunc("/papers", papersHandler.ListPapers).Methods("GET")
	protected.HandleFunc("/papers/{filename}", papersHandler.GetPaper).Methods("GET")

	// Revision
	protected.HandleFunc("/revision/subjects", revisionHandler.SubjectCounts).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/revision", revisionHandler.List).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/revision/{questionID}", revisionHandler.Get).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/revision/{questionID}/toggle", revisionHandler.Toggle).Methods("POST")

	// Ratings
	protected.HandleFunc("/papers/{paperID}/ratings", ratingHandler.All).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/ratings/{questionID}", ratingHandler.Get).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/ratings/{questionID}", ratingHandler.Set).Methods("PUT")

	// Notes
	protected.HandleFunc("/papers/{paperID}/notes/{questionID}", notesHandler.Get).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/notes/{questionID}", notesHandler.Set).Methods("PUT")
	protected.HandleFunc("/papers/{paperID}/notes/{questionID}", notesHandler.Clear).Methods("DELETE")

	// Progress
	protected.HandleFunc("/papers/{paperID}/progress/stats", progressHandler.Stats).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/progress/by-difficulty", progressHandler.ByDifficulty).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/progress/by-marks", progressHandler.ByMarks).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/progress/weak-areas", progressHandler.WeakAreas).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/progress/readiness", progressHandler.Readiness).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/progress/{questionID}", progressHandler.GetQuestion).Methods("GET")
	protected.HandleFunc("/papers/{paperID}/progress/{questionID}/session/start", progressHandler.StartSession).Methods("POST")
	protected.HandleFunc("/papers/{paperID}/progress/{questionID}/session/end", progressHandler.EndSession).Methods("POST")
	protected.HandleFunc("/papers/{paperID}/progress/{questionID}/complete", progressHandler.MarkCompleted).Methods("POST")
	protected.HandleFunc("/papers/{paperID}/progress/{questionID}/incomplete", progressHandler.MarkIncomplete).Methods("POST")
	protected.HandleFunc("/papers/{paperID}/progress/{questionID}/confidence", progressHandler.UpdateConfidence).Methods("PUT")

	// Quiz history
	protected.HandleFunc("/quiz/attempts", quizHandler.StartAttempt).Methods("POST")
	protected.HandleFunc("/quiz/attempts", quizHandler.List).Methods("GET")
	protected.HandleFunc("/quiz/attempts/{id}/end", quizHandler.EndAttempt).Methods("POST")
	protected.HandleFunc("/quiz/attempts/{id}/hide", quizHandler.Hide).Methods("POST")
	protected.HandleFunc("/quiz/attempts/{id}/show", quizHandler.Show).Methods("POST")
	protected.HandleFunc("/quiz/attempts/{id}", quizHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/quiz/stats", quizHandler.Stats).Methods("GET")
	protected.HandleFunc("/quiz/trend", quizHandler.Trend).Methods("GET")
	protected.HandleFunc("/quiz/topics", quizHandler.Topics).Methods("GET")

	// Settings
	protected.HandleFunc("/settings/theme", settingsHandler.GetTheme).Methods("GET")
	protected.HandleFunc("/settings/theme", settingsHandler.SetTheme).Methods("PUT")

	// Memory aids
	protected.HandleFunc("/papers/{paperID}/questions/{questionID}/memory-aid", aidHandler.Generate).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
