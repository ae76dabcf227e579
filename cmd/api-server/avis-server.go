package main

import (
	"log"
	"net/http"

	"avisportal/db"
	"avisportal/db/migrations"
	"avisportal/internal/auth"
	"avisportal/internal/config"
	"avisportal/internal/handlers"
	"avisportal/internal/repo"
	"avisportal/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	cfg, configErrors := config.Load()
	for _, diag := range configErrors {
		log.Printf("config: %s", diag)
	}

	var h *handlers.Handler

	if len(configErrors) == 0 {
		dbConn, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Cannot connect to DB: %v", err)
		}
		defer dbConn.Close()

		migrations.Run(cfg.DatabaseURL)

		store := db.NewStorage(dbConn)
		repository := repo.New(store)
		sessions := auth.NewManager(store, []byte(cfg.JWTSecret))
		directorState := state.New()

		// no dangling director data after sign-out
		sessions.OnChange(func(s *auth.Session) {
			if s == nil {
				directorState.Clear()
			}
		})

		h = handlers.NewHandler(repository, sessions, directorState, nil)
	} else {
		// degraded mode: serve the diagnostics instead of crashing
		h = handlers.NewHandler(nil, nil, state.New(), configErrors)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireConfig)

			// employee submission, no authentication
			r.Post("/avis/new", h.SubmitAvisHandler)

			// director session
			r.Post("/login", h.LoginHandler)
			r.Post("/logout", h.LogoutHandler)

			// director review surface
			r.Group(func(r chi.Router) {
				r.Use(h.RequireDirector)
				r.Get("/avis", h.GetAvisHandler)
				r.Get("/avis/metrics", h.GetMetricsHandler)
				r.Put("/avis/{avisId}", h.SaveAvisHandler)
				r.Delete("/avis/{avisId}", h.DeleteAvisHandler)
				r.Get("/avis/{avisId}/commentaires", h.GetCommentairesHandler)
				r.Post("/avis/{avisId}/commentaires", h.CreateCommentaireHandler)
			})
		})
	})

	log.Printf("Starting server on %s", cfg.ServerAddr)
	log.Fatal(http.ListenAndServe(cfg.ServerAddr, r))
}
