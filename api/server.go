// Package api exposes the casino service layer over HTTP. Routes live under
// /api, bodies are JSON, and errors use a flat {"message": "..."} shape.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	"pokecasino/service"
)

const requestRateLimit = 100

// Server bundles the HTTP handlers over the service layer
type Server struct {
	users       service.UserService
	gambling    service.GamblingService
	pokemon     service.PokemonService
	tournaments service.TournamentService
	stats       service.StatsService
	gamblingLog service.GamblingLogService
}

// NewServer creates the API server over the given services
func NewServer(
	users service.UserService,
	gambling service.GamblingService,
	pokemon service.PokemonService,
	tournaments service.TournamentService,
	stats service.StatsService,
	gamblingLog service.GamblingLogService,
) *Server {
	return &Server{
		users:       users,
		gambling:    gambling,
		pokemon:     pokemon,
		tournaments: tournaments,
		stats:       stats,
		gamblingLog: gamblingLog,
	}
}

// Router builds the chi router with middleware and all routes mounted
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(requestRateLimit, 1*time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{id}", s.handleGetUser)
		r.Post("/users/{id}/daily-bonus", s.handleDailyBonus)

		r.Post("/pokemon/roll", s.handlePokemonRoll)
		r.Get("/pokemon/rolls/{userId}", s.handlePokemonRollHistory)

		r.Post("/gambling/play", s.handlePlay)
		r.Get("/gambling/history/{userId}", s.handleGamblingHistory)
		r.Post("/gambling/logs", s.handleCreateGamblingLog)
		r.Get("/gambling/logs", s.handleRecentGamblingLogs)

		r.Post("/tournaments", s.handleCreateTournament)
		r.Get("/tournaments", s.handleListTournaments)
		r.Post("/tournaments/{id}/join", s.handleJoinTournament)
		r.Post("/tournaments/{id}/start", s.handleStartTournament)

		r.Get("/leaderboard/wealth", s.handleWealthLeaderboard)
		r.Get("/leaderboard/gambling", s.handleGamblingLeaderboard)

		r.Post("/admin/users/{id}/balance", s.handleAdminAdjustBalance)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs each request with method, path, status and duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Info("Request handled")
	})
}
