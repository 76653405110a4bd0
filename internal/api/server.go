package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/spacegom-engine/internal/catalog"
	"github.com/terra-clan/spacegom-engine/internal/config"
	"github.com/terra-clan/spacegom-engine/internal/services"
	"github.com/terra-clan/spacegom-engine/internal/session"
	"github.com/terra-clan/spacegom-engine/internal/stream"
)

// Server represents the HTTP API server
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	sessions *session.Manager
	catalog  *catalog.Loader
	registry *services.Registry
	hub      *stream.Hub
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	sessions *session.Manager,
	loader *catalog.Loader,
	registry *services.Registry,
	hub *stream.Hub,
) *Server {
	s := &Server{
		config:   cfg,
		sessions: sessions,
		catalog:  loader,
		registry: registry,
		hub:      hub,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	timeout := middleware.Timeout(60 * time.Second)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limitBody)

		r.Route("/catalog", func(r chi.Router) {
			r.Use(timeout)
			r.Get("/planets", s.handleListPlanets)
			r.Post("/planets", s.handleAddPlanet)
			r.Get("/planets/{code}", s.handleGetPlanet)
			r.Get("/planets/{code}/next", s.handleNextPlanet)
			r.Get("/positions", s.handleListPositions)
			r.Get("/ships", s.handleListShips)
			r.Get("/products", s.handleListProducts)
		})

		r.Route("/games", func(r chi.Router) {
			r.With(timeout).Get("/", s.handleListGames)
			r.With(timeout).Post("/", s.handleCreateGame)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(gameContext)

				// long-lived; must not sit behind the request timeout
				r.Get("/stream", s.handleStream)

				r.Group(func(r chi.Router) {
					r.Use(timeout)

					r.Get("/", s.handleGetGame)
					r.Delete("/", s.handleDeleteGame)
					r.Post("/advance", s.handleAdvance)
					r.Get("/logs", s.handleLogs)
					r.Post("/dice/roll", s.handleRollDice)
					r.Post("/reputation", s.handleAdjustReputation)
					r.Get("/events", s.handleListEvents)
					r.Post("/planet-code/roll", s.handleRollPlanetCode)
					r.Post("/explore", s.handleExploreArea)

					r.Get("/hire/positions", s.handleHirePositions)
					r.Post("/hire/search", s.handleStartHireSearch)
					r.Get("/employees/{eid}/tasks", s.handleEmployeeTasks)
					r.Post("/tasks/{tid}/reorder", s.handleReorderTask)
					r.Delete("/tasks/{tid}", s.handleDeleteTask)

					r.Get("/personnel", s.handleListPersonnel)
					r.Post("/personnel", s.handleHireDirect)
					r.Put("/personnel/{eid}", s.handleUpdateEmployee)
					r.Delete("/personnel/{eid}", s.handleFireEmployee)

					r.Get("/missions", s.handleListMissions)
					r.Post("/missions", s.handleCreateMission)
					r.Put("/missions/{mid}", s.handleUpdateMission)
					r.Delete("/missions/{mid}", s.handleDeleteMission)
					r.Post("/missions/{mid}/resolve", s.handleResolveMission)

					r.Post("/passengers/transport", s.handleTransportPassengers)
					r.Post("/ship/move", s.handleMoveShip)

					r.Get("/trade/market", s.handleMarket)
					r.Post("/trade/negotiate", s.handleNegotiate)
					r.Post("/trade/buy", s.handleBuy)
					r.Post("/trade/buy-batch", s.handleBuyBatch)
					r.Post("/trade/sell", s.handleSell)
				})
			})
		})
	})

	s.router = r
}
