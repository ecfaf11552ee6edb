package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fortunesim/fortune-simulator-backend/internal/api/handlers"
	custommiddleware "github.com/fortunesim/fortune-simulator-backend/internal/api/middleware"
	"github.com/fortunesim/fortune-simulator-backend/internal/config"
	"github.com/fortunesim/fortune-simulator-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, gameService *service.GameService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/game", func(r chi.Router) {
			gameHandler := handlers.NewGameHandler(gameService)
			r.Post("/", gameHandler.NewGame)
			r.Get("/presets", gameHandler.Presets)
			r.Post("/import", gameHandler.Import)

			r.Route("/load/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/", gameHandler.Load)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", gameHandler.GetGame)
				r.Get("/actions", gameHandler.Actions)
				r.Post("/action", gameHandler.PerformAction)
				r.Post("/event", gameHandler.TriggerEvent)
				r.Post("/choice", gameHandler.ResolveChoice)
				r.Post("/year", gameHandler.NextYear)
				r.Get("/evaluation", gameHandler.Evaluation)
				r.Post("/holdings", gameHandler.BuyHolding)
				r.Post("/holdings/{holdingId}/sell", gameHandler.SellHolding)
				r.Post("/holdings/{holdingId}/add", gameHandler.AddToHolding)
				r.Post("/loan", gameHandler.TakeLoan)
				r.Post("/study", gameHandler.Study)
				r.Post("/save", gameHandler.Save)
				r.Get("/saves", gameHandler.Saves)
				r.Get("/export", gameHandler.Export)
			})
		})
	})

	return r
}
