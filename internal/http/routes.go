package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/Capstone-E2/ecosphere_backend/internal/analytics"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/store"
	"github.com/Capstone-E2/ecosphere_backend/internal/ws"
)

// SetupRoutes configures all HTTP routes for the environmental analytics
// API. zonePublisher is invoked after successful zone upserts; nil
// disables downstream notification.
func SetupRoutes(dataStore store.DataStore, wsHub *ws.Hub, analyticsService *analytics.Service, zonePublisher func(*models.Zone) error) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, specify allowed origins
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handlers with analytics service support
	handlers := NewHandlers(dataStore, analyticsService, zonePublisher)
	analyticsHandlers := NewAnalyticsHandlers(dataStore, analyticsService)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check and system stats
		r.Get("/health", handlers.GetHealth)
		r.Get("/stats", handlers.GetSystemStats)

		// Full dashboard snapshot
		r.Get("/dashboard", handlers.GetDashboardState)

		// Energy telemetry routes
		r.Route("/energy", func(r chi.Router) {
			// Latest readings per building
			r.Get("/latest", handlers.GetLatestReadings)

			// Recent readings with optional building filter
			r.Get("/recent", handlers.GetRecentReadings)

			// Historical data in time range
			r.Get("/history", handlers.GetReadingsInRange)

			// Add energy data manually (for testing)
			r.Post("/data", handlers.AddEnergyData)
		})

		// Zone management routes
		r.Route("/zones", func(r chi.Router) {
			r.Get("/", handlers.GetAllZones)           // List all zones
			r.Post("/", handlers.UpsertZone)           // Create or update a zone
			r.Get("/{zoneID}", handlers.GetZone)       // Get specific zone
			r.Delete("/{zoneID}", handlers.DeleteZone) // Delete zone

			// Carbon offset recommendations and what-if simulation
			r.Get("/{zoneID}/recommendations", analyticsHandlers.GetZoneRecommendation)
			r.Post("/{zoneID}/simulate", analyticsHandlers.SimulateZone)
		})

		// Analytics - scoring, forecasting and insights
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/score", analyticsHandlers.GetScore)
			r.Get("/summary", analyticsHandlers.GetSummary)
			r.Post("/refresh", analyticsHandlers.RefreshNow)

			// Forecasts
			r.Get("/forecast/energy", analyticsHandlers.GetEnergyForecast)
			r.Get("/forecast/aqi", analyticsHandlers.GetAQIForecast)
			r.Get("/forecast/carbon", analyticsHandlers.GetCarbonForecast)

			// Detection and insight output
			r.Get("/insights", analyticsHandlers.GetInsights)
			r.Get("/anomalies", analyticsHandlers.GetAnomalies)
		})

		// Export routes for data history
		r.Route("/export", func(r chi.Router) {
			r.Get("/history.xlsx", handlers.ExportHistoryExcel)
			r.Get("/history.csv", handlers.ExportHistoryCSV)
		})
	})

	// WebSocket route for real-time updates
	r.HandleFunc("/ws", wsHub.HandleWebSocket)

	return r
}
