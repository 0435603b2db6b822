package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/Capstone-E2/ecosphere_backend/config"
	"github.com/Capstone-E2/ecosphere_backend/internal/analytics"
	"github.com/Capstone-E2/ecosphere_backend/internal/database"
	httphandlers "github.com/Capstone-E2/ecosphere_backend/internal/http"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/mqtt"
	"github.com/Capstone-E2/ecosphere_backend/internal/services"
	"github.com/Capstone-E2/ecosphere_backend/internal/store"
	"github.com/Capstone-E2/ecosphere_backend/internal/ws"
)

func main() {
	log.Println("🌍 Starting EcoSphere Environmental Analytics Backend...")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found: %v", err)
	} else {
		log.Println("✅ Loaded .env file")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Loaded configuration: Server port=%s, DB host=%s",
		cfg.Server.Port, cfg.Database.Host)

	// Initialize data store with PostgreSQL or fallback to in-memory
	var dataStore store.DataStore

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to connect to database: %v", err)
		log.Println("📱 Falling back to in-memory storage")
		dataStore = store.NewStore(1000)
		log.Println("💾 Initialized in-memory data store")
	} else {
		log.Println("✅ Connected to PostgreSQL database")

		if err := database.CreateTables(db.DB); err != nil {
			log.Fatalf("❌ Failed to run migrations: %v", err)
		}

		dataStore = database.NewDatabaseStore(db.DB)
		log.Println("💾 Initialized database data store")
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()
	log.Println("🔌 Started WebSocket hub")

	// Initialize analytics service (scoring, detection, forecasting, insights)
	analyticsService := analytics.NewService(dataStore, wsHub, cfg.Analytics.RefreshInterval)
	analyticsService.SetCarbonIntensity(cfg.Analytics.CarbonIntensity)
	analyticsService.SetForecastHorizon(cfg.Analytics.ForecastHorizon)
	analyticsService.Start()
	defer analyticsService.Stop()

	// Initialize MQTT client for live telemetry (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		log.Println("📡 Attempting to connect to MQTT broker...")
		client := mqtt.NewClient(&mqtt.Config{
			BrokerURL:        cfg.MQTT.BrokerURL,
			ClientID:         cfg.MQTT.ClientID,
			Username:         cfg.MQTT.Username,
			Password:         cfg.MQTT.Password,
			KeepAlive:        cfg.MQTT.KeepAlive,
			PingTimeout:      cfg.MQTT.PingTimeout,
			ConnectRetry:     cfg.MQTT.ConnectRetry,
			TopicEnergyData:  cfg.MQTT.TopicEnergyData,
			TopicZoneUpdates: cfg.MQTT.TopicZoneUpdates,
		})

		client.SetReadingHandler(func(reading *models.EnergyReading) {
			analyticsService.ProcessNewReading(reading)
			wsHub.BroadcastEnergyReading(reading)
		})
		client.SetWeatherHandler(func(weather models.WeatherSnapshot) {
			dataStore.SetWeather(weather)
		})
		client.SetAirQualityHandler(func(air models.AirQualitySnapshot) {
			dataStore.SetAirQuality(air)
		})

		if err := client.Connect(); err != nil {
			log.Printf("⚠️  Warning: Failed to connect to MQTT broker: %v", err)
			log.Println("📡 Continuing without MQTT support")
		} else {
			if err := client.SubscribeToEnergyData(); err != nil {
				log.Printf("⚠️  Warning: Energy topic subscription failed: %v", err)
			}
			if err := client.SubscribeToEnvironmentData(); err != nil {
				log.Printf("⚠️  Warning: Environment topic subscription failed: %v", err)
			}
			log.Printf("📡 MQTT client connected - Broker: %s", cfg.MQTT.BrokerURL)
			mqttClient = client
			defer mqttClient.Disconnect()
		}
	} else {
		log.Println("📡 MQTT disabled, skipping broker initialization")
	}

	// Initialize the built-in telemetry simulator
	var simulator *services.EnergySimulator
	if cfg.Simulator.Enabled {
		simulator = services.NewEnergySimulator(cfg.Simulator.Interval, func(reading *models.EnergyReading) {
			analyticsService.ProcessNewReading(reading)
			wsHub.BroadcastEnergyReading(reading)
		})
		simulator.SetEnvironmentHandlers(
			func(weather models.WeatherSnapshot) {
				dataStore.SetWeather(weather)
			},
			func(air models.AirQualitySnapshot) {
				dataStore.SetAirQuality(air)
			},
		)
		simulator.Start()
		defer simulator.Stop()
		log.Println("🏙️  Started city telemetry simulator")
	}

	// Republish stored zones over MQTT so downstream consumers stay in
	// sync; a no-op while the broker is unreachable
	zonePublisher := func(zone *models.Zone) error {
		if mqttClient == nil || !mqttClient.IsConnected() {
			return nil
		}
		return mqttClient.PublishZoneUpdate(zone)
	}

	// Setup HTTP routes
	router := httphandlers.SetupRoutes(dataStore, wsHub, analyticsService, zonePublisher)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("🚀 Starting HTTP server on port %s", cfg.Server.Port)
		log.Println("📡 API endpoints available:")
		log.Println("  GET /api/v1/stats - System statistics")
		log.Println("  GET /api/v1/dashboard - Full dashboard snapshot")
		log.Println("  GET /api/v1/energy/latest - Latest readings per building")
		log.Println("  GET /api/v1/energy/recent?limit=50 - Recent readings")
		log.Println("  GET /api/v1/energy/history - Historical data in time range")
		log.Println("  POST /api/v1/energy/data - Add energy data (testing)")
		log.Println("  GET /api/v1/zones - List all zones")
		log.Println("  POST /api/v1/zones - Create or update a zone")
		log.Println("  GET /api/v1/zones/{id} - Get zone details")
		log.Println("  DELETE /api/v1/zones/{id} - Delete zone")
		log.Println("  GET /api/v1/zones/{id}/recommendations - Carbon offset playbook")
		log.Println("  POST /api/v1/zones/{id}/simulate - What-if scenario simulation")
		log.Println("  GET /api/v1/analytics/score - Sustainability score and trend")
		log.Println("  GET /api/v1/analytics/summary - One-line status headline")
		log.Println("  GET /api/v1/analytics/forecast/energy - Hourly energy forecast")
		log.Println("  GET /api/v1/analytics/forecast/aqi - Weather-adjusted AQI forecast")
		log.Println("  GET /api/v1/analytics/forecast/carbon - Emission forecast")
		log.Println("  GET /api/v1/analytics/insights - Generated insights")
		log.Println("  GET /api/v1/analytics/anomalies - Detected anomalies")
		log.Println("  GET /api/v1/export/history.xlsx - Export report to Excel")
		log.Println("  GET /api/v1/export/history.csv - Export history to CSV")
		log.Println("  WS /ws - WebSocket for real-time updates")
		log.Printf("🌐 Server running at http://localhost:%s", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server shutdown complete")
}
