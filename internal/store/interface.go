package store

import (
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// DataStore defines the interface for data storage operations
type DataStore interface {
	// Health check
	Ping() error

	// Energy telemetry
	AddEnergyReading(models.EnergyReading)
	GetLatestReading() (*models.EnergyReading, bool)
	GetLatestReadingByBuilding(string) (*models.EnergyReading, bool)
	GetAllLatestReadingsByBuilding() map[string]models.EnergyReading
	GetRecentReadings(int) []models.EnergyReading
	GetRecentReadingsByBuilding(string, int) []models.EnergyReading
	GetReadingsInRange(time.Time, time.Time) []models.EnergyReading
	GetReadingCount() int
	GetActiveBuildings() []string

	// Aggregate usage series consumed by the forecast engine
	AddEnergyHistoryPoint(float64)
	GetEnergyHistory(int) []float64
	GetRollingAverageUsage(int) float64

	// Environment snapshots
	SetWeather(models.WeatherSnapshot)
	GetWeather() (models.WeatherSnapshot, bool)
	SetAirQuality(models.AirQualitySnapshot)
	GetAirQuality() (models.AirQualitySnapshot, bool)

	// Zone records
	UpsertZone(models.Zone) error
	GetZone(string) (*models.Zone, error)
	GetAllZones() ([]models.Zone, error)
	DeleteZone(string) error

	// Analytics results
	SetCurrentScore(models.SustainabilityScore)
	GetCurrentScore() (models.SustainabilityScore, bool)
	GetPreviousScoreValue() int
	SaveAnomaly(*models.Anomaly) error
	GetRecentAnomalies(int) []models.Anomaly
	SaveInsights([]models.AIInsight) error
	GetLatestInsights() []models.AIInsight
}
