package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// Store manages environmental and telemetry data in memory
type Store struct {
	mu               sync.RWMutex
	energyReadings   []models.EnergyReading
	latestReading    *models.EnergyReading            // Latest reading overall
	latestByBuilding map[string]*models.EnergyReading // Latest reading per building
	energyHistory    []float64                        // Aggregate usage per tick, oldest first
	weather          *models.WeatherSnapshot
	airQuality       *models.AirQualitySnapshot
	zones            map[string]models.Zone
	maxReadings      int
	maxHistory       int
	analytics        *analyticsStore // Derived analytics storage
}

// NewStore creates a new in-memory store
func NewStore(maxReadings int) *Store {
	if maxReadings <= 0 {
		maxReadings = 1000 // Default to store last 1000 readings
	}

	return &Store{
		energyReadings:   make([]models.EnergyReading, 0, maxReadings),
		latestByBuilding: make(map[string]*models.EnergyReading),
		energyHistory:    make([]float64, 0, 256),
		zones:            make(map[string]models.Zone),
		maxReadings:      maxReadings,
		maxHistory:       256,
		analytics:        newAnalyticsStore(),
	}
}

// Ping always succeeds for the in-memory store
func (s *Store) Ping() error {
	return nil
}

// AddEnergyReading stores a new meter reading
func (s *Store) AddEnergyReading(reading models.EnergyReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.energyReadings = append(s.energyReadings, reading)

	// Maintain maximum size by removing oldest entries
	if len(s.energyReadings) > s.maxReadings {
		s.energyReadings = s.energyReadings[1:]
	}

	// Update latest reading overall
	readingCopy := reading
	s.latestReading = &readingCopy

	// Update latest reading for this building
	if reading.BuildingID != "" {
		buildingCopy := reading
		s.latestByBuilding[reading.BuildingID] = &buildingCopy
	}
}

// GetLatestReading returns the most recent reading
func (s *Store) GetLatestReading() (*models.EnergyReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latestReading == nil {
		return nil, false
	}

	// Return a copy to avoid race conditions
	reading := *s.latestReading
	return &reading, true
}

// GetLatestReadingByBuilding returns the most recent reading for a building
func (s *Store) GetLatestReadingByBuilding(buildingID string) (*models.EnergyReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reading, exists := s.latestByBuilding[buildingID]
	if !exists || reading == nil {
		return nil, false
	}

	readingCopy := *reading
	return &readingCopy, true
}

// GetAllLatestReadingsByBuilding returns the latest reading for each building
func (s *Store) GetAllLatestReadingsByBuilding() map[string]models.EnergyReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]models.EnergyReading)
	for buildingID, reading := range s.latestByBuilding {
		if reading != nil {
			result[buildingID] = *reading
		}
	}
	return result
}

// GetRecentReadings returns the most recent N readings
func (s *Store) GetRecentReadings(limit int) []models.EnergyReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	readings := make([]models.EnergyReading, len(s.energyReadings))
	copy(readings, s.energyReadings)

	// Sort by timestamp descending (most recent first)
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})

	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}

	return readings
}

// GetRecentReadingsByBuilding returns the most recent N readings for a building
func (s *Store) GetRecentReadingsByBuilding(buildingID string, limit int) []models.EnergyReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var readings []models.EnergyReading
	for _, reading := range s.energyReadings {
		if reading.BuildingID == buildingID {
			readings = append(readings, reading)
		}
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})

	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}

	return readings
}

// GetReadingsInRange returns readings within a time range, oldest first
func (s *Store) GetReadingsInRange(start, end time.Time) []models.EnergyReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.EnergyReading
	for _, reading := range s.energyReadings {
		if reading.Timestamp.After(start) && reading.Timestamp.Before(end) {
			result = append(result, reading)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result
}

// GetReadingCount returns the total number of stored readings
func (s *Store) GetReadingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.energyReadings)
}

// GetActiveBuildings returns the IDs of buildings that have reported data
func (s *Store) GetActiveBuildings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buildings := make([]string, 0, len(s.latestByBuilding))
	for buildingID := range s.latestByBuilding {
		buildings = append(buildings, buildingID)
	}
	sort.Strings(buildings)
	return buildings
}

// AddEnergyHistoryPoint appends one aggregate usage sample to the series
func (s *Store) AddEnergyHistoryPoint(totalUsage float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.energyHistory = append(s.energyHistory, totalUsage)
	if len(s.energyHistory) > s.maxHistory {
		s.energyHistory = s.energyHistory[1:]
	}
}

// GetEnergyHistory returns up to limit aggregate usage samples, oldest first
func (s *Store) GetEnergyHistory(limit int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.energyHistory
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	result := make([]float64, len(history))
	copy(result, history)
	return result
}

// GetRollingAverageUsage returns the mean of the last window samples
func (s *Store) GetRollingAverageUsage(window int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.energyHistory
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	if len(history) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range history {
		sum += v
	}
	return sum / float64(len(history))
}

// SetWeather stores the current weather snapshot
func (s *Store) SetWeather(weather models.WeatherSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	weatherCopy := weather
	s.weather = &weatherCopy
}

// GetWeather returns the current weather snapshot
func (s *Store) GetWeather() (models.WeatherSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.weather == nil {
		return models.WeatherSnapshot{}, false
	}
	return *s.weather, true
}

// SetAirQuality stores the current air quality snapshot
func (s *Store) SetAirQuality(airQuality models.AirQualitySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	aqCopy := airQuality
	s.airQuality = &aqCopy
}

// GetAirQuality returns the current air quality snapshot
func (s *Store) GetAirQuality() (models.AirQualitySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.airQuality == nil {
		return models.AirQualitySnapshot{}, false
	}
	return *s.airQuality, true
}

// UpsertZone inserts or replaces a zone record
func (s *Store) UpsertZone(zone models.Zone) error {
	if !zone.Validate() {
		return fmt.Errorf("invalid zone record: id=%q name=%q", zone.ID, zone.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.zones[zone.ID] = zone
	return nil
}

// GetZone returns a zone by id
func (s *Store) GetZone(id string) (*models.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	zone, exists := s.zones[id]
	if !exists {
		return nil, fmt.Errorf("zone %s not found", id)
	}

	zoneCopy := zone
	return &zoneCopy, nil
}

// GetAllZones returns all zone records sorted by id
func (s *Store) GetAllZones() ([]models.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	zones := make([]models.Zone, 0, len(s.zones))
	for _, zone := range s.zones {
		zones = append(zones, zone)
	}
	sort.Slice(zones, func(i, j int) bool {
		return zones[i].ID < zones[j].ID
	})
	return zones, nil
}

// DeleteZone removes a zone record
func (s *Store) DeleteZone(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.zones[id]; !exists {
		return fmt.Errorf("zone %s not found", id)
	}
	delete(s.zones, id)
	return nil
}

// ClearReadings removes all stored readings (useful for testing)
func (s *Store) ClearReadings() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.energyReadings = make([]models.EnergyReading, 0, s.maxReadings)
	s.latestReading = nil
	s.latestByBuilding = make(map[string]*models.EnergyReading)
	s.energyHistory = s.energyHistory[:0]
}

// === Analytics result methods (delegated to the analytics sub-store) ===

// SetCurrentScore stores the latest sustainability score; the previous
// value is retained for trend computation
func (s *Store) SetCurrentScore(score models.SustainabilityScore) {
	s.analytics.setCurrentScore(score)
}

// GetCurrentScore returns the latest sustainability score
func (s *Store) GetCurrentScore() (models.SustainabilityScore, bool) {
	return s.analytics.getCurrentScore()
}

// GetPreviousScoreValue returns the score value before the latest one,
// 0 when no prior score exists
func (s *Store) GetPreviousScoreValue() int {
	return s.analytics.getPreviousScoreValue()
}

// SaveAnomaly records a detected anomaly
func (s *Store) SaveAnomaly(anomaly *models.Anomaly) error {
	return s.analytics.saveAnomaly(anomaly)
}

// GetRecentAnomalies returns the most recent N anomalies, newest first
func (s *Store) GetRecentAnomalies(limit int) []models.Anomaly {
	return s.analytics.getRecentAnomalies(limit)
}

// SaveInsights replaces the latest insight set
func (s *Store) SaveInsights(insights []models.AIInsight) error {
	return s.analytics.saveInsights(insights)
}

// GetLatestInsights returns the latest generated insights
func (s *Store) GetLatestInsights() []models.AIInsight {
	return s.analytics.getLatestInsights()
}
