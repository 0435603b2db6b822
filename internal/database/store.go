package database

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

const maxHistoryPoints = 256

// DatabaseStore implements persistent storage using PostgreSQL.
// High-churn dashboard state (the aggregate usage series and the latest
// weather and air quality snapshots) stays in memory; it is rebuilt
// within one refresh cycle after a restart and is not worth a table.
type DatabaseStore struct {
	db *sql.DB

	mu            sync.RWMutex
	energyHistory []float64
	weather       models.WeatherSnapshot
	hasWeather    bool
	airQuality    models.AirQualitySnapshot
	hasAirQuality bool
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(db *sql.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Ping verifies the database connection is alive
func (s *DatabaseStore) Ping() error {
	return s.db.Ping()
}

// AddEnergyReading stores an energy reading in the database
func (s *DatabaseStore) AddEnergyReading(reading models.EnergyReading) {
	query := `
		INSERT INTO energy_readings (building_id, timestamp, energy_usage, solar_production, traffic_index)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (building_id, timestamp) DO UPDATE SET
			energy_usage = EXCLUDED.energy_usage,
			solar_production = EXCLUDED.solar_production,
			traffic_index = EXCLUDED.traffic_index`

	_, err := s.db.Exec(query, reading.BuildingID, reading.Timestamp,
		reading.EnergyUsage, reading.SolarProduction, reading.TrafficIndex)
	if err != nil {
		log.Printf("❌ Error storing energy reading: %v", err)
	}
}

// GetLatestReading returns the most recent energy reading
func (s *DatabaseStore) GetLatestReading() (*models.EnergyReading, bool) {
	query := `
		SELECT building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		ORDER BY timestamp DESC
		LIMIT 1`

	var reading models.EnergyReading
	err := s.db.QueryRow(query).Scan(
		&reading.BuildingID, &reading.Timestamp, &reading.EnergyUsage,
		&reading.SolarProduction, &reading.TrafficIndex)

	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Error getting latest reading: %v", err)
		return nil, false
	}

	return &reading, true
}

// GetLatestReadingByBuilding returns the most recent reading for a specific building
func (s *DatabaseStore) GetLatestReadingByBuilding(buildingID string) (*models.EnergyReading, bool) {
	query := `
		SELECT building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		WHERE building_id = $1
		ORDER BY timestamp DESC
		LIMIT 1`

	var reading models.EnergyReading
	err := s.db.QueryRow(query, buildingID).Scan(
		&reading.BuildingID, &reading.Timestamp, &reading.EnergyUsage,
		&reading.SolarProduction, &reading.TrafficIndex)

	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Error getting latest reading by building: %v", err)
		return nil, false
	}

	return &reading, true
}

// GetAllLatestReadingsByBuilding returns the latest reading for each building
func (s *DatabaseStore) GetAllLatestReadingsByBuilding() map[string]models.EnergyReading {
	query := `
		SELECT DISTINCT ON (building_id)
			building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		ORDER BY building_id, timestamp DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("❌ Error getting all latest readings by building: %v", err)
		return map[string]models.EnergyReading{}
	}
	defer rows.Close()

	result := make(map[string]models.EnergyReading)
	for rows.Next() {
		var reading models.EnergyReading
		err := rows.Scan(
			&reading.BuildingID, &reading.Timestamp, &reading.EnergyUsage,
			&reading.SolarProduction, &reading.TrafficIndex)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning reading: %v", err)
			continue
		}
		result[reading.BuildingID] = reading
	}

	return result
}

// GetRecentReadings returns the N most recent energy readings
func (s *DatabaseStore) GetRecentReadings(limit int) []models.EnergyReading {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		ORDER BY timestamp DESC
		LIMIT $1`

	return s.queryReadings(query, limit)
}

// GetRecentReadingsByBuilding returns recent readings for a specific building
func (s *DatabaseStore) GetRecentReadingsByBuilding(buildingID string, limit int) []models.EnergyReading {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		WHERE building_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	return s.queryReadings(query, buildingID, limit)
}

// GetReadingsInRange returns all readings within a time range
func (s *DatabaseStore) GetReadingsInRange(start, end time.Time) []models.EnergyReading {
	query := `
		SELECT building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp DESC`

	return s.queryReadings(query, start, end)
}

func (s *DatabaseStore) queryReadings(query string, args ...interface{}) []models.EnergyReading {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Printf("❌ Error querying energy readings: %v", err)
		return []models.EnergyReading{}
	}
	defer rows.Close()

	var readings []models.EnergyReading
	for rows.Next() {
		var reading models.EnergyReading
		err := rows.Scan(
			&reading.BuildingID, &reading.Timestamp, &reading.EnergyUsage,
			&reading.SolarProduction, &reading.TrafficIndex)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning reading: %v", err)
			continue
		}
		readings = append(readings, reading)
	}

	return readings
}

// GetReadingCount returns the total number of readings stored
func (s *DatabaseStore) GetReadingCount() int {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM energy_readings").Scan(&count)
	if err != nil {
		log.Printf("❌ Error getting reading count: %v", err)
		return 0
	}
	return count
}

// GetActiveBuildings returns the IDs of buildings that have reported readings
func (s *DatabaseStore) GetActiveBuildings() []string {
	query := `SELECT DISTINCT building_id FROM energy_readings ORDER BY building_id`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("❌ Error getting active buildings: %v", err)
		return []string{}
	}
	defer rows.Close()

	var buildings []string
	for rows.Next() {
		var buildingID string
		if err := rows.Scan(&buildingID); err != nil {
			continue
		}
		buildings = append(buildings, buildingID)
	}

	return buildings
}

// AddEnergyHistoryPoint appends one aggregate usage sample to the in-memory series
func (s *DatabaseStore) AddEnergyHistoryPoint(totalUsage float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.energyHistory = append(s.energyHistory, totalUsage)
	if len(s.energyHistory) > maxHistoryPoints {
		s.energyHistory = s.energyHistory[len(s.energyHistory)-maxHistoryPoints:]
	}
}

// GetEnergyHistory returns up to n most recent aggregate usage samples, oldest first
func (s *DatabaseStore) GetEnergyHistory(n int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.energyHistory) {
		n = len(s.energyHistory)
	}

	history := make([]float64, n)
	copy(history, s.energyHistory[len(s.energyHistory)-n:])
	return history
}

// GetRollingAverageUsage returns the mean of the last n usage samples
func (s *DatabaseStore) GetRollingAverageUsage(n int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.energyHistory) == 0 {
		return 0
	}
	if n <= 0 || n > len(s.energyHistory) {
		n = len(s.energyHistory)
	}

	sum := 0.0
	for _, v := range s.energyHistory[len(s.energyHistory)-n:] {
		sum += v
	}
	return sum / float64(n)
}

// SetWeather stores the current weather snapshot
func (s *DatabaseStore) SetWeather(weather models.WeatherSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather = weather
	s.hasWeather = true
}

// GetWeather returns the current weather snapshot
func (s *DatabaseStore) GetWeather() (models.WeatherSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather, s.hasWeather
}

// SetAirQuality stores the current air quality snapshot
func (s *DatabaseStore) SetAirQuality(air models.AirQualitySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.airQuality = air
	s.hasAirQuality = true
}

// GetAirQuality returns the current air quality snapshot
func (s *DatabaseStore) GetAirQuality() (models.AirQualitySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airQuality, s.hasAirQuality
}
