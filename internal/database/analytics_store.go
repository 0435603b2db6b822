package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

const maxStoredAnomalies = 100

// UpsertZone inserts or updates a zone record
func (s *DatabaseStore) UpsertZone(zone models.Zone) error {
	query := `
		INSERT INTO zones (id, name, carbon_emission, energy_consumption, aqi, score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			carbon_emission = EXCLUDED.carbon_emission,
			energy_consumption = EXCLUDED.energy_consumption,
			aqi = EXCLUDED.aqi,
			score = EXCLUDED.score,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.Exec(query, zone.ID, zone.Name, zone.CarbonEmission,
		zone.EnergyConsumption, zone.AQI, zone.Score, zone.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert zone %s: %w", zone.ID, err)
	}
	return nil
}

// GetZone returns a zone by ID
func (s *DatabaseStore) GetZone(id string) (*models.Zone, error) {
	query := `
		SELECT id, name, carbon_emission, energy_consumption, aqi, score, updated_at
		FROM zones
		WHERE id = $1`

	var zone models.Zone
	err := s.db.QueryRow(query, id).Scan(
		&zone.ID, &zone.Name, &zone.CarbonEmission, &zone.EnergyConsumption,
		&zone.AQI, &zone.Score, &zone.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("zone %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone %s: %w", id, err)
	}

	return &zone, nil
}

// GetAllZones returns all zone records ordered by ID
func (s *DatabaseStore) GetAllZones() ([]models.Zone, error) {
	query := `
		SELECT id, name, carbon_emission, energy_consumption, aqi, score, updated_at
		FROM zones
		ORDER BY id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get zones: %w", err)
	}
	defer rows.Close()

	var zones []models.Zone
	for rows.Next() {
		var zone models.Zone
		err := rows.Scan(
			&zone.ID, &zone.Name, &zone.CarbonEmission, &zone.EnergyConsumption,
			&zone.AQI, &zone.Score, &zone.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, zone)
	}

	return zones, nil
}

// DeleteZone removes a zone record
func (s *DatabaseStore) DeleteZone(id string) error {
	result, err := s.db.Exec(`DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete zone %s: %w", id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("zone %s not found", id)
	}
	return nil
}

// SetCurrentScore appends a score to the scoring history
func (s *DatabaseStore) SetCurrentScore(score models.SustainabilityScore) {
	query := `
		INSERT INTO sustainability_scores (value, status, color, description, timestamp)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.Exec(query, score.Value, string(score.Status), score.Color,
		score.Description, score.Timestamp)
	if err != nil {
		log.Printf("❌ Error storing sustainability score: %v", err)
	}
}

// GetCurrentScore returns the most recent sustainability score
func (s *DatabaseStore) GetCurrentScore() (models.SustainabilityScore, bool) {
	query := `
		SELECT value, status, color, description, timestamp
		FROM sustainability_scores
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	var score models.SustainabilityScore
	err := s.db.QueryRow(query).Scan(
		&score.Value, &score.Status, &score.Color, &score.Description, &score.Timestamp)

	if err == sql.ErrNoRows {
		return models.SustainabilityScore{}, false
	}
	if err != nil {
		log.Printf("❌ Error getting current score: %v", err)
		return models.SustainabilityScore{}, false
	}

	return score, true
}

// GetPreviousScoreValue returns the score recorded before the current one,
// or 0 when fewer than two scores exist
func (s *DatabaseStore) GetPreviousScoreValue() int {
	query := `
		SELECT value
		FROM sustainability_scores
		ORDER BY timestamp DESC, id DESC
		LIMIT 1 OFFSET 1`

	var value int
	err := s.db.QueryRow(query).Scan(&value)
	if err == sql.ErrNoRows {
		return 0
	}
	if err != nil {
		log.Printf("❌ Error getting previous score: %v", err)
		return 0
	}

	return value
}

// SaveAnomaly stores a detected anomaly and trims old entries
func (s *DatabaseStore) SaveAnomaly(anomaly *models.Anomaly) error {
	query := `
		INSERT INTO anomalies (id, metric, current_value, expected_value, deviation, severity, timestamp, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	_, err := s.db.Exec(query, anomaly.ID, anomaly.Metric, anomaly.CurrentValue,
		anomaly.ExpectedValue, anomaly.Deviation, anomaly.Severity,
		anomaly.Timestamp, anomaly.Description)
	if err != nil {
		return fmt.Errorf("failed to save anomaly: %w", err)
	}

	// Keep only the most recent entries
	trim := `
		DELETE FROM anomalies
		WHERE id NOT IN (
			SELECT id FROM anomalies ORDER BY timestamp DESC LIMIT $1
		)`
	if _, err := s.db.Exec(trim, maxStoredAnomalies); err != nil {
		log.Printf("⚠️  Warning: Failed to trim anomalies: %v", err)
	}

	return nil
}

// GetRecentAnomalies returns the N most recent anomalies, newest first
func (s *DatabaseStore) GetRecentAnomalies(limit int) []models.Anomaly {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, metric, current_value, expected_value, deviation, severity, timestamp, description
		FROM anomalies
		ORDER BY timestamp DESC
		LIMIT $1`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		log.Printf("❌ Error getting recent anomalies: %v", err)
		return []models.Anomaly{}
	}
	defer rows.Close()

	var anomalies []models.Anomaly
	for rows.Next() {
		var anomaly models.Anomaly
		err := rows.Scan(
			&anomaly.ID, &anomaly.Metric, &anomaly.CurrentValue, &anomaly.ExpectedValue,
			&anomaly.Deviation, &anomaly.Severity, &anomaly.Timestamp, &anomaly.Description)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning anomaly: %v", err)
			continue
		}
		anomalies = append(anomalies, anomaly)
	}

	return anomalies
}

// SaveInsights replaces the stored insight batch with the latest generation
func (s *DatabaseStore) SaveInsights(insights []models.AIInsight) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin insights transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM insights`); err != nil {
		return fmt.Errorf("failed to clear insights: %w", err)
	}

	insert := `
		INSERT INTO insights (id, title, message, category, severity, priority, actionable, suggestion, timestamp, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for i, insight := range insights {
		_, err := tx.Exec(insert, insight.ID, insight.Title, insight.Message,
			string(insight.Category), string(insight.Severity), insight.Priority,
			insight.Actionable, insight.Suggestion, insight.Timestamp, i)
		if err != nil {
			return fmt.Errorf("failed to save insight %s: %w", insight.ID, err)
		}
	}

	return tx.Commit()
}

// GetLatestInsights returns the stored insight batch in generation order
func (s *DatabaseStore) GetLatestInsights() []models.AIInsight {
	query := `
		SELECT id, title, message, category, severity, priority, actionable, suggestion, timestamp
		FROM insights
		ORDER BY position`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("❌ Error getting latest insights: %v", err)
		return []models.AIInsight{}
	}
	defer rows.Close()

	var insights []models.AIInsight
	for rows.Next() {
		var insight models.AIInsight
		err := rows.Scan(
			&insight.ID, &insight.Title, &insight.Message, &insight.Category,
			&insight.Severity, &insight.Priority, &insight.Actionable,
			&insight.Suggestion, &insight.Timestamp)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning insight: %v", err)
			continue
		}
		insights = append(insights, insight)
	}

	return insights
}
