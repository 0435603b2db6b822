package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// TelemetryParser handles parsing of meter and zone data from various sources
type TelemetryParser struct{}

// NewTelemetryParser creates a new instance of TelemetryParser
func NewTelemetryParser() *TelemetryParser {
	return &TelemetryParser{}
}

// ParseEnergyJSON parses a JSON payload from a building smart meter
func (tp *TelemetryParser) ParseEnergyJSON(payload []byte, buildingID string) (*models.EnergyReading, error) {
	var energyData models.EnergyData

	if err := json.Unmarshal(payload, &energyData); err != nil {
		return nil, fmt.Errorf("failed to parse energy JSON: %w", err)
	}

	reading := &models.EnergyReading{
		BuildingID:      buildingID,
		Timestamp:       time.Now(),
		EnergyUsage:     energyData.EnergyUsage,
		SolarProduction: energyData.SolarProduction,
		TrafficIndex:    energyData.TrafficIndex,
	}

	if !reading.ValidateReading() {
		return nil, fmt.Errorf("invalid energy reading values: Usage=%.2f, Solar=%.2f, Traffic=%.2f",
			reading.EnergyUsage, reading.SolarProduction, reading.TrafficIndex)
	}

	return reading, nil
}

// ParseEnergyString parses comma-separated meter values (fallback format)
// Expected format: "usage,solar,traffic"
func (tp *TelemetryParser) ParseEnergyString(payload string, buildingID string) (*models.EnergyReading, error) {
	var usage, solar, traffic float64

	n, err := fmt.Sscanf(payload, "%f,%f,%f", &usage, &solar, &traffic)
	if err != nil || n != 3 {
		return nil, fmt.Errorf("failed to parse energy string: expected 3 values (usage,solar,traffic), got %d", n)
	}

	reading := &models.EnergyReading{
		BuildingID:      buildingID,
		Timestamp:       time.Now(),
		EnergyUsage:     usage,
		SolarProduction: solar,
		TrafficIndex:    traffic,
	}

	if !reading.ValidateReading() {
		return nil, fmt.Errorf("invalid energy reading values: Usage=%.2f, Solar=%.2f, Traffic=%.2f",
			reading.EnergyUsage, reading.SolarProduction, reading.TrafficIndex)
	}

	return reading, nil
}

// ParseZoneDocument decodes a raw zone record and normalizes it into the
// canonical form. Alternate field names are resolved here so nothing
// downstream deals with them.
func (tp *TelemetryParser) ParseZoneDocument(payload []byte) (*models.Zone, error) {
	var doc models.ZoneDocument

	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse zone document: %w", err)
	}

	zone := doc.Canonical()
	if !zone.Validate() {
		return nil, fmt.Errorf("invalid zone record: id=%q name=%q", zone.ID, zone.Name)
	}

	return &zone, nil
}

// FormatEnergyReading formats a reading for logging or debugging
func (tp *TelemetryParser) FormatEnergyReading(reading *models.EnergyReading) string {
	return fmt.Sprintf("Building: %s, Time: %s, Usage: %.2f kWh, Solar: %.2f kWh, Traffic: %.1f",
		reading.BuildingID,
		reading.Timestamp.Format("2006-01-02 15:04:05"),
		reading.EnergyUsage,
		reading.SolarProduction,
		reading.TrafficIndex)
}
