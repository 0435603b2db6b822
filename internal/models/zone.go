package models

import (
	"time"
)

// ZoneDocument is the raw zone record as delivered by upstream sources.
// Different feeds use different field names for the same quantity, so
// every numeric field is a pointer and resolution happens once in
// Canonical; core logic never sees the alternate names.
type ZoneDocument struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Carbon              *float64   `json:"carbon,omitempty"`
	CarbonEmission      *float64   `json:"carbon_emission,omitempty"`
	Energy              *float64   `json:"energy,omitempty"`
	EnergyConsumption   *float64   `json:"energy_consumption,omitempty"`
	AQI                 *float64   `json:"aqi,omitempty"`
	AirQuality          *float64   `json:"air_quality,omitempty"`
	Score               *float64   `json:"score,omitempty"`
	SustainabilityScore *float64   `json:"sustainability_score,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// Zone is the canonical per-zone environmental snapshot used everywhere
// downstream of ingestion
type Zone struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CarbonEmission    float64   `json:"carbon_emission"`
	EnergyConsumption float64   `json:"energy_consumption"`
	AQI               float64   `json:"aqi"`
	Score             float64   `json:"score"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Canonical resolves the alternate field names into a single typed record
func (d *ZoneDocument) Canonical() Zone {
	zone := Zone{
		ID:                d.ID,
		Name:              d.Name,
		CarbonEmission:    firstValue(d.CarbonEmission, d.Carbon),
		EnergyConsumption: firstValue(d.EnergyConsumption, d.Energy),
		AQI:               firstValue(d.AQI, d.AirQuality),
		Score:             firstValue(d.SustainabilityScore, d.Score),
	}
	if d.UpdatedAt != nil {
		zone.UpdatedAt = *d.UpdatedAt
	} else {
		zone.UpdatedAt = time.Now()
	}
	return zone
}

// Validate checks that a canonical zone is usable for analysis
func (z *Zone) Validate() bool {
	if z.ID == "" || z.Name == "" {
		return false
	}
	if z.CarbonEmission < 0 || z.EnergyConsumption < 0 {
		return false
	}
	return true
}

func firstValue(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}
