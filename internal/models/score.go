package models

import (
	"time"
)

// ScoreFactors holds the normalizable inputs to the sustainability score.
// TemperatureSeverity is the absolute deviation from a neutral baseline.
type ScoreFactors struct {
	AQI                 float64 `json:"aqi"`
	EnergyConsumption   float64 `json:"energy_consumption"`
	CarbonEmission      float64 `json:"carbon_emission"`
	TemperatureSeverity float64 `json:"temperature_severity"`
}

// ScoreStatus represents the categorical tier of a sustainability score
type ScoreStatus string

const (
	ScoreStatusExcellent ScoreStatus = "Excellent"
	ScoreStatusGood      ScoreStatus = "Good"
	ScoreStatusModerate  ScoreStatus = "Moderate"
	ScoreStatusPoor      ScoreStatus = "Poor"
	ScoreStatusCritical  ScoreStatus = "Critical"
)

// SustainabilityScore is the composite 0-100 index with its status tier
type SustainabilityScore struct {
	Value       int         `json:"value"`
	Status      ScoreStatus `json:"status"`
	Color       string      `json:"color"`
	Description string      `json:"description"`
	Timestamp   time.Time   `json:"timestamp"`
}

// ScoreTrend describes the direction of change against a previous score.
// Direction is -1, 0 or 1; Change is the absolute difference.
type ScoreTrend struct {
	Direction int     `json:"direction"`
	Change    float64 `json:"change"`
}

// StatusForScore maps a score value onto its tier.
// The tiers partition [0,100] with no gaps.
func StatusForScore(score int) ScoreStatus {
	switch {
	case score >= 80:
		return ScoreStatusExcellent
	case score >= 60:
		return ScoreStatusGood
	case score >= 40:
		return ScoreStatusModerate
	case score >= 20:
		return ScoreStatusPoor
	default:
		return ScoreStatusCritical
	}
}

// ColorTag returns the presentation color associated with a status tier
func (s ScoreStatus) ColorTag() string {
	switch s {
	case ScoreStatusExcellent:
		return "green"
	case ScoreStatusGood:
		return "lime"
	case ScoreStatusModerate:
		return "yellow"
	case ScoreStatusPoor:
		return "orange"
	default:
		return "red"
	}
}

// Describe returns the one-line summary shown alongside the status tier
func (s ScoreStatus) Describe() string {
	switch s {
	case ScoreStatusExcellent:
		return "Environmental conditions are excellent across all metrics"
	case ScoreStatusGood:
		return "Environmental conditions are good with minor concerns"
	case ScoreStatusModerate:
		return "Environmental conditions need attention in some areas"
	case ScoreStatusPoor:
		return "Environmental conditions are poor and require action"
	default:
		return "Environmental conditions are critical and demand immediate action"
	}
}

// IsImproving returns true if the trend points upward
func (t ScoreTrend) IsImproving() bool {
	return t.Direction > 0
}
