package analytics

import (
	"math"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// Normalization denominators and weights for the sustainability score.
// These are fixed design constants, not configuration.
const (
	aqiDivisor    = 3.0
	energyCeiling = 1000.0
	carbonCeiling = 500.0
	tempScale     = 10.0

	aqiWeight    = 0.2
	energyWeight = 0.3
	carbonWeight = 0.3
	tempWeight   = 0.2

	trendDeadZone = 2.0
)

// ScoreCalculator turns raw environmental factors into the composite
// 0-100 sustainability score
type ScoreCalculator struct{}

// NewScoreCalculator creates a new score calculator
func NewScoreCalculator() *ScoreCalculator {
	return &ScoreCalculator{}
}

// Score normalizes each factor to a 0-100 sub-score, blends them with
// fixed weights and returns the rounded result clamped to [0,100]
func (sc *ScoreCalculator) Score(factors models.ScoreFactors) int {
	aqiNorm := math.Min(factors.AQI/aqiDivisor, 100)
	energyNorm := math.Min(factors.EnergyConsumption/energyCeiling*100, 100)
	carbonNorm := math.Min(factors.CarbonEmission/carbonCeiling*100, 100)
	tempNorm := math.Min(math.Abs(factors.TemperatureSeverity)*tempScale, 100)

	raw := 100 - (aqiNorm*aqiWeight + energyNorm*energyWeight + carbonNorm*carbonWeight + tempNorm*tempWeight)
	score := int(math.Round(raw))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Evaluate composes the score value with its status tier metadata
func (sc *ScoreCalculator) Evaluate(factors models.ScoreFactors) models.SustainabilityScore {
	value := sc.Score(factors)
	status := models.StatusForScore(value)
	return models.SustainabilityScore{
		Value:       value,
		Status:      status,
		Color:       status.ColorTag(),
		Description: status.Describe(),
		Timestamp:   time.Now(),
	}
}

// Trend compares the current score against a previous one. A dead-zone
// of ±2 suppresses noise; previous <= 0 means no prior score exists and
// yields a flat trend.
func (sc *ScoreCalculator) Trend(current, previous int) models.ScoreTrend {
	if previous <= 0 {
		return models.ScoreTrend{}
	}

	diff := float64(current - previous)
	direction := 0
	if diff > trendDeadZone {
		direction = 1
	} else if diff < -trendDeadZone {
		direction = -1
	}

	return models.ScoreTrend{
		Direction: direction,
		Change:    math.Abs(diff),
	}
}
