package analytics

import (
	"fmt"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// ForecastEngine produces short-horizon forecasts for energy, AQI and
// carbon series using exponential smoothing and linear trend extrapolation
type ForecastEngine struct {
	smoothingAlpha  float64 // Weight for exponential smoothing (0-1)
	defaultHorizon  int     // Steps to predict when none requested
	carbonIntensity float64 // kg CO2 per kWh-equivalent unit
}

// NewForecastEngine creates a forecast engine with default parameters
func NewForecastEngine() *ForecastEngine {
	return &ForecastEngine{
		smoothingAlpha:  0.3,
		defaultHorizon:  12,
		carbonIntensity: 0.4,
	}
}

// Smooth applies exponential smoothing to the series. Empty input yields
// an empty output.
func (fe *ForecastEngine) Smooth(series []float64) []float64 {
	if len(series) == 0 {
		return []float64{}
	}

	smoothed := make([]float64, len(series))
	smoothed[0] = series[0]
	for i := 1; i < len(series); i++ {
		smoothed[i] = fe.smoothingAlpha*series[i] + (1-fe.smoothingAlpha)*smoothed[i-1]
	}
	return smoothed
}

// TrendExtrapolate fits an ordinary least-squares line over the whole
// series and evaluates it at the next steps indices, floored at 0.
// Series shorter than 2 samples are returned unchanged since no trend
// can be fitted.
func (fe *ForecastEngine) TrendExtrapolate(series []float64, steps int) []float64 {
	n := len(series)
	if n < 2 {
		out := make([]float64, n)
		copy(out, series)
		return out
	}

	slope, intercept := linearFit(series)

	out := make([]float64, steps)
	for i := 0; i < steps; i++ {
		value := intercept + slope*float64(n+i)
		if value < 0 {
			value = 0
		}
		out[i] = value
	}
	return out
}

// ForecastEnergy predicts usage for the next hours steps and applies a
// time-of-day demand factor. currentHour is injected by the caller so
// forecasts stay reproducible; labels carry the wall-clock hour.
// The result always has exactly hours points: degenerate histories hold
// the last known value.
func (fe *ForecastEngine) ForecastEnergy(history []float64, currentHour, hours int) []models.PredictionPoint {
	if hours <= 0 {
		hours = fe.defaultHorizon
	}

	predicted := fe.padToHorizon(fe.TrendExtrapolate(history, hours), history, hours)

	points := make([]models.PredictionPoint, hours)
	for i, value := range predicted {
		hour := ((currentHour+i+1)%24 + 24) % 24

		// Daytime demand peaks between 08:00 and 18:00
		factor := 0.8
		if hour >= 8 && hour <= 18 {
			factor = 1.2
		}

		points[i] = models.PredictionPoint{
			Label: fmt.Sprintf("%02d:00", hour),
			Value: roundTo2Decimals(value * factor),
		}
	}
	return points
}

// ForecastAQI smooths then extrapolates the AQI series and applies wind
// dispersal and temperature/ozone adjustments, clamped to the 0-500
// index scale. Labels are relative offsets ("+Nh").
func (fe *ForecastEngine) ForecastAQI(history []float64, temperature, windSpeed float64, hours int) []models.PredictionPoint {
	if hours <= 0 {
		hours = fe.defaultHorizon
	}

	smoothed := fe.Smooth(history)
	predicted := fe.padToHorizon(fe.TrendExtrapolate(smoothed, hours), smoothed, hours)

	windFactor := 1 - (windSpeed/30)*0.3
	tempFactor := 0.95
	if temperature > 25 {
		tempFactor = 1.1 // Heat accelerates ozone formation
	}

	points := make([]models.PredictionPoint, hours)
	for i, value := range predicted {
		adjusted := clampValue(value*windFactor*tempFactor, 0, 500)
		points[i] = models.PredictionPoint{
			Label: fmt.Sprintf("+%dh", i+1),
			Value: roundTo2Decimals(adjusted),
		}
	}
	return points
}

// ForecastCarbon scales the energy forecast by grid carbon intensity.
// carbonIntensity <= 0 selects the default of 0.4 kg CO2 per unit.
func (fe *ForecastEngine) ForecastCarbon(history []float64, carbonIntensity float64, currentHour, hours int) []models.PredictionPoint {
	if carbonIntensity <= 0 {
		carbonIntensity = fe.carbonIntensity
	}

	points := fe.ForecastEnergy(history, currentHour, hours)
	for i := range points {
		points[i].Value = roundTo2Decimals(points[i].Value * carbonIntensity)
	}
	return points
}

// padToHorizon guarantees exactly hours values by holding the last known
// sample when extrapolation could not produce a full horizon
func (fe *ForecastEngine) padToHorizon(predicted, history []float64, hours int) []float64 {
	last := 0.0
	if len(history) > 0 {
		last = history[len(history)-1]
	}
	for len(predicted) < hours {
		predicted = append(predicted, last)
	}
	return predicted[:hours]
}

// linearFit returns the OLS slope and intercept of value against index
func linearFit(values []float64) (slope, intercept float64) {
	n := float64(len(values))

	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0

	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
