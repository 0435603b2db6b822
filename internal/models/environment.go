package models

import (
	"time"
)

// EnergyReading represents a complete energy reading from a building smart meter
type EnergyReading struct {
	Timestamp       time.Time `json:"timestamp"`
	BuildingID      string    `json:"building_id"`
	EnergyUsage     float64   `json:"energy_usage"`     // kWh
	SolarProduction float64   `json:"solar_production"` // kWh
	TrafficIndex    float64   `json:"traffic_index"`    // 0-100
}

// EnergyData represents the raw JSON structure received from a meter
type EnergyData struct {
	EnergyUsage     float64 `json:"energy_usage"`
	SolarProduction float64 `json:"solar_production"`
	TrafficIndex    float64 `json:"traffic_index"`
}

// WeatherSnapshot holds the current weather observation for the monitored area
type WeatherSnapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // %
	WindSpeed   float64   `json:"wind_speed"`  // km/h
	Condition   string    `json:"condition"`
}

// AirQualitySnapshot holds the current pollution observation
type AirQualitySnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	AQI       float64   `json:"aqi"`
	PM25      float64   `json:"pm25"`
	PM10      float64   `json:"pm10"`
	SO2       float64   `json:"so2"`
	NO2       float64   `json:"no2"`
}

// DashboardState is the full in-memory snapshot the analytics engine runs on.
// It is assembled by the ingestion layer and handed to the pure computation
// functions; the core never fetches data itself.
type DashboardState struct {
	Timestamp       time.Time           `json:"timestamp"`
	Weather         WeatherSnapshot     `json:"weather"`
	AirQuality      AirQualitySnapshot  `json:"air_quality"`
	Readings        []EnergyReading     `json:"readings"`
	RollingAvgUsage float64             `json:"rolling_avg_usage"`
	EnergyHistory   []float64           `json:"energy_history"`
	Score           SustainabilityScore `json:"score"`
	PreviousScore   int                 `json:"previous_score"`
	Anomalies       []Anomaly           `json:"anomalies"`
}

// MetricSample pairs a metric's current value with its historical series.
// Detection passes take a slice of these so output order stays deterministic.
type MetricSample struct {
	Name    string    `json:"name"`
	Current float64   `json:"current"`
	History []float64 `json:"history"`
}

// ValidateReading checks if meter values are within acceptable ranges
func (r *EnergyReading) ValidateReading() bool {
	// Usage and solar production should be non-negative (kWh units)
	if r.EnergyUsage < 0 {
		return false
	}
	if r.SolarProduction < 0 {
		return false
	}
	// Traffic index is a 0-100 congestion scale
	if r.TrafficIndex < 0 || r.TrafficIndex > 100 {
		return false
	}
	if r.BuildingID == "" {
		return false
	}
	return true
}

// NetUsage returns grid consumption after on-site solar is subtracted
func (r *EnergyReading) NetUsage() float64 {
	net := r.EnergyUsage - r.SolarProduction
	if net < 0 {
		return 0
	}
	return net
}

// GetAQIStatus returns the AQI band based on the standard index scale
func (a *AirQualitySnapshot) GetAQIStatus() string {
	switch {
	case a.AQI <= 50:
		return "good"
	case a.AQI <= 100:
		return "moderate"
	case a.AQI <= 150:
		return "unhealthy_sensitive"
	case a.AQI <= 200:
		return "unhealthy"
	case a.AQI <= 300:
		return "very_unhealthy"
	default:
		return "hazardous"
	}
}

// GetHeatStatus returns temperature status for the monitored area
func (w *WeatherSnapshot) GetHeatStatus() string {
	switch {
	case w.Temperature > 35:
		return "extreme"
	case w.Temperature > 30:
		return "high"
	case w.Temperature < 5:
		return "cold"
	default:
		return "normal"
	}
}

// TotalUsage sums energy usage across all building readings
func (s *DashboardState) TotalUsage() float64 {
	total := 0.0
	for _, r := range s.Readings {
		total += r.EnergyUsage
	}
	return total
}

// TotalSolar sums solar production across all building readings
func (s *DashboardState) TotalSolar() float64 {
	total := 0.0
	for _, r := range s.Readings {
		total += r.SolarProduction
	}
	return total
}
