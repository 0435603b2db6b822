package models

import "math"

// AirQualityWithNormalizedAQI extends AirQualitySnapshot with a normalized index
type AirQualityWithNormalizedAQI struct {
	AirQualitySnapshot
	NormalizedAQI float64 `json:"normalized_aqi"`
}

// NormalizeAQI converts AQI (0-500) to a 0-1 scale where 0 = good (clean), 1 = bad (hazardous)
// Good: 0-50 AQI (0-0.3 normalized), Unhealthy: 50-150 AQI (0.3-0.7 normalized)
// Hazardous: 150+ AQI (0.7-1.0 normalized)
func NormalizeAQI(rawAQI float64) float64 {
	const (
		maxAQI           = 500.0
		goodThreshold    = 50.0
		warningThreshold = 150.0
	)

	// Within good range (0-50 AQI)
	if rawAQI <= goodThreshold {
		return (rawAQI / goodThreshold) * 0.3 // 0 to 0.3
	}

	// Warning range (50-150 AQI)
	if rawAQI <= warningThreshold {
		progress := (rawAQI - goodThreshold) / (warningThreshold - goodThreshold)
		return 0.3 + progress*0.4 // 0.3 to 0.7
	}

	// Hazardous range (150+ AQI)
	progress := math.Min((rawAQI-warningThreshold)/(maxAQI-warningThreshold), 1.0)
	return 0.7 + progress*0.3 // 0.7 to 1.0
}

// AddNormalizedAQI adds the normalized index to an AirQualitySnapshot
func (a *AirQualitySnapshot) AddNormalizedAQI() AirQualityWithNormalizedAQI {
	return AirQualityWithNormalizedAQI{
		AirQualitySnapshot: *a,
		NormalizedAQI:      NormalizeAQI(a.AQI),
	}
}

// GetNormalizedAQIStatus returns the band for a normalized AQI value (0 = good, 1 = bad)
// Returns: "normal", "warning", or "danger"
func GetNormalizedAQIStatus(normalizedAQI float64) string {
	switch {
	case normalizedAQI <= 0.3:
		return "normal"
	case normalizedAQI <= 0.7:
		return "warning"
	default:
		return "danger"
	}
}
