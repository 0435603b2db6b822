package analytics

import "math"

// Mean returns the arithmetic mean of the samples, 0 for empty input
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// StdDev returns the population standard deviation (divide by N, not N-1).
// Fewer than 2 samples yields 0 since no spread can be established.
func StdDev(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := Mean(samples)
	varianceSum := 0.0
	for _, v := range samples {
		diff := v - mean
		varianceSum += diff * diff
	}
	variance := varianceSum / float64(len(samples))
	return math.Sqrt(variance)
}

// ZScore returns how many standard deviations value lies from mean.
// Returns 0 when stdDev is 0 to avoid dividing by zero.
func ZScore(value, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return (value - mean) / stdDev
}

func clampValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func roundTo1Decimal(value float64) float64 {
	return math.Round(value*10) / 10
}
