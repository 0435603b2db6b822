package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// AnomalyDetector flags out-of-distribution readings per metric
type AnomalyDetector struct {
	zScoreThreshold float64 // Number of standard deviations for anomaly
}

// NewAnomalyDetector creates a new anomaly detector with the default threshold
func NewAnomalyDetector() *AnomalyDetector {
	return &AnomalyDetector{
		zScoreThreshold: 2.0, // 2 sigma rule (~95% confidence)
	}
}

// IsAnomalous reports whether current lies more than the threshold number
// of standard deviations from the historical mean. Histories shorter than
// 2 samples cannot establish a distribution and are never anomalous;
// zero-variance histories are also never anomalous since the z-score
// cannot be normalized (this avoids false positives on constant series).
func (ad *AnomalyDetector) IsAnomalous(current float64, history []float64) bool {
	if len(history) < 2 {
		return false
	}
	stdDev := StdDev(history)
	if stdDev == 0 {
		return false
	}
	z := math.Abs(ZScore(current, Mean(history), stdDev))
	return z > ad.zScoreThreshold
}

// DetectAll runs a detection pass over every metric sample and emits one
// Anomaly per metric that trips the threshold. The input is an ordered
// slice so the output order is deterministic. Metrics lacking sufficient
// history are silently skipped.
func (ad *AnomalyDetector) DetectAll(samples []models.MetricSample) []models.Anomaly {
	anomalies := []models.Anomaly{}
	now := time.Now()

	for i, sample := range samples {
		if len(sample.History) < 2 {
			continue
		}

		mean := Mean(sample.History)
		stdDev := StdDev(sample.History)
		if stdDev == 0 {
			continue
		}

		z := (sample.Current - mean) / stdDev
		if math.Abs(z) <= ad.zScoreThreshold {
			continue
		}

		direction := "high"
		if z < 0 {
			direction = "low"
		}

		anomalies = append(anomalies, models.Anomaly{
			ID:            fmt.Sprintf("anomaly-%d-%d", now.UnixMilli(), i),
			Metric:        sample.Name,
			CurrentValue:  sample.Current,
			ExpectedValue: mean,
			Deviation:     math.Abs(sample.Current - mean),
			Severity:      ad.calculateSeverity(math.Abs(z)),
			Timestamp:     now,
			Description: fmt.Sprintf("%s is unusually %s: %.2f (expected ~%.2f)",
				sample.Name, direction, sample.Current, mean),
		})
	}

	return anomalies
}

// calculateSeverity determines severity based on z-score
func (ad *AnomalyDetector) calculateSeverity(absZScore float64) string {
	switch {
	case absZScore > 3.0:
		return "high"
	case absZScore > 2.0:
		return "medium"
	default:
		return "low"
	}
}
