package analytics

import (
	"strings"
	"testing"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

func steadyHistory(base float64, n int) []float64 {
	// Alternates slightly around base so the series has nonzero variance
	history := make([]float64, n)
	for i := range history {
		history[i] = base
		if i%2 == 0 {
			history[i] = base + 2
		} else {
			history[i] = base - 2
		}
	}
	return history
}

func TestAnomalyDetector_ShortHistoryNeverAnomalous(t *testing.T) {
	detector := NewAnomalyDetector()

	if detector.IsAnomalous(1000, []float64{}) {
		t.Error("Expected no anomaly with empty history")
	}
	if detector.IsAnomalous(1000, []float64{100}) {
		t.Error("Expected no anomaly with a single history sample")
	}
}

func TestAnomalyDetector_ConstantSeriesNeverAnomalous(t *testing.T) {
	detector := NewAnomalyDetector()

	// Zero variance means the z-score cannot be normalized
	if detector.IsAnomalous(500, []float64{100, 100, 100, 100}) {
		t.Error("Expected no anomaly on a zero-variance series")
	}
}

func TestAnomalyDetector_DetectsSpike(t *testing.T) {
	detector := NewAnomalyDetector()
	history := steadyHistory(100, 20)

	if !detector.IsAnomalous(150, history) {
		t.Error("Expected spike of 150 against ~100 baseline to be anomalous")
	}
	if !detector.IsAnomalous(50, history) {
		t.Error("Expected drop to 50 against ~100 baseline to be anomalous")
	}
	if detector.IsAnomalous(101, history) {
		t.Error("Expected value near the mean to not be anomalous")
	}
}

func TestAnomalyDetector_DetectAll(t *testing.T) {
	detector := NewAnomalyDetector()

	samples := []models.MetricSample{
		{Name: "energy_usage", Current: 500, History: steadyHistory(100, 20)},
		{Name: "aqi", Current: 101, History: steadyHistory(100, 20)},
		{Name: "temperature", Current: 30, History: []float64{29}}, // Too short, skipped
	}

	anomalies := detector.DetectAll(samples)
	if len(anomalies) != 1 {
		t.Fatalf("Expected 1 anomaly, got %d", len(anomalies))
	}

	anomaly := anomalies[0]
	if anomaly.Metric != "energy_usage" {
		t.Errorf("Expected anomaly on energy_usage, got %s", anomaly.Metric)
	}
	if anomaly.CurrentValue != 500 {
		t.Errorf("Expected current value 500, got %v", anomaly.CurrentValue)
	}
	if anomaly.ExpectedValue != 100 {
		t.Errorf("Expected mean 100, got %v", anomaly.ExpectedValue)
	}
	if anomaly.Deviation != 400 {
		t.Errorf("Expected deviation 400, got %v", anomaly.Deviation)
	}
	if anomaly.Severity != "high" {
		t.Errorf("Expected severity high for extreme spike, got %s", anomaly.Severity)
	}
	if anomaly.Description == "" {
		t.Error("Expected a human-readable description")
	}
}

func TestAnomalyDetector_DetectAll_LowDirection(t *testing.T) {
	detector := NewAnomalyDetector()

	samples := []models.MetricSample{
		{Name: "aqi", Current: 10, History: steadyHistory(100, 20)},
	}

	anomalies := detector.DetectAll(samples)
	if len(anomalies) != 1 {
		t.Fatalf("Expected 1 anomaly, got %d", len(anomalies))
	}
	if !strings.Contains(anomalies[0].Description, "unusually low") {
		t.Errorf("Expected description to mention unusually low, got %q", anomalies[0].Description)
	}
}

func TestAnomalyDetector_SeverityTiers(t *testing.T) {
	detector := NewAnomalyDetector()

	if got := detector.calculateSeverity(3.5); got != "high" {
		t.Errorf("Expected high severity for |z|=3.5, got %s", got)
	}
	if got := detector.calculateSeverity(2.5); got != "medium" {
		t.Errorf("Expected medium severity for |z|=2.5, got %s", got)
	}
	if got := detector.calculateSeverity(1.5); got != "low" {
		t.Errorf("Expected low severity for |z|=1.5, got %s", got)
	}
	// Boundary: exactly 3 is medium, exactly 2 is low
	if got := detector.calculateSeverity(3.0); got != "medium" {
		t.Errorf("Expected medium severity at |z|=3.0, got %s", got)
	}
	if got := detector.calculateSeverity(2.0); got != "low" {
		t.Errorf("Expected low severity at |z|=2.0, got %s", got)
	}
}
