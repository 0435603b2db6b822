package analytics

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if Mean([]float64{}) != 0 {
		t.Errorf("Expected mean 0 for empty input, got %v", Mean([]float64{}))
	}
	if Mean([]float64{5}) != 5 {
		t.Errorf("Expected mean 5 for single sample, got %v", Mean([]float64{5}))
	}

	got := Mean([]float64{2, 4, 6, 8})
	if got != 5 {
		t.Errorf("Expected mean 5, got %v", got)
	}
}

func TestStdDev_Population(t *testing.T) {
	// Population variance divides by N, so [2,4,4,4,5,5,7,9] gives exactly 2
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("Expected population std dev 2, got %v", got)
	}
}

func TestStdDev_InsufficientSamples(t *testing.T) {
	if StdDev([]float64{}) != 0 {
		t.Error("Expected std dev 0 for empty input")
	}
	if StdDev([]float64{42}) != 0 {
		t.Error("Expected std dev 0 for a single sample")
	}
}

func TestStdDev_ConstantSeries(t *testing.T) {
	got := StdDev([]float64{7, 7, 7, 7})
	if got != 0 {
		t.Errorf("Expected std dev 0 for constant series, got %v", got)
	}
}

func TestZScore(t *testing.T) {
	got := ZScore(110, 100, 5)
	if got != 2 {
		t.Errorf("Expected z-score 2, got %v", got)
	}

	got = ZScore(90, 100, 5)
	if got != -2 {
		t.Errorf("Expected z-score -2, got %v", got)
	}

	// Zero spread must not divide by zero
	if ZScore(110, 100, 0) != 0 {
		t.Error("Expected z-score 0 when std dev is 0")
	}
}
