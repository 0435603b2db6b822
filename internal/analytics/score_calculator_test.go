package analytics

import (
	"testing"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

func TestScoreCalculator_PerfectConditions(t *testing.T) {
	sc := NewScoreCalculator()

	score := sc.Score(models.ScoreFactors{})
	if score != 100 {
		t.Errorf("Expected score 100 for all-zero factors, got %d", score)
	}
}

func TestScoreCalculator_ExtremeConditions(t *testing.T) {
	sc := NewScoreCalculator()

	// Every factor saturates its normalization ceiling
	score := sc.Score(models.ScoreFactors{
		AQI:                 500,
		EnergyConsumption:   5000,
		CarbonEmission:      5000,
		TemperatureSeverity: 20,
	})
	if score != 0 {
		t.Errorf("Expected score 0 under saturated factors, got %d", score)
	}
}

func TestScoreCalculator_WeightedBlend(t *testing.T) {
	sc := NewScoreCalculator()

	// aqi 150/3=50, energy 500/1000=50, carbon 200/500=40, temp 3*10=30
	// 100 - (50*.2 + 50*.3 + 40*.3 + 30*.2) = 57
	score := sc.Score(models.ScoreFactors{
		AQI:                 150,
		EnergyConsumption:   500,
		CarbonEmission:      200,
		TemperatureSeverity: 3,
	})
	if score != 57 {
		t.Errorf("Expected score 57, got %d", score)
	}
}

func TestScoreCalculator_Evaluate(t *testing.T) {
	sc := NewScoreCalculator()

	result := sc.Evaluate(models.ScoreFactors{AQI: 60})
	if result.Value != 96 {
		t.Errorf("Expected score 96, got %d", result.Value)
	}
	if result.Status != models.ScoreStatusExcellent {
		t.Errorf("Expected Excellent status, got %s", result.Status)
	}
	if result.Color != "green" {
		t.Errorf("Expected green color tag, got %s", result.Color)
	}
	if result.Description == "" {
		t.Error("Expected a status description")
	}
	if result.Timestamp.IsZero() {
		t.Error("Expected a timestamp on the evaluated score")
	}
}

func TestStatusForScore_Tiers(t *testing.T) {
	cases := []struct {
		score  int
		status models.ScoreStatus
	}{
		{100, models.ScoreStatusExcellent},
		{80, models.ScoreStatusExcellent},
		{79, models.ScoreStatusGood},
		{60, models.ScoreStatusGood},
		{59, models.ScoreStatusModerate},
		{40, models.ScoreStatusModerate},
		{39, models.ScoreStatusPoor},
		{20, models.ScoreStatusPoor},
		{19, models.ScoreStatusCritical},
		{0, models.ScoreStatusCritical},
	}

	for _, c := range cases {
		if got := models.StatusForScore(c.score); got != c.status {
			t.Errorf("Expected status %s for score %d, got %s", c.status, c.score, got)
		}
	}
}

func TestScoreCalculator_Trend(t *testing.T) {
	sc := NewScoreCalculator()

	// No prior score yields a flat zero trend
	trend := sc.Trend(70, 0)
	if trend.Direction != 0 || trend.Change != 0 {
		t.Errorf("Expected flat trend with no prior score, got %+v", trend)
	}

	trend = sc.Trend(70, 65)
	if trend.Direction != 1 {
		t.Errorf("Expected upward trend, got direction %d", trend.Direction)
	}
	if trend.Change != 5 {
		t.Errorf("Expected change 5, got %v", trend.Change)
	}

	trend = sc.Trend(60, 65)
	if trend.Direction != -1 {
		t.Errorf("Expected downward trend, got direction %d", trend.Direction)
	}

	// Changes within the dead-zone report no direction
	trend = sc.Trend(66, 65)
	if trend.Direction != 0 {
		t.Errorf("Expected dead-zone to suppress direction, got %d", trend.Direction)
	}
	if trend.Change != 1 {
		t.Errorf("Expected change 1 inside dead-zone, got %v", trend.Change)
	}
	if trend.IsImproving() {
		t.Error("Expected flat trend to not report improving")
	}
}
