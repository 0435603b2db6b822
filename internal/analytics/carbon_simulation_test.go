package analytics

import (
	"math"
	"testing"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

func TestSimulationEngine_Simulate(t *testing.T) {
	se := NewSimulationEngine()

	selected := []models.SustainabilityStrategy{
		{ID: "ind-heat", CarbonReduction: 28, Cost: "₹6 Crore", Timeline: "1-2 years"},
		{ID: "ind-synfuel", CarbonReduction: 16, Cost: "₹3 Crore", Timeline: "6-12 months"},
	}

	scenario := se.Simulate(200, 50, selected)

	if scenario.TotalReductionPercent != 44 {
		t.Errorf("Expected total reduction 44%%, got %v", scenario.TotalReductionPercent)
	}
	// 200 * (1 - 0.44) = 112
	if math.Abs(scenario.SimulatedCarbon-112) > 1e-9 {
		t.Errorf("Expected simulated carbon 112, got %v", scenario.SimulatedCarbon)
	}
	// 50 + 44*0.15 = 56.6
	if math.Abs(scenario.SimulatedScore-56.6) > 1e-9 {
		t.Errorf("Expected simulated score 56.6, got %v", scenario.SimulatedScore)
	}
	if scenario.EstimatedMonths != 18 {
		t.Errorf("Expected 18 month timeline, got %v", scenario.EstimatedMonths)
	}
	if scenario.EstimatedCost != 90000000 {
		t.Errorf("Expected cost 9 crore total, got %v", scenario.EstimatedCost)
	}
}

func TestSimulationEngine_Simulate_EmptySelection(t *testing.T) {
	se := NewSimulationEngine()

	scenario := se.Simulate(200, 60, nil)

	if scenario.TotalReductionPercent != 0 {
		t.Errorf("Expected zero reduction, got %v", scenario.TotalReductionPercent)
	}
	if scenario.SimulatedCarbon != 200 {
		t.Errorf("Expected carbon unchanged at 200, got %v", scenario.SimulatedCarbon)
	}
	if scenario.SimulatedScore != 60 {
		t.Errorf("Expected score unchanged at 60, got %v", scenario.SimulatedScore)
	}
	if scenario.EstimatedMonths != 0 {
		t.Errorf("Expected 0 month timeline, got %v", scenario.EstimatedMonths)
	}
	if scenario.EstimatedCost != 0 {
		t.Errorf("Expected zero cost, got %v", scenario.EstimatedCost)
	}
}

func TestSimulationEngine_Simulate_ReductionCap(t *testing.T) {
	se := NewSimulationEngine()

	selected := []models.SustainabilityStrategy{
		{CarbonReduction: 60}, {CarbonReduction: 60},
	}

	scenario := se.Simulate(200, 50, selected)
	if scenario.TotalReductionPercent != 95 {
		t.Errorf("Expected reduction capped at 95%%, got %v", scenario.TotalReductionPercent)
	}
	// 200 * 0.05 = 10, above the floor
	if math.Abs(scenario.SimulatedCarbon-10) > 1e-9 {
		t.Errorf("Expected simulated carbon 10, got %v", scenario.SimulatedCarbon)
	}
}

func TestSimulationEngine_Simulate_CarbonFloor(t *testing.T) {
	se := NewSimulationEngine()

	selected := []models.SustainabilityStrategy{{CarbonReduction: 95}}

	// 40 * 0.05 = 2, floored at 5
	scenario := se.Simulate(40, 50, selected)
	if scenario.SimulatedCarbon != 5 {
		t.Errorf("Expected carbon floored at 5, got %v", scenario.SimulatedCarbon)
	}
}

func TestSimulationEngine_Simulate_ScoreCap(t *testing.T) {
	se := NewSimulationEngine()

	selected := []models.SustainabilityStrategy{{CarbonReduction: 90}}

	scenario := se.Simulate(200, 95, selected)
	if scenario.SimulatedScore != 100 {
		t.Errorf("Expected simulated score capped at 100, got %v", scenario.SimulatedScore)
	}
}

func TestSimulationEngine_EstimateTimeline(t *testing.T) {
	se := NewSimulationEngine()

	if got := se.EstimateTimeline(nil); got != 0 {
		t.Errorf("Expected 0 months for empty selection, got %v", got)
	}

	// Single fast strategy still floors at 2 months
	fast := []models.SustainabilityStrategy{{Timeline: "1-2 months"}}
	if got := se.EstimateTimeline(fast); got != 2 {
		t.Errorf("Expected floor of 2 months, got %v", got)
	}

	// The slowest strategy dominates
	mixed := []models.SustainabilityStrategy{
		{Timeline: "3-6 months"},
		{Timeline: "1-2 years"},
		{Timeline: "1-2 months"},
	}
	if got := se.EstimateTimeline(mixed); got != 18 {
		t.Errorf("Expected 18 months for slowest strategy, got %v", got)
	}

	// Unrecognized text falls back to the default estimate
	unknown := []models.SustainabilityStrategy{{Timeline: "whenever budget allows"}}
	if got := se.EstimateTimeline(unknown); got != 3 {
		t.Errorf("Expected default 3 months for unknown timeline, got %v", got)
	}
}

func TestSimulationEngine_EstimateCost(t *testing.T) {
	se := NewSimulationEngine()

	strategies := []models.SustainabilityStrategy{
		{Cost: "₹1.2 Crore"},        // 12,000,000
		{Cost: "₹8 Lakh"},           // 800,000
		{Cost: "₹500 per household"}, // flat placeholder 500,000
	}

	got := se.EstimateCost(strategies)
	if got != 13300000 {
		t.Errorf("Expected total cost 13300000, got %v", got)
	}
}

func TestSimulationEngine_ParseCost(t *testing.T) {
	se := NewSimulationEngine()

	cases := []struct {
		cost string
		want float64
	}{
		{"₹2 Crore", 20000000},
		{"₹15 Lakh", 1500000},
		{"₹750 K", 750000},
		{"₹500 per household", 500000},
		{"free of charge", 500000}, // unparseable gets the placeholder
	}

	for _, c := range cases {
		if got := se.parseCost(c.cost); got != c.want {
			t.Errorf("Expected %v for %q, got %v", c.want, c.cost, got)
		}
	}
}

func TestSimulationEngine_ComparisonChartData(t *testing.T) {
	se := NewSimulationEngine()

	scenario := models.SimulationScenario{
		BaseCarbon:      200,
		SimulatedCarbon: 120,
		BaseScore:       50,
		SimulatedScore:  60,
	}

	rows := se.ComparisonChartData(scenario)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 comparison rows, got %d", len(rows))
	}

	if rows[0].Metric != "Carbon Emissions" {
		t.Errorf("Expected carbon row first, got %s", rows[0].Metric)
	}
	if rows[0].Reduction != 40 {
		t.Errorf("Expected 40%% carbon reduction, got %v", rows[0].Reduction)
	}
	if rows[1].Before != 50 || rows[1].After != 60 {
		t.Errorf("Expected score row 50 -> 60, got %v -> %v", rows[1].Before, rows[1].After)
	}
}

func TestSimulationEngine_ComparisonChartData_ZeroBase(t *testing.T) {
	se := NewSimulationEngine()

	rows := se.ComparisonChartData(models.SimulationScenario{})
	if rows[0].Reduction != 0 || rows[1].Reduction != 0 {
		t.Errorf("Expected zero reductions for zero baselines, got %v and %v",
			rows[0].Reduction, rows[1].Reduction)
	}
}

func TestSimulationEngine_ImplementationPhases(t *testing.T) {
	se := NewSimulationEngine()

	strategies := []models.SustainabilityStrategy{
		{ID: "a", Difficulty: models.DifficultyHard},
		{ID: "b", Difficulty: models.DifficultyEasy},
		{ID: "c", Difficulty: models.DifficultyMedium},
		{ID: "d", Difficulty: models.DifficultyEasy},
		{ID: "e", Difficulty: models.DifficultyHard},
	}

	phases := se.ImplementationPhases(strategies)
	if len(phases) != 3 {
		t.Fatalf("Expected 3 phases for 5 strategies, got %d", len(phases))
	}

	// Easiest first, stable within equal difficulty
	first := phases[0].Strategies
	if first[0].ID != "b" || first[1].ID != "d" {
		t.Errorf("Expected easy strategies b, d in phase 1, got %s, %s", first[0].ID, first[1].ID)
	}
	if phases[0].Phase != 1 || phases[2].Phase != 3 {
		t.Errorf("Expected phases numbered 1..3, got %d and %d", phases[0].Phase, phases[2].Phase)
	}
	if len(phases[2].Strategies) != 1 {
		t.Errorf("Expected 1 strategy in the final phase, got %d", len(phases[2].Strategies))
	}
	if phases[0].Description == "" {
		t.Error("Expected a phase description")
	}
}

func TestSimulationEngine_ROI(t *testing.T) {
	se := NewSimulationEngine()

	strategies := []models.SustainabilityStrategy{
		{ID: "s1", Name: "Cheap Fast", Cost: "₹10 K", CarbonReduction: 40},
	}

	results := se.ROI(strategies, 600)
	if len(results) != 1 {
		t.Fatalf("Expected 1 ROI entry, got %d", len(results))
	}

	r := results[0]
	if r.Investment != 10000 {
		t.Errorf("Expected investment 10000, got %v", r.Investment)
	}
	// 600 * 0.40 / 12 = 20
	if math.Abs(r.AnnualCarbonSavings-20) > 1e-9 {
		t.Errorf("Expected annual savings 20, got %v", r.AnnualCarbonSavings)
	}
	if math.Abs(r.AnnualBenefit-20000) > 1e-9 {
		t.Errorf("Expected annual benefit 20000, got %v", r.AnnualBenefit)
	}
	// 10000/20000 = 0.5 years, at the floor
	if r.PaybackYears != 0.5 {
		t.Errorf("Expected payback 0.5 years, got %v", r.PaybackYears)
	}
	// (200000 - 10000) / 10000 * 100 = 1900
	if r.TenYearROI != 1900 {
		t.Errorf("Expected 10-year ROI 1900%%, got %v", r.TenYearROI)
	}
}

func TestSimulationEngine_ROI_NeverNegative(t *testing.T) {
	se := NewSimulationEngine()

	strategies := []models.SustainabilityStrategy{
		{ID: "s1", Cost: "₹6 Crore", CarbonReduction: 10},
	}

	results := se.ROI(strategies, 50)
	if results[0].TenYearROI != 0 {
		t.Errorf("Expected ROI floored at 0 for poor investment, got %v", results[0].TenYearROI)
	}
	if results[0].PaybackYears < 0.5 {
		t.Errorf("Expected payback floored at 0.5 years, got %v", results[0].PaybackYears)
	}
}

func TestSimulationEngine_ROI_ZeroBaseCarbon(t *testing.T) {
	se := NewSimulationEngine()

	strategies := []models.SustainabilityStrategy{
		{ID: "s1", Cost: "₹10 K", CarbonReduction: 40},
	}

	results := se.ROI(strategies, 0)
	r := results[0]
	if r.AnnualCarbonSavings != 0 || r.AnnualBenefit != 0 {
		t.Errorf("Expected zero savings with zero base carbon, got %v and %v",
			r.AnnualCarbonSavings, r.AnnualBenefit)
	}
	if r.PaybackYears != 0.5 {
		t.Errorf("Expected floor payback with zero benefit, got %v", r.PaybackYears)
	}
}
