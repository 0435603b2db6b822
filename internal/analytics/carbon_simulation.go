package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

const (
	maxReductionPercent = 95.0 // No scenario claims near-total elimination
	minSimulatedCarbon  = 5.0  // Floor prevents implausible zero-emission results
	minTimelineMonths   = 2.0
	defaultTimeline     = 3.0

	// Flat estimate for "per unit" cost strings where no quantity is known.
	// A documented approximation, not a parse failure.
	perUnitCostEstimate = 500000.0

	currencyPerTonBenefit = 1000.0
	minPaybackYears       = 0.5
)

// timelineMonths maps free-text timeline prefixes to month estimates
var timelineMonths = []struct {
	prefix string
	months float64
}{
	{"1 week", 0.25},
	{"2 weeks", 0.5},
	{"1 month", 1},
	{"1-2 months", 1.5},
	{"2-4 months", 3},
	{"3-6 months", 4.5},
	{"6-12 months", 9},
	{"1-2 years", 18},
	{"2-3 years", 30},
}

// SimulationEngine runs what-if projections over a selected strategy subset
type SimulationEngine struct{}

// NewSimulationEngine creates a new simulation engine
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{}
}

// Simulate projects the post-intervention carbon and score for the
// selected strategies. Total reduction is capped at 95% and simulated
// carbon is floored at 5 kg.
func (se *SimulationEngine) Simulate(baseCarbon, baseScore float64, selected []models.SustainabilityStrategy) models.SimulationScenario {
	totalReduction := 0.0
	for _, s := range selected {
		totalReduction += s.CarbonReduction
	}
	totalReduction = math.Min(totalReduction, maxReductionPercent)

	simulatedCarbon := math.Max(baseCarbon*(1-totalReduction/100), minSimulatedCarbon)

	scoreIncrease := math.Min(totalReduction*scorePerReductionPct, maxScoreIncrease)
	simulatedScore := math.Min(baseScore+scoreIncrease, 100)

	return models.SimulationScenario{
		BaseCarbon:            baseCarbon,
		BaseScore:             baseScore,
		TotalReductionPercent: totalReduction,
		SimulatedCarbon:       roundTo1Decimal(simulatedCarbon),
		SimulatedScore:        roundTo1Decimal(simulatedScore),
		EstimatedMonths:       se.EstimateTimeline(selected),
		EstimatedCost:         se.EstimateCost(selected),
	}
}

// EstimateTimeline converts each strategy's free-text timeline into a
// month figure by prefix matching and takes the slowest one, floored at
// 2 months. An empty selection estimates 0.
func (se *SimulationEngine) EstimateTimeline(strategies []models.SustainabilityStrategy) float64 {
	if len(strategies) == 0 {
		return 0
	}

	longest := 0.0
	for _, s := range strategies {
		months := defaultTimeline
		lower := strings.ToLower(s.Timeline)
		for _, entry := range timelineMonths {
			if strings.HasPrefix(lower, entry.prefix) {
				months = entry.months
				break
			}
		}
		if months > longest {
			longest = months
		}
	}

	return math.Max(longest, minTimelineMonths)
}

// EstimateCost sums the parsed cost strings across strategies
func (se *SimulationEngine) EstimateCost(strategies []models.SustainabilityStrategy) float64 {
	total := 0.0
	for _, s := range strategies {
		total += se.parseCost(s.Cost)
	}
	return total
}

// parseCost converts a free-text cost string to absolute currency units.
// "Crore", "Lakh" and "K" suffixes are scaled; per-unit costs ("... per
// household") get a flat placeholder since no quantity is known, and so
// does anything unparseable.
func (se *SimulationEngine) parseCost(cost string) float64 {
	lower := strings.ToLower(cost)
	if strings.Contains(lower, "per") {
		return perUnitCostEstimate
	}

	cleaned := strings.NewReplacer("₹", "", ",", "").Replace(cost)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return perUnitCostEstimate
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return perUnitCostEstimate
	}

	switch {
	case strings.Contains(lower, "crore"):
		amount *= 10000000
	case strings.Contains(lower, "lakh"):
		amount *= 100000
	case strings.Contains(lower, "k"):
		amount *= 1000
	}
	return amount
}

// ComparisonChartData renders the scenario as two before/after rows
func (se *SimulationEngine) ComparisonChartData(scenario models.SimulationScenario) []models.ComparisonRow {
	carbonReduction := 0.0
	if scenario.BaseCarbon > 0 {
		carbonReduction = (scenario.BaseCarbon - scenario.SimulatedCarbon) / scenario.BaseCarbon * 100
	}
	scoreChange := 0.0
	if scenario.BaseScore > 0 {
		scoreChange = (scenario.BaseScore - scenario.SimulatedScore) / scenario.BaseScore * 100
	}

	return []models.ComparisonRow{
		{
			Metric:    "Carbon Emissions",
			Before:    scenario.BaseCarbon,
			After:     scenario.SimulatedCarbon,
			Reduction: roundTo1Decimal(carbonReduction),
		},
		{
			Metric:    "Sustainability Score",
			Before:    scenario.BaseScore,
			After:     scenario.SimulatedScore,
			Reduction: roundTo1Decimal(scoreChange),
		},
	}
}

// ImplementationPhases sorts the strategies easiest-first and buckets
// them into phases of two
func (se *SimulationEngine) ImplementationPhases(strategies []models.SustainabilityStrategy) []models.ImplementationPhase {
	sorted := make([]models.SustainabilityStrategy, len(strategies))
	copy(sorted, strategies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Difficulty.Level() < sorted[j].Difficulty.Level()
	})

	phases := []models.ImplementationPhase{}
	for i := 0; i < len(sorted); i += 2 {
		end := i + 2
		if end > len(sorted) {
			end = len(sorted)
		}
		phaseNum := i/2 + 1
		phases = append(phases, models.ImplementationPhase{
			Phase:       phaseNum,
			Description: phaseDescription(phaseNum),
			Strategies:  sorted[i:end],
		})
	}
	return phases
}

func phaseDescription(phase int) string {
	switch phase {
	case 1:
		return "Quick wins and easy improvements"
	case 2:
		return "Medium complexity projects"
	default:
		return "Advanced infrastructure upgrades"
	}
}

// ROI computes the per-strategy investment return projection.
// Annual carbon savings divide the total reduction by 12; payback is
// floored at half a year and the 10-year ROI never reports negative.
func (se *SimulationEngine) ROI(strategies []models.SustainabilityStrategy, baseCarbon float64) []models.ROIAnalysis {
	results := make([]models.ROIAnalysis, 0, len(strategies))

	for _, s := range strategies {
		investment := se.parseCost(s.Cost)
		annualSavings := baseCarbon * (s.CarbonReduction / 100) / 12
		annualBenefit := annualSavings * currencyPerTonBenefit

		payback := minPaybackYears
		if annualBenefit > 0 {
			payback = math.Max(investment/annualBenefit, minPaybackYears)
		}

		roi := 0.0
		if investment > 0 {
			roi = math.Max((annualBenefit*10-investment)/investment*100, 0)
		}

		results = append(results, models.ROIAnalysis{
			StrategyID:          s.ID,
			StrategyName:        s.Name,
			Investment:          investment,
			AnnualCarbonSavings: roundTo2Decimals(annualSavings),
			AnnualBenefit:       roundTo2Decimals(annualBenefit),
			PaybackYears:        roundTo2Decimals(payback),
			TenYearROI:          roundTo1Decimal(roi),
		})
	}

	return results
}
