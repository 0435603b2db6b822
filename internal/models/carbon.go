package models

import (
	"time"
)

// CarbonLevel classifies a zone's carbon emission by fixed breakpoints
type CarbonLevel string

const (
	CarbonLevelLow      CarbonLevel = "Low"
	CarbonLevelModerate CarbonLevel = "Moderate"
	CarbonLevelHigh     CarbonLevel = "High"
	CarbonLevelCritical CarbonLevel = "Critical"
)

// ZoneType is a heuristic land-use classification inferred from zone names
type ZoneType string

const (
	ZoneTypeResidential ZoneType = "Residential"
	ZoneTypeCommercial  ZoneType = "Commercial"
	ZoneTypeIndustrial  ZoneType = "Industrial"
	ZoneTypeMixed       ZoneType = "Mixed"
)

// StrategyDifficulty ranks how hard a strategy is to implement
type StrategyDifficulty string

const (
	DifficultyEasy   StrategyDifficulty = "Easy"
	DifficultyMedium StrategyDifficulty = "Medium"
	DifficultyHard   StrategyDifficulty = "Hard"
)

// Level returns a numeric rank for sorting strategies by difficulty
func (d StrategyDifficulty) Level() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 4
	}
}

// CarbonUtilization expresses a carbon mass as equivalent mitigating actions
type CarbonUtilization struct {
	TreesNeeded             int     `json:"trees_needed"`
	SolarKWRequired         int     `json:"solar_kw_required"`
	EVShiftEquivalent       int     `json:"ev_shift_equivalent"`
	ConcreteInjectionOffset float64 `json:"concrete_injection_offset"` // tons via mineralization
	SyntheticFuelPotential  float64 `json:"synthetic_fuel_potential"`  // tons convertible to synfuel
}

// SustainabilityStrategy is one entry from the static strategy catalogs
type SustainabilityStrategy struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	CarbonReduction float64            `json:"carbon_reduction"` // percent
	Difficulty      StrategyDifficulty `json:"difficulty"`
	Cost            string             `json:"cost"`
	Timeline        string             `json:"timeline"`
}

// CarbonAnalysis classifies a single zone's emission profile
type CarbonAnalysis struct {
	ZoneID            string      `json:"zone_id"`
	ZoneName          string      `json:"zone_name"`
	CarbonEmission    float64     `json:"carbon_emission"`
	EnergyConsumption float64     `json:"energy_consumption"`
	Level             CarbonLevel `json:"level"`
	ZoneType          ZoneType    `json:"zone_type"`
}

// CarbonRecommendation bundles analysis, offset equivalents, the selected
// strategy catalog and the projected score uplift for one zone
type CarbonRecommendation struct {
	Analysis       CarbonAnalysis           `json:"analysis"`
	Utilization    CarbonUtilization        `json:"utilization"`
	Strategies     []SustainabilityStrategy `json:"strategies"`
	ScoreIncrease  float64                  `json:"score_increase"`
	ProjectedScore float64                  `json:"projected_score"`
	Report         string                   `json:"report"`
	GeneratedAt    time.Time                `json:"generated_at"`
}

// SimulationScenario is the what-if outcome for a selected strategy subset
type SimulationScenario struct {
	BaseCarbon            float64 `json:"base_carbon"`
	BaseScore             float64 `json:"base_score"`
	TotalReductionPercent float64 `json:"total_reduction_percent"`
	SimulatedCarbon       float64 `json:"simulated_carbon"`
	SimulatedScore        float64 `json:"simulated_score"`
	EstimatedMonths       float64 `json:"estimated_months"`
	EstimatedCost         float64 `json:"estimated_cost"`
}

// ComparisonRow is one before/after row of the scenario comparison chart
type ComparisonRow struct {
	Metric    string  `json:"metric"`
	Before    float64 `json:"before"`
	After     float64 `json:"after"`
	Reduction float64 `json:"reduction"`
}

// ImplementationPhase groups strategies into a rollout stage
type ImplementationPhase struct {
	Phase       int                      `json:"phase"`
	Description string                   `json:"description"`
	Strategies  []SustainabilityStrategy `json:"strategies"`
}

// ROIAnalysis is the per-strategy investment return projection
type ROIAnalysis struct {
	StrategyID          string  `json:"strategy_id"`
	StrategyName        string  `json:"strategy_name"`
	Investment          float64 `json:"investment"`
	AnnualCarbonSavings float64 `json:"annual_carbon_savings"`
	AnnualBenefit       float64 `json:"annual_benefit"`
	PaybackYears        float64 `json:"payback_years"`
	TenYearROI          float64 `json:"ten_year_roi"` // percent
}

// PredictionPoint is one labelled step of a forecast horizon
type PredictionPoint struct {
	Label string  `json:"time"`
	Value float64 `json:"value"`
}
