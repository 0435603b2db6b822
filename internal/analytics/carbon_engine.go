package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// Offset-equivalence conversion constants. Fixed domain assumptions
// (kg CO2 absorbed per tree per year, per kW of solar, etc.) that must
// be preserved exactly for output compatibility.
const (
	kgPerTreePerYear   = 21.0
	kgPerSolarKW       = 1400.0
	kgPerEVShift       = 120.0
	concreteShare      = 0.3
	syntheticFuelShare = 0.4

	scorePerReductionPct = 0.15
	maxScoreIncrease     = 40.0
)

// Keyword lists for zone-type inference, checked in order. First match wins.
var zoneTypeKeywords = []struct {
	zoneType models.ZoneType
	keywords []string
}{
	{models.ZoneTypeIndustrial, []string{"industrial", "factory", "mill"}},
	{models.ZoneTypeCommercial, []string{"commercial", "market", "business"}},
	{models.ZoneTypeResidential, []string{"residential", "colony", "suburb"}},
}

// RecommendationEngine classifies zone emissions and selects offset
// strategies from the static playbook catalogs
type RecommendationEngine struct {
	scorer *ScoreCalculator
}

// NewRecommendationEngine creates a new recommendation engine
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{
		scorer: NewScoreCalculator(),
	}
}

// ClassifyCarbonLevel maps an emission figure onto its level by fixed breakpoints
func (re *RecommendationEngine) ClassifyCarbonLevel(emission float64) models.CarbonLevel {
	switch {
	case emission < 50:
		return models.CarbonLevelLow
	case emission < 120:
		return models.CarbonLevelModerate
	case emission < 200:
		return models.CarbonLevelHigh
	default:
		return models.CarbonLevelCritical
	}
}

// InferZoneType guesses the land-use type from the zone name. This is a
// naming heuristic, not an authoritative classification.
func (re *RecommendationEngine) InferZoneType(name string) models.ZoneType {
	lower := strings.ToLower(name)
	for _, entry := range zoneTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.zoneType
			}
		}
	}
	return models.ZoneTypeMixed
}

// ComputeUtilization expresses a carbon emission as equivalent
// mitigating actions
func (re *RecommendationEngine) ComputeUtilization(carbonEmission, energyConsumption float64) models.CarbonUtilization {
	return models.CarbonUtilization{
		TreesNeeded:             int(math.Ceil(carbonEmission / kgPerTreePerYear)),
		SolarKWRequired:         int(math.Ceil(carbonEmission / kgPerSolarKW)),
		EVShiftEquivalent:       int(math.Ceil(carbonEmission / kgPerEVShift)),
		ConcreteInjectionOffset: roundTo1Decimal(carbonEmission * concreteShare),
		SyntheticFuelPotential:  roundTo1Decimal(carbonEmission * syntheticFuelShare),
	}
}

// StrategiesFor returns the zone-type playbook with utilization figures
// interpolated into the descriptions. Mixed zones get a blend of the
// first two residential and the first commercial strategy.
func (re *RecommendationEngine) StrategiesFor(zoneType models.ZoneType, utilization models.CarbonUtilization, carbonEmission float64) []models.SustainabilityStrategy {
	switch zoneType {
	case models.ZoneTypeResidential:
		return re.residentialStrategies(utilization)
	case models.ZoneTypeCommercial:
		return re.commercialStrategies(utilization)
	case models.ZoneTypeIndustrial:
		return re.industrialStrategies(utilization)
	default:
		residential := re.residentialStrategies(utilization)
		commercial := re.commercialStrategies(utilization)
		blend := make([]models.SustainabilityStrategy, 0, 3)
		blend = append(blend, residential[0], residential[1], commercial[0])
		return blend
	}
}

func (re *RecommendationEngine) residentialStrategies(u models.CarbonUtilization) []models.SustainabilityStrategy {
	return []models.SustainabilityStrategy{
		{
			ID:              "res-solar",
			Name:            "Rooftop Solar Program",
			Description:     fmt.Sprintf("Install %d kW of rooftop solar capacity across residential buildings to offset grid consumption", u.SolarKWRequired),
			CarbonReduction: 25,
			Difficulty:      models.DifficultyMedium,
			Cost:            "₹1.2 Crore",
			Timeline:        "6-12 months",
		},
		{
			ID:              "res-trees",
			Name:            "Community Tree Planting",
			Description:     fmt.Sprintf("Plant %d native trees across parks, roadsides and housing societies", u.TreesNeeded),
			CarbonReduction: 15,
			Difficulty:      models.DifficultyEasy,
			Cost:            "₹8 Lakh",
			Timeline:        "3-6 months",
		},
		{
			ID:              "res-led",
			Name:            "LED Street Lighting",
			Description:     "Replace sodium-vapor street lights with smart LED fixtures on dusk-to-dawn schedules",
			CarbonReduction: 10,
			Difficulty:      models.DifficultyEasy,
			Cost:            "₹15 Lakh",
			Timeline:        "1-2 months",
		},
		{
			ID:              "res-audit",
			Name:            "Home Energy Audits",
			Description:     "Subsidized household audits targeting appliance efficiency and insulation gaps",
			CarbonReduction: 12,
			Difficulty:      models.DifficultyMedium,
			Cost:            "₹500 per household",
			Timeline:        "2-4 months",
		},
	}
}

func (re *RecommendationEngine) commercialStrategies(u models.CarbonUtilization) []models.SustainabilityStrategy {
	return []models.SustainabilityStrategy{
		{
			ID:              "com-retrofit",
			Name:            "Green Building Retrofit",
			Description:     "Retrofit commercial buildings with efficient glazing, insulation and building-management systems",
			CarbonReduction: 30,
			Difficulty:      models.DifficultyHard,
			Cost:            "₹4 Crore",
			Timeline:        "1-2 years",
		},
		{
			ID:              "com-ev",
			Name:            "Electric Delivery Fleet",
			Description:     fmt.Sprintf("Shift the equivalent of %d delivery vehicles to electric to cut tailpipe emissions", u.EVShiftEquivalent),
			CarbonReduction: 18,
			Difficulty:      models.DifficultyMedium,
			Cost:            "₹2.5 Crore",
			Timeline:        "6-12 months",
		},
		{
			ID:              "com-hvac",
			Name:            "Smart HVAC Scheduling",
			Description:     "Deploy occupancy-driven HVAC schedules across offices and retail floors",
			CarbonReduction: 14,
			Difficulty:      models.DifficultyEasy,
			Cost:            "₹25 Lakh",
			Timeline:        "1-2 months",
		},
		{
			ID:              "com-solar",
			Name:            "Commercial Solar Leasing",
			Description:     fmt.Sprintf("Lease rooftop space for %d kW of solar generation with net metering", u.SolarKWRequired),
			CarbonReduction: 22,
			Difficulty:      models.DifficultyMedium,
			Cost:            "₹1.8 Crore",
			Timeline:        "6-12 months",
		},
	}
}

func (re *RecommendationEngine) industrialStrategies(u models.CarbonUtilization) []models.SustainabilityStrategy {
	return []models.SustainabilityStrategy{
		{
			ID:              "ind-heat",
			Name:            "Waste Heat Recovery",
			Description:     "Capture process waste heat for preheating and on-site power generation",
			CarbonReduction: 28,
			Difficulty:      models.DifficultyHard,
			Cost:            "₹6 Crore",
			Timeline:        "1-2 years",
		},
		{
			ID:              "ind-concrete",
			Name:            "Carbon Mineralization",
			Description:     fmt.Sprintf("Divert %.1f tons of captured CO2 into concrete curing for permanent storage", u.ConcreteInjectionOffset),
			CarbonReduction: 20,
			Difficulty:      models.DifficultyHard,
			Cost:            "₹8 Crore",
			Timeline:        "2-3 years",
		},
		{
			ID:              "ind-electrify",
			Name:            "Process Electrification",
			Description:     "Replace fossil-fired boilers and furnaces with electric equivalents on renewable contracts",
			CarbonReduction: 24,
			Difficulty:      models.DifficultyHard,
			Cost:            "₹5 Crore",
			Timeline:        "1-2 years",
		},
		{
			ID:              "ind-synfuel",
			Name:            "Synthetic Fuel Recovery",
			Description:     fmt.Sprintf("Convert %.1f tons of captured carbon into synthetic fuel feedstock", u.SyntheticFuelPotential),
			CarbonReduction: 16,
			Difficulty:      models.DifficultyMedium,
			Cost:            "₹3 Crore",
			Timeline:        "6-12 months",
		},
	}
}

// ImprovementFor projects the score uplift from adopting the strategies.
// Each percentage point of reduction is worth 0.15 score points, capped
// at 40; the projected score never exceeds 100.
func (re *RecommendationEngine) ImprovementFor(currentScore float64, strategies []models.SustainabilityStrategy) (scoreIncrease, newScore float64) {
	totalReduction := 0.0
	for _, s := range strategies {
		totalReduction += s.CarbonReduction
	}

	scoreIncrease = math.Min(totalReduction*scorePerReductionPct, maxScoreIncrease)
	newScore = math.Min(currentScore+scoreIncrease, 100)
	return scoreIncrease, newScore
}

// Recommend composes the full recommendation for one zone: analysis,
// offset equivalents, the strategy playbook, projected uplift and a
// templated report
func (re *RecommendationEngine) Recommend(zoneID, zoneName string, carbonEmission, energyConsumption, currentScore float64) models.CarbonRecommendation {
	level := re.ClassifyCarbonLevel(carbonEmission)
	zoneType := re.InferZoneType(zoneName)
	utilization := re.ComputeUtilization(carbonEmission, energyConsumption)
	strategies := re.StrategiesFor(zoneType, utilization, carbonEmission)
	scoreIncrease, newScore := re.ImprovementFor(currentScore, strategies)

	analysis := models.CarbonAnalysis{
		ZoneID:            zoneID,
		ZoneName:          zoneName,
		CarbonEmission:    carbonEmission,
		EnergyConsumption: energyConsumption,
		Level:             level,
		ZoneType:          zoneType,
	}

	return models.CarbonRecommendation{
		Analysis:       analysis,
		Utilization:    utilization,
		Strategies:     strategies,
		ScoreIncrease:  scoreIncrease,
		ProjectedScore: newScore,
		Report:         re.buildReport(analysis, utilization, strategies, scoreIncrease),
		GeneratedAt:    time.Now(),
	}
}

// buildReport renders the natural-language summary handed to the dashboard
func (re *RecommendationEngine) buildReport(analysis models.CarbonAnalysis, utilization models.CarbonUtilization, strategies []models.SustainabilityStrategy, scoreIncrease float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s emits %.1f kg CO2 (%s level, %s zone). ",
		analysis.ZoneName, analysis.CarbonEmission, analysis.Level, analysis.ZoneType)
	fmt.Fprintf(&b, "Offsetting this requires %d trees, %d kW of solar capacity, or shifting %d vehicles to electric. ",
		utilization.TreesNeeded, utilization.SolarKWRequired, utilization.EVShiftEquivalent)

	b.WriteString("Recommended actions: ")
	top := strategies
	if len(top) > 3 {
		top = top[:3]
	}
	for i, s := range top {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s (%.0f%% reduction)", s.Name, s.CarbonReduction)
	}
	fmt.Fprintf(&b, ". Full adoption is projected to raise the sustainability score by %.1f points.", scoreIncrease)

	return b.String()
}
