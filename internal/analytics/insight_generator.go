package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

const (
	maxInsights        = 5
	maxAnomalyInsights = 2
	summaryMaxLen      = 80

	// Explicit priorities, highest surfaces first. Ties keep rule order.
	priorityWarning = 3
	priorityInfo    = 2
	prioritySuccess = 1
)

// allOptimalSummary is returned when no rule fires
const allOptimalSummary = "✅ All environmental metrics are within optimal ranges. City systems operating normally."

// InsightGenerator scans a dashboard snapshot with a fixed rule set and
// emits prioritized human-readable insights
type InsightGenerator struct{}

// NewInsightGenerator creates a new insight generator
func NewInsightGenerator() *InsightGenerator {
	return &InsightGenerator{}
}

// Generate evaluates every rule against the snapshot, stable-sorts the
// results by priority and returns at most 5 insights. Rules fire in a
// fixed order so equal-priority insights keep a deterministic ranking.
func (ig *InsightGenerator) Generate(state models.DashboardState) []models.AIInsight {
	now := time.Now()
	seq := 0
	insights := []models.AIInsight{}

	add := func(title, message string, category models.InsightCategory, severity models.InsightSeverity, actionable bool, suggestion string) {
		priority := prioritySuccess
		switch severity {
		case models.InsightSeverityWarning:
			priority = priorityWarning
		case models.InsightSeverityInfo:
			priority = priorityInfo
		}
		insights = append(insights, models.AIInsight{
			ID:         fmt.Sprintf("insight-%d-%d", now.UnixMilli(), seq),
			Title:      title,
			Message:    message,
			Category:   category,
			Severity:   severity,
			Priority:   priority,
			Timestamp:  now,
			Actionable: actionable,
			Suggestion: suggestion,
		})
		seq++
	}

	aqi := state.AirQuality.AQI
	if aqi > 150 {
		add("Hazardous Air Quality",
			fmt.Sprintf("AQI has reached %.0f, a level unhealthy for everyone. Outdoor activity should be limited.", aqi),
			models.InsightCategoryAir, models.InsightSeverityWarning, true,
			"Issue a public air quality advisory and restrict heavy vehicle traffic")
	} else if aqi > 100 {
		add("Elevated Air Pollution",
			fmt.Sprintf("AQI is %.0f, unhealthy for sensitive groups.", aqi),
			models.InsightCategoryAir, models.InsightSeverityWarning, true,
			"Advise sensitive groups to reduce prolonged outdoor exertion")
	} else if aqi < 50 {
		add("Clean Air Conditions",
			fmt.Sprintf("AQI is %.0f. Air quality is good across the monitored area.", aqi),
			models.InsightCategoryAir, models.InsightSeveritySuccess, false, "")
	}

	if state.AirQuality.PM25 > 35 {
		add("Fine Particulate Alert",
			fmt.Sprintf("PM2.5 concentration is %.1f µg/m³, above the 24-hour guideline.", state.AirQuality.PM25),
			models.InsightCategoryAir, models.InsightSeverityWarning, true,
			"Check construction and open-burning activity upwind of the sensors")
	}

	totalUsage := state.TotalUsage()
	if state.RollingAvgUsage > 0 {
		if totalUsage > state.RollingAvgUsage*1.3 {
			add("Energy Consumption Spike",
				fmt.Sprintf("Current usage %.0f kWh is %.0f%% of the rolling average.", totalUsage, totalUsage/state.RollingAvgUsage*100),
				models.InsightCategoryEnergy, models.InsightSeverityWarning, true,
				"Stagger non-essential loads and verify HVAC setpoints in the largest buildings")
		} else if totalUsage < state.RollingAvgUsage*0.7 {
			add("Energy Usage Below Average",
				fmt.Sprintf("Current usage %.0f kWh is well below the rolling average of %.0f kWh.", totalUsage, state.RollingAvgUsage),
				models.InsightCategoryEnergy, models.InsightSeveritySuccess, false, "")
		}
	}

	carbonTotal := totalUsage * 0.4
	if carbonTotal > 100 {
		dominant := dominantBuilding(state.Readings)
		message := fmt.Sprintf("Estimated emissions are %.1f kg CO2 this interval.", carbonTotal)
		if dominant != "" {
			message = fmt.Sprintf("Estimated emissions are %.1f kg CO2 this interval, driven mainly by %s.", carbonTotal, dominant)
		}
		add("High Carbon Output", message,
			models.InsightCategoryCarbon, models.InsightSeverityWarning, true,
			"Prioritize the dominant contributor for an efficiency review")
	}

	if state.Weather.Temperature > 30 {
		add("Heat Stress Conditions",
			fmt.Sprintf("Temperature is %.1f°C. Cooling demand and ozone formation will rise.", state.Weather.Temperature),
			models.InsightCategoryWeather, models.InsightSeverityWarning, false, "")
	}
	if state.Weather.WindSpeed > 30 {
		add("Strong Winds",
			fmt.Sprintf("Wind speed is %.1f km/h, helping disperse pollutants.", state.Weather.WindSpeed),
			models.InsightCategoryWeather, models.InsightSeverityInfo, false, "")
	}

	if state.Weather.Temperature > 28 && state.RollingAvgUsage > 400 {
		add("Cooling Load Correlation",
			fmt.Sprintf("High temperature (%.1f°C) coincides with elevated average usage (%.0f kWh); air conditioning is likely driving consumption.",
				state.Weather.Temperature, state.RollingAvgUsage),
			models.InsightCategoryEnergy, models.InsightSeverityInfo, false, "")
	}

	if state.Score.Value > 0 {
		if state.Score.Value < 30 {
			add("Critical Sustainability Score",
				fmt.Sprintf("The sustainability score has fallen to %d. Multiple metrics need intervention.", state.Score.Value),
				models.InsightCategorySustainability, models.InsightSeverityWarning, true,
				"Review the carbon recommendations for the worst-performing zones")
		} else if state.Score.Value > 70 {
			add("Strong Sustainability Performance",
				fmt.Sprintf("The sustainability score is %d. Keep current measures in place.", state.Score.Value),
				models.InsightCategorySustainability, models.InsightSeveritySuccess, false, "")
		}
	}

	anomalyCount := 0
	for _, anomaly := range state.Anomalies {
		if anomalyCount >= maxAnomalyInsights {
			break
		}
		severity := models.InsightSeverityInfo
		if anomaly.Severity == "high" {
			severity = models.InsightSeverityWarning
		}
		add("Anomalous Reading Detected", anomaly.Description,
			models.InsightCategoryGeneral, severity, false, "")
		anomalyCount++
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// Summarize condenses the snapshot into a single status line: the top
// insight with an emoji prefix, truncated to 80 characters
func (ig *InsightGenerator) Summarize(state models.DashboardState) string {
	insights := ig.Generate(state)
	if len(insights) == 0 {
		return allOptimalSummary
	}

	top := insights[0]
	message := top.Message
	if len([]rune(message)) > summaryMaxLen {
		message = string([]rune(message)[:summaryMaxLen]) + "..."
	}
	return fmt.Sprintf("%s %s", top.Severity.SeverityEmoji(), message)
}

// dominantBuilding returns the building with the highest energy usage
func dominantBuilding(readings []models.EnergyReading) string {
	best := ""
	bestUsage := 0.0
	for _, r := range readings {
		if r.EnergyUsage > bestUsage {
			bestUsage = r.EnergyUsage
			best = r.BuildingID
		}
	}
	return best
}
