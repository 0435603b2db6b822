package models

import (
	"time"
)

// InsightCategory groups insights by the metric family they concern
type InsightCategory string

const (
	InsightCategoryEnergy         InsightCategory = "energy"
	InsightCategoryAir            InsightCategory = "air"
	InsightCategoryCarbon         InsightCategory = "carbon"
	InsightCategoryWeather        InsightCategory = "weather"
	InsightCategorySustainability InsightCategory = "sustainability"
	InsightCategoryGeneral        InsightCategory = "general"
)

// InsightSeverity expresses the tone of an insight
type InsightSeverity string

const (
	InsightSeverityInfo    InsightSeverity = "info"
	InsightSeverityWarning InsightSeverity = "warning"
	InsightSeveritySuccess InsightSeverity = "success"
)

// AIInsight is one generated observation over the dashboard state.
// Priority orders insights before the output cap; higher is more urgent.
type AIInsight struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Message    string          `json:"message"`
	Category   InsightCategory `json:"category"`
	Severity   InsightSeverity `json:"severity"`
	Priority   int             `json:"priority"`
	Timestamp  time.Time       `json:"timestamp"`
	Actionable bool            `json:"actionable"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// Anomaly is one out-of-distribution reading flagged by the detector
type Anomaly struct {
	ID            string    `json:"id"`
	Metric        string    `json:"metric"`
	CurrentValue  float64   `json:"current_value"`
	ExpectedValue float64   `json:"expected_value"`
	Deviation     float64   `json:"deviation"`
	Severity      string    `json:"severity"` // "low", "medium", "high"
	Timestamp     time.Time `json:"timestamp"`
	Description   string    `json:"description"`
}

// GetSeverityLevel returns a numeric rank for the anomaly severity
func (a *Anomaly) GetSeverityLevel() int {
	switch a.Severity {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	default:
		return 0
	}
}

// IsStale returns true if the anomaly is older than the given duration
func (a *Anomaly) IsStale(duration time.Duration) bool {
	return time.Since(a.Timestamp) > duration
}

// SeverityEmoji returns the emoji prefix used when an insight is summarized
func (s InsightSeverity) SeverityEmoji() string {
	switch s {
	case InsightSeverityWarning:
		return "⚠️"
	case InsightSeveritySuccess:
		return "✅"
	default:
		return "💡"
	}
}
