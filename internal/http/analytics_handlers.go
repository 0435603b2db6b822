package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/Capstone-E2/ecosphere_backend/internal/analytics"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/store"
)

// AnalyticsHandlers contains HTTP handlers for scoring, forecasting,
// carbon recommendations and what-if simulation
type AnalyticsHandlers struct {
	store     store.DataStore
	analytics *analytics.Service
}

// NewAnalyticsHandlers creates a new analytics handlers instance
func NewAnalyticsHandlers(dataStore store.DataStore, analyticsService *analytics.Service) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		store:     dataStore,
		analytics: analyticsService,
	}
}

func (h *AnalyticsHandlers) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *AnalyticsHandlers) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// forecastParams reads the horizon and reference-hour query parameters.
// The reference hour defaults to wall clock time but can be pinned for
// reproducible output. An absent horizon is returned as 0 so the
// service applies its configured default.
func forecastParams(r *http.Request) (currentHour, hours int) {
	currentHour = time.Now().Hour()
	if hourStr := r.URL.Query().Get("hour"); hourStr != "" {
		if parsed, err := strconv.Atoi(hourStr); err == nil && parsed >= 0 && parsed <= 23 {
			currentHour = parsed
		}
	}

	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		if parsed, err := strconv.Atoi(hoursStr); err == nil && parsed > 0 && parsed <= 48 {
			hours = parsed
		}
	}

	return currentHour, hours
}

// GetScore returns the current sustainability score with its trend
func (h *AnalyticsHandlers) GetScore(w http.ResponseWriter, r *http.Request) {
	score, exists := h.store.GetCurrentScore()
	if !exists {
		h.sendErrorResponse(w, "No score computed yet", http.StatusNotFound)
		return
	}

	previous := h.store.GetPreviousScoreValue()
	trend := h.analytics.Scorer().Trend(score.Value, previous)

	h.sendJSONResponse(w, map[string]interface{}{
		"score":          score,
		"previous_value": previous,
		"trend":          trend.Direction,
		"change":         trend.Change,
	})
}

// GetEnergyForecast returns the hourly energy usage forecast
func (h *AnalyticsHandlers) GetEnergyForecast(w http.ResponseWriter, r *http.Request) {
	currentHour, hours := forecastParams(r)
	h.sendJSONResponse(w, h.analytics.EnergyForecast(currentHour, hours))
}

// GetAQIForecast returns the weather-adjusted AQI forecast
func (h *AnalyticsHandlers) GetAQIForecast(w http.ResponseWriter, r *http.Request) {
	_, hours := forecastParams(r)
	h.sendJSONResponse(w, h.analytics.AQIForecast(hours))
}

// GetCarbonForecast returns the emission forecast derived from energy usage
func (h *AnalyticsHandlers) GetCarbonForecast(w http.ResponseWriter, r *http.Request) {
	currentHour, hours := forecastParams(r)
	h.sendJSONResponse(w, h.analytics.CarbonForecast(currentHour, hours))
}

// GetZoneRecommendation builds the carbon offset playbook for one zone
func (h *AnalyticsHandlers) GetZoneRecommendation(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "zoneID")

	zone, err := h.store.GetZone(zoneID)
	if err != nil {
		h.sendErrorResponse(w, "Zone not found", http.StatusNotFound)
		return
	}

	h.sendJSONResponse(w, h.analytics.RecommendationForZone(*zone))
}

// SimulateZone runs a what-if scenario for a zone with a selected
// subset of its recommended strategies
func (h *AnalyticsHandlers) SimulateZone(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "zoneID")

	zone, err := h.store.GetZone(zoneID)
	if err != nil {
		h.sendErrorResponse(w, "Zone not found", http.StatusNotFound)
		return
	}

	var request struct {
		StrategyIDs []string `json:"strategy_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	scenario, selected := h.analytics.SimulateForZone(*zone, request.StrategyIDs)
	simulator := h.analytics.Simulator()

	h.sendJSONResponse(w, map[string]interface{}{
		"scenario":   scenario,
		"strategies": selected,
		"comparison": simulator.ComparisonChartData(scenario),
		"phases":     simulator.ImplementationPhases(selected),
		"roi":        simulator.ROI(selected, zone.CarbonEmission),
	})
}

// GetInsights returns the latest generated insight batch
func (h *AnalyticsHandlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights := h.store.GetLatestInsights()
	if insights == nil {
		insights = []models.AIInsight{}
	}
	h.sendJSONResponse(w, insights)
}

// GetAnomalies returns recently detected anomalies, newest first
func (h *AnalyticsHandlers) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	anomalies := h.store.GetRecentAnomalies(limit)
	if anomalies == nil {
		anomalies = []models.Anomaly{}
	}
	h.sendJSONResponse(w, anomalies)
}

// GetSummary returns the one-line headline for the current snapshot
func (h *AnalyticsHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.sendJSONResponse(w, map[string]string{
		"summary": h.analytics.Summarize(),
	})
}

// RefreshNow forces an immediate analytics pipeline pass
func (h *AnalyticsHandlers) RefreshNow(w http.ResponseWriter, r *http.Request) {
	h.analytics.Refresh()

	response := APIResponse{
		Success: true,
		Message: "Analytics refresh completed",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
