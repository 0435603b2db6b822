package http

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/Capstone-E2/ecosphere_backend/internal/analytics"
	"github.com/Capstone-E2/ecosphere_backend/internal/export"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/store"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	store         store.DataStore
	analytics     *analytics.Service
	exportService *export.ExportService
	zonePublisher func(*models.Zone) error
}

// NewHandlers creates a new handlers instance. zonePublisher is called
// after a successful zone upsert to notify downstream consumers; nil
// disables the notification.
func NewHandlers(dataStore store.DataStore, analyticsService *analytics.Service, zonePublisher func(*models.Zone) error) *Handlers {
	return &Handlers{
		store:         dataStore,
		analytics:     analyticsService,
		exportService: export.NewExportService(),
		zonePublisher: zonePublisher,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// sendJSONResponse sends a successful API response
func (h *Handlers) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// sendErrorResponse sends a standardized error response
func (h *Handlers) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// GetHealth reports readiness of the backing store
func (h *Handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		h.sendErrorResponse(w, "Storage unavailable", http.StatusServiceUnavailable)
		return
	}

	h.sendJSONResponse(w, map[string]string{"status": "ok"})
}

// GetSystemStats returns system statistics
func (h *Handlers) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"total_readings":   h.store.GetReadingCount(),
		"active_buildings": len(h.store.GetActiveBuildings()),
		"server_time":      time.Now(),
	}

	if h.analytics != nil {
		stats["analytics"] = h.analytics.Status()
	}

	h.sendJSONResponse(w, stats)
}

// GetDashboardState returns the full dashboard snapshot
func (h *Handlers) GetDashboardState(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		h.sendErrorResponse(w, "Analytics service not available", http.StatusServiceUnavailable)
		return
	}

	h.sendJSONResponse(w, h.analytics.BuildDashboardState())
}

// GetLatestReadings returns the latest energy readings (optionally for one building)
func (h *Handlers) GetLatestReadings(w http.ResponseWriter, r *http.Request) {
	buildingID := r.URL.Query().Get("building_id")

	// If building_id is specified, return reading for that building
	if buildingID != "" {
		reading, exists := h.store.GetLatestReadingByBuilding(buildingID)
		if !exists {
			h.sendErrorResponse(w, "No energy data available for specified building", http.StatusNotFound)
			return
		}

		h.sendJSONResponse(w, reading)
		return
	}

	// Return latest reading for each building
	h.sendJSONResponse(w, h.store.GetAllLatestReadingsByBuilding())
}

// GetRecentReadings returns recent energy readings (optionally for one building)
func (h *Handlers) GetRecentReadings(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	buildingID := r.URL.Query().Get("building_id")

	limit := 50 // Default limit
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var readings []models.EnergyReading
	if buildingID != "" {
		readings = h.store.GetRecentReadingsByBuilding(buildingID, limit)
	} else {
		readings = h.store.GetRecentReadings(limit)
	}

	h.sendJSONResponse(w, readings)
}

// GetReadingsInRange returns energy readings within a time range
func (h *Handlers) GetReadingsInRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		h.sendErrorResponse(w, "Both start and end time parameters are required", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.sendErrorResponse(w, "Invalid start time format. Use RFC3339 format", http.StatusBadRequest)
		return
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		h.sendErrorResponse(w, "Invalid end time format. Use RFC3339 format", http.StatusBadRequest)
		return
	}

	if end.Before(start) {
		h.sendErrorResponse(w, "End time must be after start time", http.StatusBadRequest)
		return
	}

	h.sendJSONResponse(w, h.store.GetReadingsInRange(start, end))
}

// AddEnergyData handles POST requests to manually add energy data (for testing)
func (h *Handlers) AddEnergyData(w http.ResponseWriter, r *http.Request) {
	var request struct {
		BuildingID      string  `json:"building_id"`
		EnergyUsage     float64 `json:"energy_usage"`
		SolarProduction float64 `json:"solar_production"`
		TrafficIndex    float64 `json:"traffic_index"`
	}

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if request.BuildingID == "" {
		h.sendErrorResponse(w, "building_id is required", http.StatusBadRequest)
		return
	}

	// Create energy reading
	reading := models.EnergyReading{
		Timestamp:       time.Now(),
		BuildingID:      request.BuildingID,
		EnergyUsage:     request.EnergyUsage,
		SolarProduction: request.SolarProduction,
		TrafficIndex:    request.TrafficIndex,
	}

	// Validate the reading
	if !reading.ValidateReading() {
		h.sendErrorResponse(w, "Invalid energy reading values", http.StatusBadRequest)
		return
	}

	// Store the reading
	h.store.AddEnergyReading(reading)

	// Return success response
	response := APIResponse{
		Success: true,
		Message: "Energy data added successfully",
		Data:    reading,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetAllZones returns all monitored zones
func (h *Handlers) GetAllZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.store.GetAllZones()
	if err != nil {
		log.Printf("❌ Error getting zones: %v", err)
		h.sendErrorResponse(w, "Failed to load zones", http.StatusInternalServerError)
		return
	}

	h.sendJSONResponse(w, zones)
}

// GetZone returns one zone by ID
func (h *Handlers) GetZone(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "zoneID")

	zone, err := h.store.GetZone(zoneID)
	if err != nil {
		h.sendErrorResponse(w, "Zone not found", http.StatusNotFound)
		return
	}

	h.sendJSONResponse(w, zone)
}

// UpsertZone creates or updates a zone from an upstream document.
// Alternate field names (carbon vs carbon_emission and friends) are
// resolved before storage.
func (h *Handlers) UpsertZone(w http.ResponseWriter, r *http.Request) {
	var document models.ZoneDocument
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	zone := document.Canonical()
	if !zone.Validate() {
		h.sendErrorResponse(w, "Zone must have an id, a name and non-negative metrics", http.StatusBadRequest)
		return
	}

	if err := h.store.UpsertZone(zone); err != nil {
		log.Printf("❌ Error upserting zone: %v", err)
		h.sendErrorResponse(w, "Failed to store zone", http.StatusInternalServerError)
		return
	}

	if h.zonePublisher != nil {
		if err := h.zonePublisher(&zone); err != nil {
			log.Printf("⚠️  Failed to publish zone update: %v", err)
		}
	}

	response := APIResponse{
		Success: true,
		Message: "Zone stored successfully",
		Data:    zone,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// DeleteZone removes a zone
func (h *Handlers) DeleteZone(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "zoneID")

	if err := h.store.DeleteZone(zoneID); err != nil {
		h.sendErrorResponse(w, "Zone not found", http.StatusNotFound)
		return
	}

	response := APIResponse{
		Success: true,
		Message: fmt.Sprintf("Zone %s deleted", zoneID),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// exportData assembles the data set shared by the export endpoints
func (h *Handlers) exportData(r *http.Request) export.ExportData {
	limit := 1000
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	readings := h.store.GetRecentReadings(limit)
	zones, err := h.store.GetAllZones()
	if err != nil {
		log.Printf("⚠️  Warning: zones unavailable for export: %v", err)
	}

	score, _ := h.store.GetCurrentScore()

	dateRange := "No data"
	if len(readings) > 0 {
		oldest := readings[len(readings)-1].Timestamp
		newest := readings[0].Timestamp
		dateRange = fmt.Sprintf("%s - %s", oldest.Format("2006-01-02"), newest.Format("2006-01-02"))
	}

	return export.ExportData{
		EnergyReadings: readings,
		Zones:          zones,
		Anomalies:      h.store.GetRecentAnomalies(100),
		Score:          score,
		ExportMetadata: export.ExportMetadata{
			GeneratedAt:   time.Now(),
			DateRange:     dateRange,
			TotalReadings: h.store.GetReadingCount(),
			Buildings:     h.store.GetActiveBuildings(),
		},
	}
}

// ExportHistoryExcel streams the sustainability report as an Excel file
func (h *Handlers) ExportHistoryExcel(w http.ResponseWriter, r *http.Request) {
	data := h.exportData(r)

	f, err := h.exportService.GenerateExcel(data)
	if err != nil {
		log.Printf("❌ Error generating Excel export: %v", err)
		h.sendErrorResponse(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("ecosphere_report_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(w); err != nil {
		log.Printf("❌ Error writing Excel file: %v", err)
	}
}

// ExportHistoryCSV streams the energy reading history as CSV
func (h *Handlers) ExportHistoryCSV(w http.ResponseWriter, r *http.Request) {
	data := h.exportData(r)

	records, err := h.exportService.GenerateCSV(data.EnergyReadings)
	if err != nil {
		log.Printf("❌ Error generating CSV export: %v", err)
		h.sendErrorResponse(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("ecosphere_history_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	if err := h.exportService.WriteCSV(writer, records); err != nil {
		log.Printf("❌ Error writing CSV file: %v", err)
	}
}
