package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/analytics"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/store"
	"github.com/Capstone-E2/ecosphere_backend/internal/ws"
)

func newTestRouter() (*store.Store, http.Handler) {
	dataStore := store.NewStore(100)
	analyticsService := analytics.NewService(dataStore, nil, time.Minute)
	router := SetupRoutes(dataStore, ws.NewHub(), analyticsService, nil)
	return dataStore, router
}

// TestZoneUpsert tests creating a zone through the API
func TestZoneUpsert_Basic(t *testing.T) {
	_, router := newTestRouter()

	body := []byte(`{"id":"zone-1","name":"Riverside Colony","carbon_emission":120,"energy_consumption":340,"aqi":90}`)
	req := httptest.NewRequest("POST", "/api/v1/zones/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.Success {
		t.Errorf("Expected success to be true, got error: %s", response.Error)
	}
}

// TestZoneUpsert_PublishesUpdate tests that a successful upsert notifies
// the downstream publisher and a rejected one does not
func TestZoneUpsert_PublishesUpdate(t *testing.T) {
	dataStore := store.NewStore(100)
	analyticsService := analytics.NewService(dataStore, nil, time.Minute)

	var published []string
	router := SetupRoutes(dataStore, ws.NewHub(), analyticsService, func(zone *models.Zone) error {
		published = append(published, zone.ID)
		return nil
	})

	body := []byte(`{"id":"zone-pub","name":"Harbor District","carbon_emission":140}`)
	req := httptest.NewRequest("POST", "/api/v1/zones/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if len(published) != 1 || published[0] != "zone-pub" {
		t.Errorf("Expected one published update for zone-pub, got %v", published)
	}

	invalid := []byte(`{"name":"No ID","carbon_emission":50}`)
	req = httptest.NewRequest("POST", "/api/v1/zones/", bytes.NewReader(invalid))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if len(published) != 1 {
		t.Errorf("Expected no publish for a rejected zone, got %v", published)
	}
}

// TestZoneUpsert_AlternateFieldNames tests that upstream documents using
// the short field names resolve to the canonical zone record
func TestZoneUpsert_AlternateFieldNames(t *testing.T) {
	dataStore, router := newTestRouter()

	body := []byte(`{"id":"zone-2","name":"Industrial Park","carbon":250,"energy":800,"air_quality":140}`)
	req := httptest.NewRequest("POST", "/api/v1/zones/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	zone, err := dataStore.GetZone("zone-2")
	if err != nil {
		t.Fatalf("Expected zone to be stored: %v", err)
	}
	if zone.CarbonEmission != 250 {
		t.Errorf("Expected carbon_emission 250, got %v", zone.CarbonEmission)
	}
	if zone.AQI != 140 {
		t.Errorf("Expected aqi 140, got %v", zone.AQI)
	}
}

// TestZoneUpsert_Invalid tests rejection of unusable zone documents
func TestZoneUpsert_Invalid(t *testing.T) {
	_, router := newTestRouter()

	body := []byte(`{"name":"No ID Zone","carbon_emission":100}`)
	req := httptest.NewRequest("POST", "/api/v1/zones/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestGetZone_NotFound tests the missing-zone error path
func TestGetZone_NotFound(t *testing.T) {
	_, router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/zones/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

// TestDeleteZone tests zone removal
func TestDeleteZone_Basic(t *testing.T) {
	dataStore, router := newTestRouter()

	dataStore.UpsertZone(models.Zone{
		ID:             "zone-3",
		Name:           "Market District",
		CarbonEmission: 80,
		UpdatedAt:      time.Now(),
	})

	req := httptest.NewRequest("DELETE", "/api/v1/zones/zone-3", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	if _, err := dataStore.GetZone("zone-3"); err == nil {
		t.Error("Expected zone to be deleted")
	}
}

// TestAddEnergyData tests manual telemetry ingestion
func TestAddEnergyData_Basic(t *testing.T) {
	dataStore, router := newTestRouter()

	body := []byte(`{"building_id":"city-hall","energy_usage":120.5,"solar_production":18.2,"traffic_index":45}`)
	req := httptest.NewRequest("POST", "/api/v1/energy/data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	reading, exists := dataStore.GetLatestReadingByBuilding("city-hall")
	if !exists {
		t.Fatal("Expected reading to be stored")
	}
	if reading.EnergyUsage != 120.5 {
		t.Errorf("Expected energy usage 120.5, got %v", reading.EnergyUsage)
	}
}

// TestAddEnergyData_Invalid tests rejection of invalid readings
func TestAddEnergyData_Invalid(t *testing.T) {
	_, router := newTestRouter()

	body := []byte(`{"building_id":"city-hall","energy_usage":-10,"solar_production":0,"traffic_index":45}`)
	req := httptest.NewRequest("POST", "/api/v1/energy/data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestForecastEndpoint tests that the energy forecast honors the horizon parameter
func TestForecastEndpoint_Horizon(t *testing.T) {
	dataStore, router := newTestRouter()

	for _, usage := range []float64{400, 410, 420, 430, 440, 450} {
		dataStore.AddEnergyHistoryPoint(usage)
	}

	req := httptest.NewRequest("GET", "/api/v1/analytics/forecast/energy?hours=6&hour=10", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response struct {
		Success bool                     `json:"success"`
		Data    []models.PredictionPoint `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Data) != 6 {
		t.Errorf("Expected 6 forecast points, got %d", len(response.Data))
	}
}

// TestScoreEndpoint_NoData tests the error path before any score exists
func TestScoreEndpoint_NoData(t *testing.T) {
	_, router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/analytics/score", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

// TestScoreEndpoint_TrendDeadZone tests that a small score change reports
// a flat trend
func TestScoreEndpoint_TrendDeadZone(t *testing.T) {
	dataStore, router := newTestRouter()

	dataStore.SetCurrentScore(models.SustainabilityScore{Value: 65, Timestamp: time.Now()})
	dataStore.SetCurrentScore(models.SustainabilityScore{Value: 66, Timestamp: time.Now()})

	req := httptest.NewRequest("GET", "/api/v1/analytics/score", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			PreviousValue int     `json:"previous_value"`
			Trend         int     `json:"trend"`
			Change        float64 `json:"change"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data.PreviousValue != 65 {
		t.Errorf("Expected previous value 65, got %d", response.Data.PreviousValue)
	}
	if response.Data.Trend != 0 {
		t.Errorf("Expected flat trend for a 1-point change, got %d", response.Data.Trend)
	}
	if response.Data.Change != 1 {
		t.Errorf("Expected change 1, got %v", response.Data.Change)
	}
}

// TestScoreEndpoint_FirstScoreHasNoTrend tests that the very first score
// is served without a fabricated direction
func TestScoreEndpoint_FirstScoreHasNoTrend(t *testing.T) {
	dataStore, router := newTestRouter()

	dataStore.SetCurrentScore(models.SustainabilityScore{Value: 71, Timestamp: time.Now()})

	req := httptest.NewRequest("GET", "/api/v1/analytics/score", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response struct {
		Data struct {
			Trend  int     `json:"trend"`
			Change float64 `json:"change"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data.Trend != 0 {
		t.Errorf("Expected no trend before a prior score exists, got %d", response.Data.Trend)
	}
	if response.Data.Change != 0 {
		t.Errorf("Expected change 0, got %v", response.Data.Change)
	}
}

// TestScoreEndpoint_TrendDirection tests that a large drop reports a
// downward trend
func TestScoreEndpoint_TrendDirection(t *testing.T) {
	dataStore, router := newTestRouter()

	dataStore.SetCurrentScore(models.SustainabilityScore{Value: 70, Timestamp: time.Now()})
	dataStore.SetCurrentScore(models.SustainabilityScore{Value: 62, Timestamp: time.Now()})

	req := httptest.NewRequest("GET", "/api/v1/analytics/score", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var response struct {
		Data struct {
			Trend  int     `json:"trend"`
			Change float64 `json:"change"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data.Trend != -1 {
		t.Errorf("Expected downward trend, got %d", response.Data.Trend)
	}
	if response.Data.Change != 8 {
		t.Errorf("Expected change 8, got %v", response.Data.Change)
	}
}

// TestAPIResponse tests API response structure
func TestAPIResponse_Structure(t *testing.T) {
	response := APIResponse{
		Success: true,
		Message: "Test message",
		Data:    map[string]string{"test": "data"},
	}

	if !response.Success {
		t.Error("Expected success to be true")
	}

	if response.Message != "Test message" {
		t.Errorf("Expected message 'Test message', got '%s'", response.Message)
	}

	if response.Data == nil {
		t.Error("Expected data to be set")
	}
}
