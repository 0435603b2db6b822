package models

import (
	"testing"
	"time"
)

func TestEnergyReading_ValidateReading(t *testing.T) {
	valid := EnergyReading{
		Timestamp:       time.Now(),
		BuildingID:      "building-a",
		EnergyUsage:     120,
		SolarProduction: 30,
		TrafficIndex:    55,
	}
	if !valid.ValidateReading() {
		t.Error("Expected valid reading to pass validation")
	}

	cases := []EnergyReading{
		{BuildingID: "b", EnergyUsage: -1},
		{BuildingID: "b", SolarProduction: -1},
		{BuildingID: "b", TrafficIndex: -1},
		{BuildingID: "b", TrafficIndex: 101},
		{EnergyUsage: 10}, // Missing building id
	}
	for i, reading := range cases {
		if reading.ValidateReading() {
			t.Errorf("Expected case %d to fail validation: %+v", i, reading)
		}
	}
}

func TestEnergyReading_NetUsage(t *testing.T) {
	reading := EnergyReading{EnergyUsage: 100, SolarProduction: 30}
	if reading.NetUsage() != 70 {
		t.Errorf("Expected net usage 70, got %v", reading.NetUsage())
	}

	// Surplus solar floors at zero rather than going negative
	surplus := EnergyReading{EnergyUsage: 20, SolarProduction: 50}
	if surplus.NetUsage() != 0 {
		t.Errorf("Expected net usage 0 with surplus solar, got %v", surplus.NetUsage())
	}
}

func TestAirQualitySnapshot_GetAQIStatus(t *testing.T) {
	cases := []struct {
		aqi    float64
		status string
	}{
		{30, "good"},
		{50, "good"},
		{75, "moderate"},
		{120, "unhealthy_sensitive"},
		{180, "unhealthy"},
		{250, "very_unhealthy"},
		{400, "hazardous"},
	}

	for _, c := range cases {
		snapshot := AirQualitySnapshot{AQI: c.aqi}
		if got := snapshot.GetAQIStatus(); got != c.status {
			t.Errorf("Expected status %s for AQI %v, got %s", c.status, c.aqi, got)
		}
	}
}

func TestWeatherSnapshot_GetHeatStatus(t *testing.T) {
	cases := []struct {
		temp   float64
		status string
	}{
		{40, "extreme"},
		{32, "high"},
		{20, "normal"},
		{2, "cold"},
	}

	for _, c := range cases {
		snapshot := WeatherSnapshot{Temperature: c.temp}
		if got := snapshot.GetHeatStatus(); got != c.status {
			t.Errorf("Expected status %s for %v degrees, got %s", c.status, c.temp, got)
		}
	}
}

func TestDashboardState_Totals(t *testing.T) {
	state := DashboardState{
		Readings: []EnergyReading{
			{BuildingID: "a", EnergyUsage: 100, SolarProduction: 20},
			{BuildingID: "b", EnergyUsage: 250, SolarProduction: 40},
		},
	}

	if state.TotalUsage() != 350 {
		t.Errorf("Expected total usage 350, got %v", state.TotalUsage())
	}
	if state.TotalSolar() != 60 {
		t.Errorf("Expected total solar 60, got %v", state.TotalSolar())
	}
}

func TestNormalizeAQI(t *testing.T) {
	// Band edges of the 0-1 normalized scale
	if got := NormalizeAQI(0); got != 0 {
		t.Errorf("Expected 0 for AQI 0, got %v", got)
	}
	if got := NormalizeAQI(50); got != 0.3 {
		t.Errorf("Expected 0.3 at the good threshold, got %v", got)
	}
	if got := NormalizeAQI(150); got != 0.7 {
		t.Errorf("Expected 0.7 at the warning threshold, got %v", got)
	}
	if got := NormalizeAQI(500); got != 1.0 {
		t.Errorf("Expected 1.0 at the scale maximum, got %v", got)
	}
	// Values past the scale stay clamped
	if got := NormalizeAQI(900); got != 1.0 {
		t.Errorf("Expected 1.0 beyond the scale, got %v", got)
	}
}

func TestGetNormalizedAQIStatus(t *testing.T) {
	if got := GetNormalizedAQIStatus(0.2); got != "normal" {
		t.Errorf("Expected normal, got %s", got)
	}
	if got := GetNormalizedAQIStatus(0.5); got != "warning" {
		t.Errorf("Expected warning, got %s", got)
	}
	if got := GetNormalizedAQIStatus(0.9); got != "danger" {
		t.Errorf("Expected danger, got %s", got)
	}
}
