package services

import (
	"strings"
	"testing"
)

func TestParseEnergyJSON_Valid(t *testing.T) {
	parser := NewTelemetryParser()

	payload := []byte(`{"energy_usage":420.5,"solar_production":85.2,"traffic_index":62}`)
	reading, err := parser.ParseEnergyJSON(payload, "building-a")
	if err != nil {
		t.Fatalf("Expected parse to succeed, got error: %v", err)
	}

	if reading.BuildingID != "building-a" {
		t.Errorf("Expected building-a, got %s", reading.BuildingID)
	}
	if reading.EnergyUsage != 420.5 {
		t.Errorf("Expected usage 420.5, got %v", reading.EnergyUsage)
	}
	if reading.SolarProduction != 85.2 {
		t.Errorf("Expected solar 85.2, got %v", reading.SolarProduction)
	}
	if reading.TrafficIndex != 62 {
		t.Errorf("Expected traffic 62, got %v", reading.TrafficIndex)
	}
	if reading.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestParseEnergyJSON_MalformedJSON(t *testing.T) {
	parser := NewTelemetryParser()

	_, err := parser.ParseEnergyJSON([]byte(`{"energy_usage":`), "building-a")
	if err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestParseEnergyJSON_InvalidValues(t *testing.T) {
	parser := NewTelemetryParser()

	cases := []string{
		`{"energy_usage":-5,"solar_production":0,"traffic_index":50}`,
		`{"energy_usage":100,"solar_production":-1,"traffic_index":50}`,
		`{"energy_usage":100,"solar_production":0,"traffic_index":150}`,
	}

	for i, payload := range cases {
		if _, err := parser.ParseEnergyJSON([]byte(payload), "building-a"); err == nil {
			t.Errorf("Expected validation error for case %d", i)
		}
	}
}

func TestParseEnergyString_Valid(t *testing.T) {
	parser := NewTelemetryParser()

	reading, err := parser.ParseEnergyString("300.5,45.0,70", "building-b")
	if err != nil {
		t.Fatalf("Expected parse to succeed, got error: %v", err)
	}
	if reading.EnergyUsage != 300.5 {
		t.Errorf("Expected usage 300.5, got %v", reading.EnergyUsage)
	}
	if reading.SolarProduction != 45.0 {
		t.Errorf("Expected solar 45.0, got %v", reading.SolarProduction)
	}
	if reading.TrafficIndex != 70 {
		t.Errorf("Expected traffic 70, got %v", reading.TrafficIndex)
	}
}

func TestParseEnergyString_Malformed(t *testing.T) {
	parser := NewTelemetryParser()

	if _, err := parser.ParseEnergyString("300.5,45.0", "building-b"); err == nil {
		t.Error("Expected error for missing field")
	}
	if _, err := parser.ParseEnergyString("not,a,number", "building-b"); err == nil {
		t.Error("Expected error for non-numeric fields")
	}
}

func TestParseZoneDocument(t *testing.T) {
	parser := NewTelemetryParser()

	payload := []byte(`{"id":"zone-1","name":"Market Square","carbon":140,"energy":600,"air_quality":110}`)
	zone, err := parser.ParseZoneDocument(payload)
	if err != nil {
		t.Fatalf("Expected parse to succeed, got error: %v", err)
	}

	if zone.ID != "zone-1" {
		t.Errorf("Expected zone-1, got %s", zone.ID)
	}
	if zone.CarbonEmission != 140 {
		t.Errorf("Expected carbon 140 from alternate field, got %v", zone.CarbonEmission)
	}
	if zone.AQI != 110 {
		t.Errorf("Expected AQI 110 from alternate field, got %v", zone.AQI)
	}
}

func TestParseZoneDocument_Invalid(t *testing.T) {
	parser := NewTelemetryParser()

	if _, err := parser.ParseZoneDocument([]byte(`{"name":"No ID"}`)); err == nil {
		t.Error("Expected error for zone without id")
	}
	if _, err := parser.ParseZoneDocument([]byte(`{"id":"z","name":"Bad","carbon":-10}`)); err == nil {
		t.Error("Expected error for negative carbon")
	}
}

func TestFormatEnergyReading(t *testing.T) {
	parser := NewTelemetryParser()

	reading, err := parser.ParseEnergyString("100,20,40", "building-c")
	if err != nil {
		t.Fatalf("Expected parse to succeed, got error: %v", err)
	}

	formatted := parser.FormatEnergyReading(reading)
	if !strings.Contains(formatted, "building-c") {
		t.Errorf("Expected formatted string to name the building, got %q", formatted)
	}
	if !strings.Contains(formatted, "100.00 kWh") {
		t.Errorf("Expected formatted usage, got %q", formatted)
	}
}
