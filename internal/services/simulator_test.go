package services

import (
	"sync"
	"testing"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

func TestEnergySimulator_GenerateReading_Valid(t *testing.T) {
	sim := NewEnergySimulator(time.Second, nil)
	building := defaultBuildings[0]

	// Readings must validate at every hour of the day
	for hour := 0; hour < 24; hour++ {
		reading := sim.generateReading(building, hour, time.Now())
		if !reading.ValidateReading() {
			t.Errorf("Expected valid reading at hour %d, got %+v", hour, reading)
		}
		if reading.BuildingID != building.id {
			t.Errorf("Expected building id %s, got %s", building.id, reading.BuildingID)
		}
	}
}

func TestEnergySimulator_DaytimeDemandHigher(t *testing.T) {
	sim := NewEnergySimulator(time.Second, nil)
	building := defaultBuildings[0]

	// Jitter is at most ±10%, so the 1.2 vs 0.7 demand factors dominate
	day := sim.generateReading(building, 14, time.Now())
	night := sim.generateReading(building, 3, time.Now())
	if day.EnergyUsage <= night.EnergyUsage {
		t.Errorf("Expected daytime usage above nighttime, got %v and %v",
			day.EnergyUsage, night.EnergyUsage)
	}
}

func TestEnergySimulator_NoSolarAtNight(t *testing.T) {
	sim := NewEnergySimulator(time.Second, nil)
	building := defaultBuildings[0]

	reading := sim.generateReading(building, 2, time.Now())
	if reading.SolarProduction != 0 {
		t.Errorf("Expected zero solar production at night, got %v", reading.SolarProduction)
	}
}

func TestEnergySimulator_EmitReadings(t *testing.T) {
	var mu sync.Mutex
	received := []models.EnergyReading{}

	sim := NewEnergySimulator(time.Second, func(r *models.EnergyReading) {
		mu.Lock()
		received = append(received, *r)
		mu.Unlock()
	})

	weatherCalls := 0
	airCalls := 0
	sim.SetEnvironmentHandlers(
		func(models.WeatherSnapshot) { weatherCalls++ },
		func(models.AirQualitySnapshot) { airCalls++ },
	)

	sim.emitReadings()

	if len(received) != len(defaultBuildings) {
		t.Errorf("Expected %d readings per tick, got %d", len(defaultBuildings), len(received))
	}
	if weatherCalls != 1 || airCalls != 1 {
		t.Errorf("Expected one environment update per tick, got %d and %d", weatherCalls, airCalls)
	}
}

func TestEnergySimulator_StartStop(t *testing.T) {
	sim := NewEnergySimulator(time.Hour, nil)

	if sim.IsRunning() {
		t.Error("Expected simulator to not be running initially")
	}

	sim.Start()
	if !sim.IsRunning() {
		t.Error("Expected simulator to be running after Start")
	}

	sim.Stop()
	if sim.IsRunning() {
		t.Error("Expected simulator to be stopped after Stop")
	}
}
