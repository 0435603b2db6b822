package services

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// buildingProfile describes one simulated building's load characteristics
type buildingProfile struct {
	id            string
	baseUsage     float64 // kWh per tick at neutral demand
	solarCapacity float64 // kWh per tick at full sun
	trafficBase   float64
}

// Default simulated city blocks, used when no live meter feed is connected
var defaultBuildings = []buildingProfile{
	{id: "city-hall", baseUsage: 120, solarCapacity: 18, trafficBase: 45},
	{id: "metro-hub", baseUsage: 180, solarCapacity: 6, trafficBase: 70},
	{id: "general-hospital", baseUsage: 160, solarCapacity: 12, trafficBase: 35},
	{id: "industrial-park", baseUsage: 240, solarCapacity: 30, trafficBase: 55},
	{id: "riverside-residential", baseUsage: 90, solarCapacity: 24, trafficBase: 25},
}

// EnergySimulator generates synthetic meter readings on a fast tick,
// standing in for live building telemetry. It also drifts a synthetic
// weather and air quality state so the dashboard works without an
// external feed.
type EnergySimulator struct {
	onReading    func(*models.EnergyReading)
	onWeather    func(models.WeatherSnapshot)
	onAirQuality func(models.AirQualitySnapshot)
	interval     time.Duration
	buildings    []buildingProfile
	rng          *rand.Rand
	ticker       *time.Ticker
	stopChan     chan bool
	mu           sync.RWMutex
	isRunning    bool

	weather    models.WeatherSnapshot
	airQuality models.AirQualitySnapshot
}

// NewEnergySimulator creates a simulator that delivers readings to the
// given callback every interval
func NewEnergySimulator(interval time.Duration, onReading func(*models.EnergyReading)) *EnergySimulator {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &EnergySimulator{
		onReading: onReading,
		interval:  interval,
		buildings: defaultBuildings,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		stopChan:  make(chan bool),
		weather: models.WeatherSnapshot{
			Temperature: 27,
			Humidity:    60,
			WindSpeed:   12,
			Condition:   "Partly cloudy",
		},
		airQuality: models.AirQualitySnapshot{
			AQI:  85,
			PM25: 28,
			PM10: 55,
			SO2:  9,
			NO2:  22,
		},
	}
}

// SetEnvironmentHandlers wires the callbacks that receive the synthetic
// weather and air quality snapshots
func (es *EnergySimulator) SetEnvironmentHandlers(onWeather func(models.WeatherSnapshot), onAirQuality func(models.AirQualitySnapshot)) {
	es.onWeather = onWeather
	es.onAirQuality = onAirQuality
}

// Start begins the simulation background process
func (es *EnergySimulator) Start() {
	es.mu.Lock()
	defer es.mu.Unlock()

	if es.isRunning {
		log.Println("⚠️  Energy simulator: Already running")
		return
	}

	es.ticker = time.NewTicker(es.interval)
	es.isRunning = true

	log.Printf("🏙️  Energy simulator: Started - %d buildings reporting every %s", len(es.buildings), es.interval)

	go es.run()
}

// Stop halts the simulator
func (es *EnergySimulator) Stop() {
	es.mu.Lock()
	defer es.mu.Unlock()

	if !es.isRunning {
		return
	}

	es.ticker.Stop()
	es.stopChan <- true
	es.isRunning = false

	log.Println("🛑 Energy simulator: Stopped")
}

// IsRunning returns whether the simulator is currently running
func (es *EnergySimulator) IsRunning() bool {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.isRunning
}

func (es *EnergySimulator) run() {
	es.emitReadings()

	for {
		select {
		case <-es.ticker.C:
			es.emitReadings()
		case <-es.stopChan:
			return
		}
	}
}

// emitReadings generates one reading per building for the current tick
func (es *EnergySimulator) emitReadings() {
	now := time.Now()
	hour := now.Hour()

	for _, building := range es.buildings {
		reading := es.generateReading(building, hour, now)
		if es.onReading != nil {
			es.onReading(&reading)
		}
	}

	es.driftEnvironment(hour, now)
}

// driftEnvironment random-walks the synthetic weather and air quality
func (es *EnergySimulator) driftEnvironment(hour int, now time.Time) {
	// Warmer through the afternoon, cooler overnight
	diurnal := 0.0
	if hour >= 11 && hour <= 16 {
		diurnal = 0.05
	} else if hour <= 5 || hour >= 21 {
		diurnal = -0.05
	}

	es.weather.Temperature = clampFloat(es.weather.Temperature+diurnal+es.randWalk(0.3), 8, 45)
	es.weather.Humidity = clampFloat(es.weather.Humidity+es.randWalk(1.5), 20, 95)
	es.weather.WindSpeed = clampFloat(es.weather.WindSpeed+es.randWalk(1.0), 0, 60)
	es.weather.Timestamp = now

	// AQI loosely follows traffic hours and drifts otherwise
	aqiDrift := es.randWalk(2.5)
	if hour >= 8 && hour <= 11 || hour >= 17 && hour <= 20 {
		aqiDrift += 0.8
	}
	es.airQuality.AQI = clampFloat(es.airQuality.AQI+aqiDrift, 10, 400)
	es.airQuality.PM25 = clampFloat(es.airQuality.AQI*0.35+es.randWalk(1.0), 2, 250)
	es.airQuality.PM10 = clampFloat(es.airQuality.AQI*0.65+es.randWalk(2.0), 5, 430)
	es.airQuality.SO2 = clampFloat(es.airQuality.SO2+es.randWalk(0.4), 1, 80)
	es.airQuality.NO2 = clampFloat(es.airQuality.NO2+es.randWalk(0.6), 2, 120)
	es.airQuality.Timestamp = now

	if es.onWeather != nil {
		es.onWeather(es.weather)
	}
	if es.onAirQuality != nil {
		es.onAirQuality(es.airQuality)
	}
}

func (es *EnergySimulator) randWalk(scale float64) float64 {
	return (es.rng.Float64() - 0.5) * 2 * scale
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// generateReading models demand by time of day with random jitter
func (es *EnergySimulator) generateReading(building buildingProfile, hour int, now time.Time) models.EnergyReading {
	// Demand rises through the working day and falls overnight
	demandFactor := 0.7
	switch {
	case hour >= 9 && hour <= 18:
		demandFactor = 1.2
	case hour >= 6 && hour < 9, hour > 18 && hour <= 22:
		demandFactor = 1.0
	}

	jitter := 0.9 + es.rng.Float64()*0.2
	usage := building.baseUsage * demandFactor * jitter

	solar := building.solarCapacity * daylightFactor(hour) * (0.8 + es.rng.Float64()*0.4)

	traffic := building.trafficBase * demandFactor * (0.85 + es.rng.Float64()*0.3)
	if traffic > 100 {
		traffic = 100
	}

	return models.EnergyReading{
		Timestamp:       now,
		BuildingID:      building.id,
		EnergyUsage:     usage,
		SolarProduction: solar,
		TrafficIndex:    traffic,
	}
}

// daylightFactor approximates solar irradiance over the day
func daylightFactor(hour int) float64 {
	if hour < 6 || hour > 19 {
		return 0
	}
	// Peaks at midday, tapers towards sunrise and sunset
	distance := float64(hour - 12)
	if distance < 0 {
		distance = -distance
	}
	factor := 1 - distance/7
	if factor < 0 {
		factor = 0
	}
	return factor
}
