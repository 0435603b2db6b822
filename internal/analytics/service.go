package analytics

import (
	"log"
	"sync"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/store"
)

// Neutral baseline for temperature severity. Deviations from this are
// what the score penalizes.
const neutralTemperature = 25.0

const (
	defaultRefreshInterval = 10 * time.Second
	defaultCarbonIntensity = 0.4
	defaultForecastHours   = 12
	rollingWindow          = 24
	historyWindow          = 48
)

// Broadcaster pushes analytics results to live dashboard clients
type Broadcaster interface {
	BroadcastScoreUpdate(score models.SustainabilityScore, trend models.ScoreTrend)
	BroadcastInsights(insights []models.AIInsight)
	BroadcastAnomaly(anomaly models.Anomaly)
}

// Service drives the analytics pipeline on a fixed refresh cadence:
// assemble the dashboard snapshot, score it, scan for anomalies,
// generate insights and broadcast the results
type Service struct {
	store           store.DataStore
	scorer          *ScoreCalculator
	detector        *AnomalyDetector
	forecaster      *ForecastEngine
	recommender     *RecommendationEngine
	simulator       *SimulationEngine
	insights        *InsightGenerator
	broadcaster     Broadcaster
	refreshInterval time.Duration
	carbonIntensity float64
	forecastHorizon int

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool

	// Per-metric histories kept for detection passes
	aqiHistory  []float64
	tempHistory []float64
}

// NewService creates the analytics service
func NewService(dataStore store.DataStore, broadcaster Broadcaster, refreshInterval time.Duration) *Service {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}

	return &Service{
		store:           dataStore,
		scorer:          NewScoreCalculator(),
		detector:        NewAnomalyDetector(),
		forecaster:      NewForecastEngine(),
		recommender:     NewRecommendationEngine(),
		simulator:       NewSimulationEngine(),
		insights:        NewInsightGenerator(),
		broadcaster:     broadcaster,
		refreshInterval: refreshInterval,
		carbonIntensity: defaultCarbonIntensity,
		forecastHorizon: defaultForecastHours,
		stopChan:        make(chan struct{}),
	}
}

// SetCarbonIntensity overrides the grid emission factor used for carbon
// forecasts. Values at or below zero are ignored.
func (s *Service) SetCarbonIntensity(intensity float64) {
	if intensity > 0 {
		s.carbonIntensity = intensity
	}
}

// SetForecastHorizon overrides the horizon used when a forecast request
// does not specify one. Values at or below zero are ignored.
func (s *Service) SetForecastHorizon(hours int) {
	if hours > 0 {
		s.forecastHorizon = hours
	}
}

// Start begins the background refresh task
func (s *Service) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	log.Println("📈 Starting analytics service (statistical scoring, detection and forecasting)...")

	s.wg.Add(1)
	go s.refreshTask()

	log.Println("✅ Analytics service started")
}

// Stop stops the background refresh task
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	log.Println("🛑 Stopping analytics service...")
	close(s.stopChan)
	s.wg.Wait()
	log.Println("✅ Analytics service stopped")
}

func (s *Service) refreshTask() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	// Run immediately on start
	s.Refresh()

	for {
		select {
		case <-ticker.C:
			s.Refresh()
		case <-s.stopChan:
			return
		}
	}
}

// Refresh runs one full pipeline pass over the current snapshot
func (s *Service) Refresh() {
	state := s.BuildDashboardState()

	// 1. Score the snapshot
	factors := s.factorsFrom(state)
	score := s.scorer.Evaluate(factors)
	previous := s.store.GetPreviousScoreValue()
	current, hasCurrent := s.store.GetCurrentScore()
	if hasCurrent {
		previous = current.Value
	}
	s.store.SetCurrentScore(score)
	trend := s.scorer.Trend(score.Value, previous)
	state.Score = score
	state.PreviousScore = previous

	// 2. Detection pass over the tracked metrics
	anomalies := s.detector.DetectAll(s.metricSamples(state))
	for i := range anomalies {
		if err := s.store.SaveAnomaly(&anomalies[i]); err != nil {
			log.Printf("❌ Error saving anomaly: %v", err)
			continue
		}
		log.Printf("⚠️  Anomaly detected: %s (severity: %s)", anomalies[i].Description, anomalies[i].Severity)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastAnomaly(anomalies[i])
		}
	}
	state.Anomalies = s.store.GetRecentAnomalies(maxAnomalyInsights)

	// 3. Generate and publish insights
	generated := s.insights.Generate(state)
	if err := s.store.SaveInsights(generated); err != nil {
		log.Printf("❌ Error saving insights: %v", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastScoreUpdate(score, trend)
		s.broadcaster.BroadcastInsights(generated)
	}

	// Record the metric histories for the next detection pass
	s.recordHistories(state)
}

// BuildDashboardState assembles the full snapshot the pipeline and the
// API both serve
func (s *Service) BuildDashboardState() models.DashboardState {
	state := models.DashboardState{
		Timestamp: time.Now(),
	}

	if weather, ok := s.store.GetWeather(); ok {
		state.Weather = weather
	}
	if airQuality, ok := s.store.GetAirQuality(); ok {
		state.AirQuality = airQuality
	}

	latest := s.store.GetAllLatestReadingsByBuilding()
	buildings := s.store.GetActiveBuildings()
	for _, buildingID := range buildings {
		state.Readings = append(state.Readings, latest[buildingID])
	}

	state.EnergyHistory = s.store.GetEnergyHistory(historyWindow)
	state.RollingAvgUsage = s.store.GetRollingAverageUsage(rollingWindow)

	if score, ok := s.store.GetCurrentScore(); ok {
		state.Score = score
	}
	state.PreviousScore = s.store.GetPreviousScoreValue()
	state.Anomalies = s.store.GetRecentAnomalies(maxAnomalyInsights)

	return state
}

// factorsFrom derives score factors from the snapshot
func (s *Service) factorsFrom(state models.DashboardState) models.ScoreFactors {
	totalUsage := state.TotalUsage()
	tempSeverity := state.Weather.Temperature - neutralTemperature
	if tempSeverity < 0 {
		tempSeverity = -tempSeverity
	}

	return models.ScoreFactors{
		AQI:                 state.AirQuality.AQI,
		EnergyConsumption:   totalUsage,
		CarbonEmission:      totalUsage * s.carbonIntensity,
		TemperatureSeverity: tempSeverity,
	}
}

// metricSamples pairs each tracked metric with its history, in a fixed
// order so detection output stays deterministic
func (s *Service) metricSamples(state models.DashboardState) []models.MetricSample {
	return []models.MetricSample{
		{Name: "energy_usage", Current: state.TotalUsage(), History: state.EnergyHistory},
		{Name: "aqi", Current: state.AirQuality.AQI, History: s.aqiHistory},
		{Name: "temperature", Current: state.Weather.Temperature, History: s.tempHistory},
	}
}

func (s *Service) recordHistories(state models.DashboardState) {
	s.store.AddEnergyHistoryPoint(state.TotalUsage())
	s.aqiHistory = appendBounded(s.aqiHistory, state.AirQuality.AQI, historyWindow)
	s.tempHistory = appendBounded(s.tempHistory, state.Weather.Temperature, historyWindow)
}

func appendBounded(series []float64, value float64, max int) []float64 {
	series = append(series, value)
	if len(series) > max {
		series = series[1:]
	}
	return series
}

// ProcessNewReading handles one meter reading as it arrives on the fast
// telemetry tick
func (s *Service) ProcessNewReading(reading *models.EnergyReading) {
	if reading == nil || !reading.ValidateReading() {
		return
	}
	s.store.AddEnergyReading(*reading)
}

// EnergyForecast predicts aggregate usage for the next hours steps.
// hours at or below zero falls back to the configured horizon.
func (s *Service) EnergyForecast(currentHour, hours int) []models.PredictionPoint {
	history := s.store.GetEnergyHistory(historyWindow)
	return s.forecaster.ForecastEnergy(history, currentHour, s.horizonOrDefault(hours))
}

// AQIForecast predicts the AQI series adjusted for current weather
func (s *Service) AQIForecast(hours int) []models.PredictionPoint {
	weather, _ := s.store.GetWeather()
	return s.forecaster.ForecastAQI(s.aqiSeries(), weather.Temperature, weather.WindSpeed, s.horizonOrDefault(hours))
}

// CarbonForecast predicts emissions from the energy forecast
func (s *Service) CarbonForecast(currentHour, hours int) []models.PredictionPoint {
	history := s.store.GetEnergyHistory(historyWindow)
	return s.forecaster.ForecastCarbon(history, s.carbonIntensity, currentHour, s.horizonOrDefault(hours))
}

func (s *Service) horizonOrDefault(hours int) int {
	if hours <= 0 {
		return s.forecastHorizon
	}
	return hours
}

func (s *Service) aqiSeries() []float64 {
	series := make([]float64, len(s.aqiHistory))
	copy(series, s.aqiHistory)
	if airQuality, ok := s.store.GetAirQuality(); ok {
		series = append(series, airQuality.AQI)
	}
	return series
}

// RecommendationForZone builds the carbon recommendation for one zone
func (s *Service) RecommendationForZone(zone models.Zone) models.CarbonRecommendation {
	score := zone.Score
	if score <= 0 {
		if current, ok := s.store.GetCurrentScore(); ok {
			score = float64(current.Value)
		}
	}
	return s.recommender.Recommend(zone.ID, zone.Name, zone.CarbonEmission, zone.EnergyConsumption, score)
}

// SimulateForZone runs a what-if scenario for a zone with the selected
// strategy ids from its recommendation playbook
func (s *Service) SimulateForZone(zone models.Zone, strategyIDs []string) (models.SimulationScenario, []models.SustainabilityStrategy) {
	recommendation := s.RecommendationForZone(zone)

	selected := make([]models.SustainabilityStrategy, 0, len(strategyIDs))
	for _, id := range strategyIDs {
		for _, strategy := range recommendation.Strategies {
			if strategy.ID == id {
				selected = append(selected, strategy)
				break
			}
		}
	}

	baseScore := zone.Score
	if baseScore <= 0 {
		if current, ok := s.store.GetCurrentScore(); ok {
			baseScore = float64(current.Value)
		}
	}

	return s.simulator.Simulate(zone.CarbonEmission, baseScore, selected), selected
}

// Simulator exposes the simulation engine for phases, ROI and chart data
func (s *Service) Simulator() *SimulationEngine {
	return s.simulator
}

// Recommender exposes the recommendation engine
func (s *Service) Recommender() *RecommendationEngine {
	return s.recommender
}

// Scorer exposes the score calculator for trend computation
func (s *Service) Scorer() *ScoreCalculator {
	return s.scorer
}

// Summarize returns the one-line status summary for the current snapshot
func (s *Service) Summarize() string {
	return s.insights.Summarize(s.BuildDashboardState())
}

// Status reports the service lifecycle state
func (s *Service) Status() map[string]interface{} {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return map[string]interface{}{
		"running":          running,
		"refresh_interval": s.refreshInterval.String(),
		"carbon_intensity": s.carbonIntensity,
		"rolling_window":   rollingWindow,
	}
}
