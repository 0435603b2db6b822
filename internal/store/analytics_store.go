package store

import (
	"fmt"
	"sync"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// analyticsStore holds derived analytics results (scores, anomalies,
// insights) separately from raw telemetry
type analyticsStore struct {
	mu            sync.RWMutex
	currentScore  *models.SustainabilityScore
	previousScore int
	anomalies     []models.Anomaly
	insights      []models.AIInsight
	maxAnomalies  int
}

func newAnalyticsStore() *analyticsStore {
	return &analyticsStore{
		maxAnomalies: 100,
	}
}

func (a *analyticsStore) setCurrentScore(score models.SustainabilityScore) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.currentScore != nil {
		a.previousScore = a.currentScore.Value
	}
	scoreCopy := score
	a.currentScore = &scoreCopy
}

func (a *analyticsStore) getCurrentScore() (models.SustainabilityScore, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.currentScore == nil {
		return models.SustainabilityScore{}, false
	}
	return *a.currentScore, true
}

func (a *analyticsStore) getPreviousScoreValue() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.previousScore
}

func (a *analyticsStore) saveAnomaly(anomaly *models.Anomaly) error {
	if anomaly == nil {
		return fmt.Errorf("nil anomaly")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.anomalies = append(a.anomalies, *anomaly)
	if len(a.anomalies) > a.maxAnomalies {
		a.anomalies = a.anomalies[1:]
	}
	return nil
}

func (a *analyticsStore) getRecentAnomalies(limit int) []models.Anomaly {
	a.mu.RLock()
	defer a.mu.RUnlock()

	// Newest first
	result := make([]models.Anomaly, 0, len(a.anomalies))
	for i := len(a.anomalies) - 1; i >= 0; i-- {
		result = append(result, a.anomalies[i])
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}

func (a *analyticsStore) saveInsights(insights []models.AIInsight) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.insights = make([]models.AIInsight, len(insights))
	copy(a.insights, insights)
	return nil
}

func (a *analyticsStore) getLatestInsights() []models.AIInsight {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make([]models.AIInsight, len(a.insights))
	copy(result, a.insights)
	return result
}
