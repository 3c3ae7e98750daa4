package engine

import (
	"math"
	"time"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

// Weighting of the composite reliability score.
const (
	weightMTBF         = 0.25
	weightMTTR         = 0.20
	weightAvailability = 0.30
	weightTrend        = 0.15
	weightCompliance   = 0.10
)

// CalculateReliabilityScore composes MTBF, MTTR, and availability into a
// 0-100 health score with a risk level and ordered, rule-based
// recommendations.
func (e *Engine) CalculateReliabilityScore(equipmentID string, periodDays int) models.ReliabilityScore {
	defer e.observe(metrics.QueryScore, time.Now())
	return e.computeScore(equipmentID, normalizePeriod(periodDays))
}

func (e *Engine) computeScore(equipmentID string, periodDays int) models.ReliabilityScore {
	mtbf := e.computeMTBF(equipmentID, periodDays)
	mttr := e.computeMTTR(equipmentID, periodDays)
	availability := e.computeAvailability(equipmentID, periodDays)

	mtbfScore := math.Min(100, mtbf.MTBFHours/e.params.MTBFReferenceHours*100)

	mttrScore := 100.0
	if mttr.MTTRHours > 0 {
		penalty := (mttr.MTTRHours - e.params.MTTRTargetHours) / e.params.MTTRPenaltyBandHours
		mttrScore = clamp((1-penalty)*100, 0, 100)
	}

	trendScore := 80.0
	switch mtbf.Trend {
	case models.TrendImproving:
		trendScore = 100
	case models.TrendDegrading:
		trendScore = 50
	}

	complianceScore := e.params.MaintenanceComplianceScore

	overall := weightMTBF*mtbfScore +
		weightMTTR*mttrScore +
		weightAvailability*availability.AvailabilityPercent +
		weightTrend*trendScore +
		weightCompliance*complianceScore

	return models.ReliabilityScore{
		EquipmentID:                equipmentID,
		OverallScore:               overall,
		MTBFScore:                  mtbfScore,
		MTTRScore:                  mttrScore,
		AvailabilityScore:          availability.AvailabilityPercent,
		FailureTrendScore:          trendScore,
		MaintenanceComplianceScore: complianceScore,
		RiskLevel:                  riskLevel(overall, availability.AvailabilityPercent),
		Recommendations:            buildRecommendations(mtbf, mttr, availability),
	}
}

// riskLevel buckets the composite score, with availability acting as an
// independent floor: a highly unavailable equipment is high risk no matter
// how it scores elsewhere.
func riskLevel(overall, availabilityPercent float64) models.RiskLevel {
	switch {
	case overall < 40 || availabilityPercent < 80:
		return models.RiskCritical
	case overall < 60 || availabilityPercent < 90:
		return models.RiskHigh
	case overall < 80 || availabilityPercent < 95:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func buildRecommendations(mtbf models.MTBFResult, mttr models.MTTRResult, availability models.AvailabilityResult) []string {
	var recs []string

	switch {
	case mtbf.MTBFHours < 500:
		recs = append(recs, "CRITICAL: Very low MTBF - evaluate equipment replacement or major overhaul")
	case mtbf.MTBFHours < 1000:
		recs = append(recs, "Increase preventive maintenance frequency to improve MTBF")
	}
	if mttr.MTTRHours > 8 {
		recs = append(recs, "Improve spare parts availability and technician training to reduce repair time")
	}
	if availability.AvailabilityPercent < 90 {
		recs = append(recs, "Review maintenance strategy and consider predictive maintenance")
	}
	if mtbf.Trend == models.TrendDegrading {
		recs = append(recs, "Failure trend is degrading - schedule a detailed inspection")
	}

	if len(recs) == 0 {
		recs = append(recs, "Equipment performing well - maintain current maintenance strategy")
	}
	return recs
}
