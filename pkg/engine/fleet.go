package engine

import (
	"sort"
	"time"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

// EquipmentSummary computes the full fleet view: reliability score,
// availability, and predictive indicator for every known equipment, ordered
// worst risk first, plus fleet-wide aggregates. Per-equipment computations
// are independent; results are order-independent before the final sort.
func (e *Engine) EquipmentSummary(periodDays int) models.FleetSummary {
	defer e.observe(metrics.QueryFleet, time.Now())
	periodDays = normalizePeriod(periodDays)

	ids := e.equipmentIDs()
	summaries := make([]models.EquipmentSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, models.EquipmentSummary{
			EquipmentID:  id,
			Score:        e.computeScore(id, periodDays),
			Availability: e.computeAvailability(id, periodDays),
			Predictive:   e.computePredictive(id, periodDays),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].Score, summaries[j].Score
		if a.RiskLevel != b.RiskLevel {
			return a.RiskLevel.MoreSevere(b.RiskLevel)
		}
		if a.OverallScore != b.OverallScore {
			return a.OverallScore < b.OverallScore
		}
		return summaries[i].EquipmentID < summaries[j].EquipmentID
	})

	summary := models.FleetSummary{
		TotalEquipment: len(summaries),
		Equipment:      summaries,
	}

	if len(summaries) == 0 {
		return summary
	}

	scoreTotal, availabilityTotal := 0.0, 0.0
	for _, s := range summaries {
		scoreTotal += s.Score.OverallScore
		availabilityTotal += s.Availability.AvailabilityPercent
		switch s.Score.RiskLevel {
		case models.RiskCritical:
			summary.CriticalRiskCount++
		case models.RiskHigh:
			summary.HighRiskCount++
		}
	}
	summary.AverageReliabilityScore = scoreTotal / float64(len(summaries))
	summary.AverageAvailability = availabilityTotal / float64(len(summaries))

	return summary
}
