package engine

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

const (
	// forecastHorizonDays is the window of the conditional failure forecast.
	forecastHorizonDays = 30
	// fallbackFailureProbability applies when no usable distribution exists.
	fallbackFailureProbability = 0.3
	// fallbackRemainingLifeDays applies when no MTBF evidence exists.
	fallbackRemainingLifeDays = 90.0
	// minPredictiveConfidence floors the confidence reported on sparse data.
	minPredictiveConfidence = 0.3
)

// GeneratePredictiveIndicators forecasts the equipment's failure probability
// over the next thirty days from its Weibull parameters and time since last
// failure, and derives an urgency band and remaining-life estimate.
func (e *Engine) GeneratePredictiveIndicators(equipmentID string, periodDays int) models.PredictiveMaintenanceIndicator {
	defer e.observe(metrics.QueryPredictive, time.Now())
	return e.computePredictive(equipmentID, normalizePeriod(periodDays))
}

func (e *Engine) computePredictive(equipmentID string, periodDays int) models.PredictiveMaintenanceIndicator {
	weibull := e.computeWeibull(equipmentID, periodDays)
	mtbf := e.computeMTBF(equipmentID, periodDays)

	sinceFailureDays := e.daysSinceLastFailure(equipmentID, periodDays)
	probability := e.conditionalFailureProbability(weibull, sinceFailureDays)

	remainingLife := fallbackRemainingLifeDays
	if mtbf.MTBFDays > 0 {
		remainingLife = math.Max(0, mtbf.MTBFDays-sinceFailureDays)
	}

	urgency, action := urgencyBand(probability)

	confidence := math.Min(1.0, float64(mtbf.FailureCount)/mtbfFullConfidence)
	if confidence < minPredictiveConfidence {
		confidence = minPredictiveConfidence
	}

	return models.PredictiveMaintenanceIndicator{
		EquipmentID:                 equipmentID,
		PredictedFailureProbability: probability,
		RecommendedAction:           action,
		Urgency:                     urgency,
		EstimatedRemainingLifeDays:  remainingLife,
		ConfidenceLevel:             confidence,
		ContributingFactors:         contributingFactors(weibull, mtbf, sinceFailureDays),
	}
}

// daysSinceLastFailure measures from the equipment's most recent dated
// failure; with no dated failure on record, the full period is assumed.
func (e *Engine) daysSinceLastFailure(equipmentID string, periodDays int) float64 {
	var last *time.Time
	for _, ev := range e.snapshot() {
		if ev.EquipmentID != equipmentID || ev.FailureDate == nil {
			continue
		}
		if last == nil || ev.FailureDate.After(*last) {
			last = ev.FailureDate
		}
	}
	if last == nil {
		return float64(periodDays)
	}
	days := e.now().Sub(*last).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// conditionalFailureProbability computes p = 1 - R(t+h)/R(t) over the
// forecast horizon, with t in operating hours.
func (e *Engine) conditionalFailureProbability(weibull models.WeibullParameters, sinceFailureDays float64) float64 {
	if weibull.ScaleParameter <= 0 {
		return fallbackFailureProbability
	}

	dist := distuv.Weibull{K: weibull.ShapeParameter, Lambda: weibull.ScaleParameter}
	tHours := sinceFailureDays * e.params.OperatingHoursPerDay
	horizonHours := forecastHorizonDays * e.params.OperatingHoursPerDay

	rNow := dist.Survival(tHours)
	if rNow <= 0 {
		return 1
	}
	rNext := dist.Survival(tHours + horizonHours)

	return clamp(1-rNext/rNow, 0, 1)
}

func urgencyBand(probability float64) (models.Urgency, string) {
	switch {
	case probability > 0.7:
		return models.UrgencyImmediate, "Immediate inspection required - high probability of failure"
	case probability > 0.5:
		return models.UrgencySoon, "Schedule maintenance within the next two weeks"
	case probability > 0.3:
		return models.UrgencyScheduled, "Include in the next planned maintenance window"
	default:
		return models.UrgencyMonitor, "Continue routine condition monitoring"
	}
}

func contributingFactors(weibull models.WeibullParameters, mtbf models.MTBFResult, sinceFailureDays float64) []models.ContributingFactor {
	var factors []models.ContributingFactor

	if weibull.FailurePattern == models.PatternWearOut {
		factors = append(factors, models.ContributingFactor{
			Factor:      "failure_pattern",
			Impact:      "high",
			Description: "Weibull shape parameter indicates wear-out failures; risk grows with operating time",
		})
	}
	if mtbf.Trend == models.TrendDegrading {
		factors = append(factors, models.ContributingFactor{
			Factor:      "mtbf_trend",
			Impact:      "medium",
			Description: "Inter-failure intervals are shortening across the analysis window",
		})
	}
	if mtbf.MTBFDays > 0 && sinceFailureDays > 0.8*mtbf.MTBFDays {
		factors = append(factors, models.ContributingFactor{
			Factor:      "failure_interval",
			Impact:      "high",
			Description: "Operating time since the last failure is approaching the expected failure interval",
		})
	}

	return factors
}
