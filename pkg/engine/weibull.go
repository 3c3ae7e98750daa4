package engine

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

// reliabilityHorizonDays are the forecast horizons reported in every Weibull
// result.
var reliabilityHorizonDays = []int{30, 90, 180, 365}

// Neutral defaults reported when there is not enough failure history to
// estimate a distribution: a random failure pattern with a 1000h scale.
const (
	defaultShape = 1.0
	defaultScale = 1000.0
)

func defaultReliabilityCurve() map[int]float64 {
	return map[int]float64{30: 0.95, 90: 0.85, 180: 0.75, 365: 0.60}
}

// EstimateWeibullParameters fits a Weibull failure distribution to the
// equipment's inter-failure times using a coefficient-of-variation moment
// approximation. This deliberately mirrors the calibrated production
// estimator rather than a maximum-likelihood fit; swapping in an MLE would
// silently change reported failure patterns.
func (e *Engine) EstimateWeibullParameters(equipmentID string, periodDays int) models.WeibullParameters {
	defer e.observe(metrics.QueryWeibull, time.Now())
	return e.computeWeibull(equipmentID, normalizePeriod(periodDays))
}

func (e *Engine) computeWeibull(equipmentID string, periodDays int) models.WeibullParameters {
	start, end := e.window(periodDays)
	failures := e.failuresIn(equipmentID, start, end)
	if len(failures) < 3 {
		return defaultWeibull(equipmentID)
	}

	// Inter-failure gaps in operating hours; simultaneous or out-of-order
	// notifications produce non-positive gaps and are dropped.
	gaps := make([]float64, 0, len(failures)-1)
	for i := 1; i < len(failures); i++ {
		gap := failures[i].FailureDate.Sub(*failures[i-1].FailureDate).Hours()
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return defaultWeibull(equipmentID)
	}

	mean := stat.Mean(gaps, nil)
	sd := mean * 0.3
	if len(gaps) > 1 {
		sd = stat.StdDev(gaps, nil)
	}
	cv := sd / mean

	var shape float64
	switch {
	case cv > 1.2:
		shape = 0.7
	case cv < 0.5:
		shape = 3.0
	default:
		shape = 1 + (1 - cv)
	}
	scale := mean / math.Gamma(1+1/shape)

	return models.WeibullParameters{
		EquipmentID:       equipmentID,
		ShapeParameter:    shape,
		ScaleParameter:    scale,
		FailurePattern:    classifyPattern(shape),
		ReliabilityAtTime: e.reliabilityCurve(shape, scale),
	}
}

func defaultWeibull(equipmentID string) models.WeibullParameters {
	return models.WeibullParameters{
		EquipmentID:       equipmentID,
		ShapeParameter:    defaultShape,
		ScaleParameter:    defaultScale,
		FailurePattern:    models.PatternRandom,
		ReliabilityAtTime: defaultReliabilityCurve(),
	}
}

// classifyPattern follows the bathtub-curve reading of the shape parameter.
func classifyPattern(shape float64) models.FailurePattern {
	switch {
	case shape < 0.95:
		return models.PatternInfantMortality
	case shape > 1.05:
		return models.PatternWearOut
	default:
		return models.PatternRandom
	}
}

// reliabilityCurve evaluates the survival function R(t) at each forecast
// horizon, converting calendar days to operating hours via the duty cycle.
func (e *Engine) reliabilityCurve(shape, scale float64) map[int]float64 {
	dist := distuv.Weibull{K: shape, Lambda: scale}
	curve := make(map[int]float64, len(reliabilityHorizonDays))
	for _, days := range reliabilityHorizonDays {
		hours := float64(days) * e.params.OperatingHoursPerDay
		r := clamp(dist.Survival(hours), 0, 1)
		curve[days] = math.Round(r*1000) / 1000
	}
	return curve
}
