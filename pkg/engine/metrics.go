package engine

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

// Trend banding: the second-half average must move more than 20% to leave
// "stable", and fewer than four data points always read as stable.
const (
	trendMinFailures   = 4
	trendUpperFactor   = 1.2
	trendLowerFactor   = 0.8
	mtbfFullConfidence = 10
)

// CalculateMTBF reports mean time between failures for the equipment over the
// trailing period. An equipment with zero observed failures reports an MTBF
// equal to the full available operating time: no evidence of failure yet, not
// an infinite value.
func (e *Engine) CalculateMTBF(equipmentID string, periodDays int) models.MTBFResult {
	defer e.observe(metrics.QueryMTBF, time.Now())
	return e.computeMTBF(equipmentID, normalizePeriod(periodDays))
}

func (e *Engine) computeMTBF(equipmentID string, periodDays int) models.MTBFResult {
	start, end := e.window(periodDays)
	failures := e.failuresIn(equipmentID, start, end)

	potentialHours := float64(periodDays) * e.params.OperatingHoursPerDay
	downtime := 0.0
	for _, ev := range failures {
		downtime += ev.DowntimeHours
	}
	operatingHours := potentialHours - downtime
	if operatingHours < 1 {
		operatingHours = 1
	}

	mtbfHours := operatingHours
	confidence := 0.5
	if n := len(failures); n > 0 {
		mtbfHours = operatingHours / float64(n)
		confidence = math.Min(1.0, float64(n)/mtbfFullConfidence)
	}

	return models.MTBFResult{
		EquipmentID:         equipmentID,
		MTBFHours:           mtbfHours,
		MTBFDays:            mtbfHours / e.params.OperatingHoursPerDay,
		TotalOperatingHours: operatingHours,
		FailureCount:        len(failures),
		PeriodDays:          periodDays,
		ConfidenceLevel:     confidence,
		Trend:               interFailureTrend(failures),
	}
}

// interFailureTrend compares the mean inter-failure gap of the first and
// second halves of the date-sorted failures. A longer gap in the second half
// means failures are spreading out, so the equipment is improving.
func interFailureTrend(failures []models.FailureEvent) models.Trend {
	if len(failures) < trendMinFailures {
		return models.TrendStable
	}

	mid := len(failures) / 2
	firstAvg := meanGapDays(failures[:mid])
	secondAvg := meanGapDays(failures[mid:])

	switch {
	case secondAvg > firstAvg*trendUpperFactor:
		return models.TrendImproving
	case secondAvg < firstAvg*trendLowerFactor:
		return models.TrendDegrading
	default:
		return models.TrendStable
	}
}

func meanGapDays(failures []models.FailureEvent) float64 {
	if len(failures) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(failures); i++ {
		total += failures[i].FailureDate.Sub(*failures[i-1].FailureDate).Hours() / 24
	}
	return total / float64(len(failures)-1)
}

// CalculateMTTR reports mean time to repair over the trailing period. Only
// failures with recorded repair time qualify; with none, a zeroed result with
// a stable trend is returned rather than an error.
func (e *Engine) CalculateMTTR(equipmentID string, periodDays int) models.MTTRResult {
	defer e.observe(metrics.QueryMTTR, time.Now())
	return e.computeMTTR(equipmentID, normalizePeriod(periodDays))
}

func (e *Engine) computeMTTR(equipmentID string, periodDays int) models.MTTRResult {
	start, end := e.window(periodDays)

	var repairs []models.FailureEvent
	for _, ev := range e.failuresIn(equipmentID, start, end) {
		if ev.RepairHours > 0 {
			repairs = append(repairs, ev)
		}
	}

	if len(repairs) == 0 {
		return models.MTTRResult{EquipmentID: equipmentID, Trend: models.TrendStable}
	}

	times := make([]float64, len(repairs))
	minRepair, maxRepair := repairs[0].RepairHours, repairs[0].RepairHours
	for i, ev := range repairs {
		times[i] = ev.RepairHours
		if ev.RepairHours < minRepair {
			minRepair = ev.RepairHours
		}
		if ev.RepairHours > maxRepair {
			maxRepair = ev.RepairHours
		}
	}

	stdDev := 0.0
	if len(times) > 1 {
		stdDev = stat.StdDev(times, nil)
	}

	return models.MTTRResult{
		EquipmentID:   equipmentID,
		MTTRHours:     stat.Mean(times, nil),
		MinRepairTime: minRepair,
		MaxRepairTime: maxRepair,
		RepairCount:   len(repairs),
		StdDeviation:  stdDev,
		Trend:         repairTimeTrend(repairs),
	}
}

// repairTimeTrend direction is inverted relative to MTBF: a shorter mean
// repair time in the second half is improving.
func repairTimeTrend(repairs []models.FailureEvent) models.Trend {
	if len(repairs) < trendMinFailures {
		return models.TrendStable
	}

	mid := len(repairs) / 2
	firstAvg := meanRepairHours(repairs[:mid])
	secondAvg := meanRepairHours(repairs[mid:])

	switch {
	case secondAvg > firstAvg*trendUpperFactor:
		return models.TrendDegrading
	case secondAvg < firstAvg*trendLowerFactor:
		return models.TrendImproving
	default:
		return models.TrendStable
	}
}

func meanRepairHours(repairs []models.FailureEvent) float64 {
	if len(repairs) == 0 {
		return 0
	}
	total := 0.0
	for _, ev := range repairs {
		total += ev.RepairHours
	}
	return total / float64(len(repairs))
}

// CalculateAvailability reports uptime against the assumed operating schedule
// over the trailing period. Total period hours are calendar time, reported
// for context only; the availability ratio is against potential operating
// hours.
func (e *Engine) CalculateAvailability(equipmentID string, periodDays int) models.AvailabilityResult {
	defer e.observe(metrics.QueryAvailability, time.Now())
	return e.computeAvailability(equipmentID, normalizePeriod(periodDays))
}

func (e *Engine) computeAvailability(equipmentID string, periodDays int) models.AvailabilityResult {
	start, end := e.window(periodDays)

	unplanned := 0.0
	for _, ev := range e.failuresIn(equipmentID, start, end) {
		unplanned += ev.DowntimeHours
	}

	potentialHours := float64(periodDays) * e.params.OperatingHoursPerDay
	planned := potentialHours * e.params.PlannedDowntimeFactor
	uptime := potentialHours - unplanned

	return models.AvailabilityResult{
		EquipmentID:            equipmentID,
		AvailabilityPercent:    clamp(uptime/potentialHours*100, 0, 100),
		UptimeHours:            uptime,
		DowntimeHours:          planned + unplanned,
		PlannedDowntimeHours:   planned,
		UnplannedDowntimeHours: unplanned,
		TotalPeriodHours:       float64(periodDays) * 24,
	}
}
