package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

const defaultControls = "Scheduled preventive maintenance and operator inspections"

// PerformFMEAAnalysis groups in-period failures across the whole fleet by
// failure mode and ranks them by Risk Priority Number, descending. The
// occurrence rate denominator is the fleet-wide in-period failure total, so a
// mode's rating reflects its share of all failures, not just its own
// equipment's.
func (e *Engine) PerformFMEAAnalysis(periodDays int) []models.FMEAItem {
	defer e.observe(metrics.QueryFMEA, time.Now())
	return e.computeFMEA(normalizePeriod(periodDays))
}

type failureModeAggregate struct {
	count       int
	maxSeverity models.Severity
	downtime    float64
	equipment   map[string]struct{}
}

func (e *Engine) computeFMEA(periodDays int) []models.FMEAItem {
	start, end := e.window(periodDays)
	failures := e.fleetFailuresIn(start, end)
	total := len(failures)
	if total == 0 {
		return nil
	}

	groups := make(map[string]*failureModeAggregate)
	for _, ev := range failures {
		if ev.FailureMode == models.UnknownCode {
			continue
		}
		agg, ok := groups[ev.FailureMode]
		if !ok {
			agg = &failureModeAggregate{equipment: make(map[string]struct{})}
			groups[ev.FailureMode] = agg
		}
		agg.count++
		agg.downtime += ev.DowntimeHours
		if ev.Severity > agg.maxSeverity {
			agg.maxSeverity = ev.Severity
		}
		agg.equipment[ev.EquipmentID] = struct{}{}
	}

	items := make([]models.FMEAItem, 0, len(groups))
	for mode, agg := range groups {
		severity := int(agg.maxSeverity)
		occurrence := occurrenceRating(agg.count, float64(agg.count)/float64(total))
		detection := detectionRating(agg.maxSeverity)
		rpn := severity * occurrence * detection

		items = append(items, models.FMEAItem{
			FailureMode:       mode,
			PotentialEffect:   potentialEffect(agg.downtime / float64(agg.count)),
			Severity:          severity,
			Occurrence:        occurrence,
			Detection:         detection,
			RPN:               rpn,
			RecommendedAction: recommendedAction(rpn, mode),
			CurrentControls:   defaultControls,
			EquipmentAffected: sortedKeys(agg.equipment),
			OccurrenceCount:   agg.count,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].RPN != items[j].RPN {
			return items[i].RPN > items[j].RPN
		}
		if items[i].OccurrenceCount != items[j].OccurrenceCount {
			return items[i].OccurrenceCount > items[j].OccurrenceCount
		}
		return items[i].FailureMode < items[j].FailureMode
	})

	return items
}

// occurrenceRating maps a mode's in-period count and fleet-wide failure share
// onto the 1-10 FMEA occurrence scale using banded thresholds.
func occurrenceRating(count int, rate float64) int {
	switch {
	case count >= 10 || rate > 0.30:
		return 10
	case count >= 7 || rate > 0.20:
		return 8
	case count >= 4 || rate > 0.10:
		return 5
	case count >= 2 || rate > 0.05:
		return 3
	default:
		return 1
	}
}

// detectionRating assumes detection is worst for the most severe damage: a
// mode that has produced a critical failure is the hardest to catch early.
func detectionRating(maxSeverity models.Severity) int {
	switch {
	case maxSeverity >= models.SeverityCritical:
		return 8
	case maxSeverity >= models.SeverityHigh:
		return 6
	default:
		return 4
	}
}

func potentialEffect(meanDowntimeHours float64) string {
	switch {
	case meanDowntimeHours > 24:
		return "Extended production stoppage, significant impact"
	case meanDowntimeHours > 8:
		return "Production delay, moderate impact"
	case meanDowntimeHours > 2:
		return "Short interruption, minor impact"
	default:
		return "Minimal operational impact"
	}
}

func recommendedAction(rpn int, mode string) string {
	switch {
	case rpn >= 200:
		return fmt.Sprintf("URGENT: Immediate design or process change required to address %s", mode)
	case rpn >= 100:
		return fmt.Sprintf("HIGH PRIORITY: Review maintenance strategy and controls for %s", mode)
	case rpn >= 50:
		return fmt.Sprintf("MODERATE: Monitor %s and reassess at the next planning cycle", mode)
	default:
		return fmt.Sprintf("LOW: Continue existing controls for %s", mode)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
