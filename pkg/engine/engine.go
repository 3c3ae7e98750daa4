// Package engine computes standard reliability-engineering analytics (MTBF,
// MTTR, availability, FMEA risk ranking, Weibull failure patterns, predictive
// maintenance indicators) over an in-memory set of equipment failure events.
//
// The engine is a pure computation layer: it performs no I/O, never raises on
// noisy data, and every query is a deterministic function of the loaded event
// set, the configured parameters, and the clock. Loading a batch replaces the
// event set wholesale under a write lock; queries take the read lock, so one
// instance is safe to share across reader goroutines.
package engine

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daniilmars/pm-reliability-engine/internal/metrics"
	"github.com/daniilmars/pm-reliability-engine/internal/utils"
	"github.com/daniilmars/pm-reliability-engine/pkg/config"
	"github.com/daniilmars/pm-reliability-engine/pkg/models"
	"github.com/daniilmars/pm-reliability-engine/pkg/normalizer"
)

// DefaultPeriodDays is the analysis window applied when a caller passes a
// non-positive period.
const DefaultPeriodDays = 365

// Engine is a session-scoped reliability analytics engine. Construct one per
// analytics session with New; there is no shared global instance.
type Engine struct {
	logger     *slog.Logger
	params     config.Params
	normalizer *normalizer.Normalizer
	latencies  *utils.LatencyTracker

	// now is injectable so date-windowed queries are reproducible in tests.
	now func() time.Time

	mu        sync.RWMutex
	sessionID string
	events    []models.FailureEvent
}

// New constructs an Engine with the supplied parameters. Zero-valued
// parameters fall back to the calibrated defaults so a zero Params is usable.
func New(params config.Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := config.DefaultParams()
	if params.OperatingHoursPerDay <= 0 {
		params.OperatingHoursPerDay = defaults.OperatingHoursPerDay
	}
	if params.PlannedDowntimeFactor <= 0 {
		params.PlannedDowntimeFactor = defaults.PlannedDowntimeFactor
	}
	if params.MTBFReferenceHours <= 0 {
		params.MTBFReferenceHours = defaults.MTBFReferenceHours
	}
	if params.MTTRTargetHours <= 0 {
		params.MTTRTargetHours = defaults.MTTRTargetHours
	}
	if params.MTTRPenaltyBandHours <= 0 {
		params.MTTRPenaltyBandHours = defaults.MTTRPenaltyBandHours
	}
	if params.MaintenanceComplianceScore <= 0 {
		params.MaintenanceComplianceScore = defaults.MaintenanceComplianceScore
	}

	return &Engine{
		logger:     logger,
		params:     params,
		normalizer: normalizer.New(),
		latencies:  utils.NewLatencyTracker(1024),
		now:        time.Now,
	}
}

// RegisterMetrics attaches the engine's Prometheus collectors to reg.
func (e *Engine) RegisterMetrics(reg prometheus.Registerer) error {
	return metrics.Register(reg)
}

// LoadNotifications normalizes a batch of raw maintenance notifications and
// replaces the loaded event set. Returns the number of events loaded.
func (e *Engine) LoadNotifications(records []normalizer.Record) int {
	return e.LoadEvents(e.normalizer.Normalize(records))
}

// LoadEvents replaces the loaded event set with already-normalized events.
// Loading is wholesale: there are no incremental append semantics.
func (e *Engine) LoadEvents(events []models.FailureEvent) int {
	sessionID := uuid.NewString()

	e.mu.Lock()
	e.events = events
	e.sessionID = sessionID
	e.mu.Unlock()

	metrics.SetLoadedEvents(len(events))
	e.logger.Info("failure events loaded",
		slog.String("session_id", sessionID),
		slog.Int("events", len(events)))
	return len(events)
}

// SessionID identifies the currently loaded batch; it changes on every load.
func (e *Engine) SessionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessionID
}

// EventCount returns the size of the loaded event set.
func (e *Engine) EventCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.events)
}

// snapshot returns the loaded events under the read lock. Events are
// immutable, so sharing the backing array with readers is safe.
func (e *Engine) snapshot() []models.FailureEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events
}

// window converts a period length into the [now-period, now] bounds.
func (e *Engine) window(periodDays int) (time.Time, time.Time) {
	end := e.now()
	return end.AddDate(0, 0, -periodDays), end
}

// failuresIn returns the equipment's dated failures inside [start, end],
// sorted by failure date ascending. Events without a parseable date never
// satisfy a date window.
func (e *Engine) failuresIn(equipmentID string, start, end time.Time) []models.FailureEvent {
	var filtered []models.FailureEvent
	for _, ev := range e.snapshot() {
		if ev.EquipmentID != equipmentID {
			continue
		}
		if !ev.InPeriod(start, end) {
			continue
		}
		filtered = append(filtered, ev)
	}
	sortByDate(filtered)
	return filtered
}

// fleetFailuresIn returns every dated failure inside [start, end] across all
// equipment, sorted by failure date ascending.
func (e *Engine) fleetFailuresIn(start, end time.Time) []models.FailureEvent {
	var filtered []models.FailureEvent
	for _, ev := range e.snapshot() {
		if !ev.InPeriod(start, end) {
			continue
		}
		filtered = append(filtered, ev)
	}
	sortByDate(filtered)
	return filtered
}

// equipmentIDs lists the distinct equipment ids observed in the loaded
// events, skipping the unknown sentinel, sorted for deterministic iteration.
func (e *Engine) equipmentIDs() []string {
	seen := make(map[string]struct{})
	for _, ev := range e.snapshot() {
		if ev.EquipmentID == "" || ev.EquipmentID == models.UnknownCode {
			continue
		}
		seen[ev.EquipmentID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// observe records instrumentation for one public query.
func (e *Engine) observe(kind string, started time.Time) {
	duration := time.Since(started)
	e.latencies.Observe(duration)
	metrics.ObserveQuery(kind, duration)
	if count := e.latencies.Count(); count >= 100 && count%100 == 0 {
		e.logger.Info("analytics query latency",
			slog.Duration("p95", e.latencies.Percentile(95)),
			slog.Int("samples", count))
	}
}

func normalizePeriod(periodDays int) int {
	if periodDays <= 0 {
		return DefaultPeriodDays
	}
	return periodDays
}

func sortByDate(events []models.FailureEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].FailureDate.Before(*events[j].FailureDate)
	})
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
