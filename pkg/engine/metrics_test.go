package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

func TestCalculateMTBFScenario(t *testing.T) {
	e := newTestEngine()
	// Failures on day 0, 100, and 105 of the 365-day window, 10h downtime each.
	e.LoadEvents([]models.FailureEvent{
		failureDaysAgo("EQ1", 365, 10),
		failureDaysAgo("EQ1", 265, 10),
		failureDaysAgo("EQ1", 260, 10),
	})

	result := e.CalculateMTBF("EQ1", 365)

	require.Equal(t, 3, result.FailureCount)
	require.InDelta(t, (365*16.0-30)/3, result.MTBFHours, 1e-9)
	assert.InDelta(t, result.MTBFHours/16, result.MTBFDays, 1e-9)
	assert.Equal(t, 365, result.PeriodDays)
	assert.InDelta(t, 0.3, result.ConfidenceLevel, 1e-9)
	// Fewer than four failures always reads as stable.
	assert.Equal(t, models.TrendStable, result.Trend)
}

func TestCalculateMTBFNoFailures(t *testing.T) {
	e := newTestEngine()

	result := e.CalculateMTBF("EQ1", 365)

	require.Equal(t, 0, result.FailureCount)
	// Zero observed failures reports the full available operating time.
	assert.InDelta(t, 365*16.0, result.MTBFHours, 1e-9)
	assert.InDelta(t, result.TotalOperatingHours, result.MTBFHours, 1e-9)
	assert.InDelta(t, 0.5, result.ConfidenceLevel, 1e-9)
	assert.Equal(t, models.TrendStable, result.Trend)
}

func TestCalculateMTBFOperatingHoursFloor(t *testing.T) {
	e := newTestEngine()
	e.LoadEvents([]models.FailureEvent{
		failureDaysAgo("EQ1", 100, 9000),
	})

	result := e.CalculateMTBF("EQ1", 365)
	// Downtime exceeding the schedule floors operating time at 1h.
	require.InDelta(t, 1.0, result.TotalOperatingHours, 1e-9)
	require.InDelta(t, 1.0, result.MTBFHours, 1e-9)
}

func TestMTBFTrend(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    models.Trend
	}{
		{
			// First-half gap 10d, second-half gap 100d: failures spreading out.
			name:    "improving",
			daysAgo: []int{330, 320, 150, 50},
			want:    models.TrendImproving,
		},
		{
			// First-half gap 100d, second-half gap 10d: failures bunching up.
			name:    "degrading",
			daysAgo: []int{360, 260, 40, 30},
			want:    models.TrendDegrading,
		},
		{
			name:    "stable",
			daysAgo: []int{300, 250, 150, 100},
			want:    models.TrendStable,
		},
		{
			name:    "too few points",
			daysAgo: []int{300, 30, 10},
			want:    models.TrendStable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			events := make([]models.FailureEvent, 0, len(tc.daysAgo))
			for _, d := range tc.daysAgo {
				events = append(events, failureDaysAgo("EQ1", d, 2))
			}
			e.LoadEvents(events)

			assert.Equal(t, tc.want, e.CalculateMTBF("EQ1", 365).Trend)
		})
	}
}

func TestCalculateMTTRSingleRepair(t *testing.T) {
	e := newTestEngine()
	ev := failureDaysAgo("EQ1", 30, 10)
	ev.RepairHours = 6
	e.LoadEvents([]models.FailureEvent{ev})

	result := e.CalculateMTTR("EQ1", 365)

	require.Equal(t, 1, result.RepairCount)
	assert.InDelta(t, 6.0, result.MTTRHours, 1e-9)
	assert.InDelta(t, 6.0, result.MinRepairTime, 1e-9)
	assert.InDelta(t, 6.0, result.MaxRepairTime, 1e-9)
	assert.InDelta(t, 0.0, result.StdDeviation, 1e-9)
	assert.Equal(t, models.TrendStable, result.Trend)
}

func TestCalculateMTTRNoRepairs(t *testing.T) {
	e := newTestEngine()
	ev := failureDaysAgo("EQ1", 30, 0)
	ev.RepairHours = 0
	e.LoadEvents([]models.FailureEvent{ev})

	result := e.CalculateMTTR("EQ1", 365)

	assert.Equal(t, 0, result.RepairCount)
	assert.Zero(t, result.MTTRHours)
	assert.Zero(t, result.StdDeviation)
	assert.Equal(t, models.TrendStable, result.Trend)
}

func TestMTTRTrendInverted(t *testing.T) {
	e := newTestEngine()
	// Repair times shrink in the second half: improving, not degrading.
	repairs := []struct {
		daysAgo int
		hours   float64
	}{
		{300, 20}, {250, 22}, {150, 6}, {100, 5},
	}
	events := make([]models.FailureEvent, 0, len(repairs))
	for _, r := range repairs {
		ev := failureDaysAgo("EQ1", r.daysAgo, r.hours/0.6)
		ev.RepairHours = r.hours
		events = append(events, ev)
	}
	e.LoadEvents(events)

	result := e.CalculateMTTR("EQ1", 365)
	require.Equal(t, models.TrendImproving, result.Trend)
	assert.Greater(t, result.StdDeviation, 0.0)
}

func TestCalculateAvailability(t *testing.T) {
	e := newTestEngine()
	e.LoadEvents([]models.FailureEvent{
		failureDaysAgo("EQ1", 100, 60),
		failureDaysAgo("EQ1", 50, 40),
	})

	result := e.CalculateAvailability("EQ1", 365)

	potential := 365 * 16.0
	assert.InDelta(t, 100.0, result.UnplannedDowntimeHours, 1e-9)
	assert.InDelta(t, potential*0.05, result.PlannedDowntimeHours, 1e-9)
	assert.InDelta(t, potential-100, result.UptimeHours, 1e-9)
	assert.InDelta(t, (potential-100)/potential*100, result.AvailabilityPercent, 1e-9)
	assert.InDelta(t, 365*24.0, result.TotalPeriodHours, 1e-9)
	// Invariant: uptime + unplanned downtime equals potential operating hours.
	assert.InDelta(t, potential, result.UptimeHours+result.UnplannedDowntimeHours, 1e-9)
}

func TestCalculateAvailabilityClamped(t *testing.T) {
	e := newTestEngine()
	e.LoadEvents([]models.FailureEvent{
		failureDaysAgo("EQ1", 100, 10000),
	})

	result := e.CalculateAvailability("EQ1", 365)
	require.InDelta(t, 0.0, result.AvailabilityPercent, 1e-9)
}
