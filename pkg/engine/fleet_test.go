package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

func TestEquipmentSummaryRanksWorstFirst(t *testing.T) {
	e := newTestEngine()

	events := []models.FailureEvent{
		// HEALTHY: one brief failure.
		failureDaysAgo("HEALTHY", 200, 2),
		// DEGRADED: enough downtime to push availability below 80%.
		failureDaysAgo("DEGRADED", 100, 1500),
		// Unknown equipment must not appear in the fleet view.
		failureDaysAgo(models.UnknownCode, 50, 10),
	}
	e.LoadEvents(events)

	summary := e.EquipmentSummary(365)

	require.Equal(t, 2, summary.TotalEquipment)
	require.Len(t, summary.Equipment, 2)
	assert.Equal(t, "DEGRADED", summary.Equipment[0].EquipmentID)
	assert.Equal(t, "HEALTHY", summary.Equipment[1].EquipmentID)

	assert.Equal(t, models.RiskCritical, summary.Equipment[0].Score.RiskLevel)
	assert.Equal(t, 1, summary.CriticalRiskCount)
	assert.Equal(t, 0, summary.HighRiskCount)

	wantAvgScore := (summary.Equipment[0].Score.OverallScore + summary.Equipment[1].Score.OverallScore) / 2
	assert.InDelta(t, wantAvgScore, summary.AverageReliabilityScore, 1e-9)
	wantAvgAvail := (summary.Equipment[0].Availability.AvailabilityPercent + summary.Equipment[1].Availability.AvailabilityPercent) / 2
	assert.InDelta(t, wantAvgAvail, summary.AverageAvailability, 1e-9)
}

func TestEquipmentSummaryEmptyFleet(t *testing.T) {
	e := newTestEngine()

	summary := e.EquipmentSummary(365)

	assert.Zero(t, summary.TotalEquipment)
	assert.Empty(t, summary.Equipment)
	assert.Zero(t, summary.AverageReliabilityScore)
	assert.Zero(t, summary.AverageAvailability)
}

func TestEquipmentSummaryTieBreaksDeterministic(t *testing.T) {
	e := newTestEngine()
	// Two identical equipments: ordering falls back to the equipment id.
	e.LoadEvents([]models.FailureEvent{
		failureDaysAgo("EQ-B", 100, 2),
		failureDaysAgo("EQ-A", 100, 2),
	})

	summary := e.EquipmentSummary(365)

	require.Len(t, summary.Equipment, 2)
	assert.Equal(t, "EQ-A", summary.Equipment[0].EquipmentID)
	assert.Equal(t, "EQ-B", summary.Equipment[1].EquipmentID)
}
