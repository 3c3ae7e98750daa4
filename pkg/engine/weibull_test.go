package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

func TestWeibullDefaultsOnSparseHistory(t *testing.T) {
	e := newTestEngine()
	e.LoadEvents([]models.FailureEvent{
		failureDaysAgo("EQ1", 100, 5),
		failureDaysAgo("EQ1", 50, 5),
	})

	result := e.EstimateWeibullParameters("EQ1", 365)

	assert.InDelta(t, 1.0, result.ShapeParameter, 1e-9)
	assert.InDelta(t, 1000.0, result.ScaleParameter, 1e-9)
	assert.Equal(t, models.PatternRandom, result.FailurePattern)
	assert.Equal(t, map[int]float64{30: 0.95, 90: 0.85, 180: 0.75, 365: 0.60}, result.ReliabilityAtTime)
}

func TestWeibullRegularGapsReadAsWearOut(t *testing.T) {
	e := newTestEngine()
	// Two inter-failure gaps of exactly 1000h each: cv ~ 0.
	e.LoadEvents([]models.FailureEvent{
		failureHoursAgo("EQ1", 2500, 2),
		failureHoursAgo("EQ1", 1500, 2),
		failureHoursAgo("EQ1", 500, 2),
	})

	result := e.EstimateWeibullParameters("EQ1", 365)

	require.InDelta(t, 3.0, result.ShapeParameter, 1e-9)
	assert.Equal(t, models.PatternWearOut, result.FailurePattern)
	assert.InDelta(t, 1000/math.Gamma(1+1.0/3), result.ScaleParameter, 1e-6)
}

func TestWeibullErraticGapsReadAsInfantMortality(t *testing.T) {
	e := newTestEngine()
	// Gaps of 10h, 10h, 3000h: cv well above 1.2.
	e.LoadEvents([]models.FailureEvent{
		failureHoursAgo("EQ1", 3500, 1),
		failureHoursAgo("EQ1", 3490, 1),
		failureHoursAgo("EQ1", 3480, 1),
		failureHoursAgo("EQ1", 480, 1),
	})

	result := e.EstimateWeibullParameters("EQ1", 365)

	require.InDelta(t, 0.7, result.ShapeParameter, 1e-9)
	assert.Equal(t, models.PatternInfantMortality, result.FailurePattern)
}

func TestWeibullZeroGapsFallBackToDefaults(t *testing.T) {
	e := newTestEngine()
	// Three notifications with the same timestamp: no positive gaps survive.
	same := failureHoursAgo("EQ1", 500, 1)
	e.LoadEvents([]models.FailureEvent{same, same, same})

	result := e.EstimateWeibullParameters("EQ1", 365)
	require.InDelta(t, 1.0, result.ShapeParameter, 1e-9)
	require.InDelta(t, 1000.0, result.ScaleParameter, 1e-9)
}

func TestWeibullReliabilityCurveMonotone(t *testing.T) {
	e := newTestEngine()
	e.LoadEvents([]models.FailureEvent{
		failureHoursAgo("EQ1", 2600, 2),
		failureHoursAgo("EQ1", 1700, 2),
		failureHoursAgo("EQ1", 900, 2),
		failureHoursAgo("EQ1", 100, 2),
	})

	result := e.EstimateWeibullParameters("EQ1", 365)

	prev := 1.0
	for _, days := range []int{30, 90, 180, 365} {
		r, ok := result.ReliabilityAtTime[days]
		require.True(t, ok, "missing horizon %d", days)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
		assert.LessOrEqual(t, r, prev, "R(t) must not increase with t")
		prev = r
	}
}
