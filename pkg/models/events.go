package models

import "time"

// Severity grades the operational impact of a failure. The numeric values
// participate in FMEA severity arithmetic, so they are part of the contract,
// not just labels.
type Severity int

const (
	SeverityNegligible Severity = 1
	SeverityLow        Severity = 3
	SeverityMedium     Severity = 5
	SeverityHigh       Severity = 8
	SeverityCritical   Severity = 10
)

// String returns the canonical lowercase label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	default:
		return "negligible"
	}
}

// UnknownCode is the sentinel used when a notification carries no damage or
// equipment code. Events with an unknown failure mode are skipped by FMEA
// grouping, and unknown equipment ids are skipped by fleet aggregation.
const UnknownCode = "UNKNOWN"

// FailureEvent is one normalized maintenance notification that represents an
// equipment failure. Events are immutable once created; the engine holds them
// in an ordered collection scoped to one analytics session.
type FailureEvent struct {
	NotificationID     string     `json:"notification_id"`
	EquipmentID        string     `json:"equipment_id"`
	FunctionalLocation string     `json:"functional_location"`
	FailureDate        *time.Time `json:"failure_date,omitempty"`
	RepairCompleted    *time.Time `json:"repair_completed_date,omitempty"`
	FailureMode        string     `json:"failure_mode"`
	FailureCause       string     `json:"failure_cause"`
	DamageCode         string     `json:"damage_code"`
	DowntimeHours      float64    `json:"downtime_hours"`
	RepairHours        float64    `json:"repair_hours"`
	Severity           Severity   `json:"severity"`
	Description        string     `json:"description"`
}

// InPeriod reports whether the event's failure date falls inside [start, end].
// Events without a parseable failure date never satisfy a date window.
func (e FailureEvent) InPeriod(start, end time.Time) bool {
	if e.FailureDate == nil {
		return false
	}
	d := *e.FailureDate
	return !d.Before(start) && !d.After(end)
}
