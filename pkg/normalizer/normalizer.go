// Package normalizer maps raw maintenance-notification records onto the
// FailureEvent entities the analytics engine computes over. Records arrive as
// loosely-typed maps from the data/integration layer; normalization is
// best-effort and never rejects a row.
package normalizer

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/daniilmars/pm-reliability-engine/pkg/models"
)

// Record is one raw notification as handed over by the integration layer.
// Unknown keys are ignored; missing keys default to empty values.
type Record map[string]any

// repairTimeShare is the fixed heuristic deriving repair time from measured
// downtime: repair work is assumed to take 60% of the total outage. This is a
// load-bearing business rule, not an approximation to tune.
const repairTimeShare = 0.6

// dateLayouts are tried in order when parsing notification timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer converts raw notification records into failure events.
type Normalizer struct{}

// New constructs a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a batch of raw records. Rows that cannot be parsed are
// still included with zeroed times and nil dates, which keeps them visible to
// FMEA grouping while excluding them from any date-windowed calculation.
func (n *Normalizer) Normalize(records []Record) []models.FailureEvent {
	events := make([]models.FailureEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, n.normalizeOne(rec))
	}
	return events
}

func (n *Normalizer) normalizeOne(rec Record) models.FailureEvent {
	created := ParseDate(cast.ToString(rec["CreationDate"]))
	completed := ParseDate(cast.ToString(rec["CompletionDate"]))
	malfunctionStart := ParseDate(cast.ToString(rec["MalfunctionStart"]))
	malfunctionEnd := ParseDate(cast.ToString(rec["MalfunctionEnd"]))

	downtime := deriveDowntime(malfunctionStart, malfunctionEnd, created, completed)

	failureDate := malfunctionStart
	if failureDate == nil {
		failureDate = created
	}

	return models.FailureEvent{
		NotificationID:     cast.ToString(rec["NotificationId"]),
		EquipmentID:        stringOr(rec, "EquipmentNumber", models.UnknownCode),
		FunctionalLocation: cast.ToString(rec["FunctionalLocation"]),
		FailureDate:        failureDate,
		RepairCompleted:    completed,
		FailureMode:        stringOr(rec, "DamageCode", models.UnknownCode),
		FailureCause:       stringOr(rec, "CauseCode", models.UnknownCode),
		DamageCode:         cast.ToString(rec["DamageCode"]),
		DowntimeHours:      downtime,
		RepairHours:        downtime * repairTimeShare,
		Severity:           mapSeverity(cast.ToString(rec["Priority"]), cast.ToString(rec["NotificationType"])),
		Description:        cast.ToString(rec["Description"]),
	}
}

// ParseDate accepts ISO-8601 timestamps (with or without zone suffix) and a
// plain date fallback. Unparsable or empty input yields nil.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// deriveDowntime prefers the malfunction window, falls back to the
// notification lifecycle window, and clamps negatives to zero.
func deriveDowntime(malfunctionStart, malfunctionEnd, created, completed *time.Time) float64 {
	var hours float64
	switch {
	case malfunctionStart != nil && malfunctionEnd != nil:
		hours = malfunctionEnd.Sub(*malfunctionStart).Hours()
	case created != nil && completed != nil:
		hours = completed.Sub(*created).Hours()
	default:
		return 0
	}
	if hours < 0 {
		return 0
	}
	return hours
}

// mapSeverity applies the priority-to-severity contract: priority 1 and any
// safety-flagged notification type are critical.
func mapSeverity(priority, notificationType string) models.Severity {
	if strings.Contains(strings.ToUpper(notificationType), "SAFETY") {
		return models.SeverityCritical
	}
	switch strings.TrimSpace(priority) {
	case "1":
		return models.SeverityCritical
	case "2":
		return models.SeverityHigh
	case "3":
		return models.SeverityMedium
	case "4":
		return models.SeverityLow
	default:
		return models.SeverityNegligible
	}
}

func stringOr(rec Record, key, fallback string) string {
	if v := strings.TrimSpace(cast.ToString(rec[key])); v != "" {
		return v
	}
	return fallback
}
