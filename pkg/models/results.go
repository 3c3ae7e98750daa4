package models

// Trend describes the direction a metric is moving across the analysis window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDegrading Trend = "degrading"
)

// RiskLevel buckets a composite reliability score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// rank orders risk levels worst-first for fleet sorting.
func (r RiskLevel) rank() int {
	switch r {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	default:
		return 3
	}
}

// MoreSevere reports whether r ranks ahead of other (critical before high
// before medium before low).
func (r RiskLevel) MoreSevere(other RiskLevel) bool {
	return r.rank() < other.rank()
}

// Urgency grades how soon maintenance should happen.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencySoon      Urgency = "soon"
	UrgencyScheduled Urgency = "scheduled"
	UrgencyMonitor   Urgency = "monitor"
)

// FailurePattern classifies the Weibull shape parameter.
type FailurePattern string

const (
	PatternInfantMortality FailurePattern = "infant_mortality"
	PatternRandom          FailurePattern = "random"
	PatternWearOut         FailurePattern = "wear_out"
)

// MTBFResult reports mean time between failures for one equipment.
type MTBFResult struct {
	EquipmentID         string  `json:"equipment_id"`
	MTBFHours           float64 `json:"mtbf_hours"`
	MTBFDays            float64 `json:"mtbf_days"`
	TotalOperatingHours float64 `json:"total_operating_hours"`
	FailureCount        int     `json:"failure_count"`
	PeriodDays          int     `json:"period_days"`
	ConfidenceLevel     float64 `json:"confidence_level"`
	Trend               Trend   `json:"trend"`
}

// MTTRResult reports mean time to repair for one equipment.
type MTTRResult struct {
	EquipmentID   string  `json:"equipment_id"`
	MTTRHours     float64 `json:"mttr_hours"`
	MinRepairTime float64 `json:"min_repair_time"`
	MaxRepairTime float64 `json:"max_repair_time"`
	RepairCount   int     `json:"repair_count"`
	StdDeviation  float64 `json:"std_deviation"`
	Trend         Trend   `json:"trend"`
}

// AvailabilityResult reports uptime against the assumed operating schedule.
type AvailabilityResult struct {
	EquipmentID            string  `json:"equipment_id"`
	AvailabilityPercent    float64 `json:"availability_percent"`
	UptimeHours            float64 `json:"uptime_hours"`
	DowntimeHours          float64 `json:"downtime_hours"`
	PlannedDowntimeHours   float64 `json:"planned_downtime_hours"`
	UnplannedDowntimeHours float64 `json:"unplanned_downtime_hours"`
	TotalPeriodHours       float64 `json:"total_period_hours"`
}

// FMEAItem is one failure mode with its risk priority number.
type FMEAItem struct {
	FailureMode       string   `json:"failure_mode"`
	PotentialEffect   string   `json:"potential_effect"`
	Severity          int      `json:"severity"`
	Occurrence        int      `json:"occurrence"`
	Detection         int      `json:"detection"`
	RPN               int      `json:"rpn"`
	RecommendedAction string   `json:"recommended_action"`
	CurrentControls   string   `json:"current_controls"`
	EquipmentAffected []string `json:"equipment_affected"`
	OccurrenceCount   int      `json:"occurrence_count"`
}

// ReliabilityScore is the composite 0-100 equipment health score.
type ReliabilityScore struct {
	EquipmentID                string    `json:"equipment_id"`
	OverallScore               float64   `json:"overall_score"`
	MTBFScore                  float64   `json:"mtbf_score"`
	MTTRScore                  float64   `json:"mttr_score"`
	AvailabilityScore          float64   `json:"availability_score"`
	FailureTrendScore          float64   `json:"failure_trend_score"`
	MaintenanceComplianceScore float64   `json:"maintenance_compliance_score"`
	RiskLevel                  RiskLevel `json:"risk_level"`
	Recommendations            []string  `json:"recommendations"`
}

// WeibullParameters holds the estimated failure distribution for one equipment.
type WeibullParameters struct {
	EquipmentID       string          `json:"equipment_id"`
	ShapeParameter    float64         `json:"shape_parameter"`
	ScaleParameter    float64         `json:"scale_parameter"`
	FailurePattern    FailurePattern  `json:"failure_pattern"`
	ReliabilityAtTime map[int]float64 `json:"reliability_at_time"`
}

// ContributingFactor explains one input to a predictive indicator.
type ContributingFactor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

// PredictiveMaintenanceIndicator forecasts near-term failure risk.
type PredictiveMaintenanceIndicator struct {
	EquipmentID                 string               `json:"equipment_id"`
	PredictedFailureProbability float64              `json:"predicted_failure_probability"`
	RecommendedAction           string               `json:"recommended_action"`
	Urgency                     Urgency              `json:"urgency"`
	EstimatedRemainingLifeDays  float64              `json:"estimated_remaining_life_days"`
	ConfidenceLevel             float64              `json:"confidence_level"`
	ContributingFactors         []ContributingFactor `json:"contributing_factors"`
}

// EquipmentSummary bundles the per-equipment fleet view.
type EquipmentSummary struct {
	EquipmentID  string                         `json:"equipment_id"`
	Score        ReliabilityScore               `json:"reliability_score"`
	Availability AvailabilityResult             `json:"availability"`
	Predictive   PredictiveMaintenanceIndicator `json:"predictive_indicator"`
}

// FleetSummary aggregates reliability across every known equipment.
type FleetSummary struct {
	TotalEquipment          int                `json:"total_equipment"`
	AverageReliabilityScore float64            `json:"average_reliability_score"`
	AverageAvailability     float64            `json:"average_availability"`
	CriticalRiskCount       int                `json:"critical_risk_count"`
	HighRiskCount           int                `json:"high_risk_count"`
	Equipment               []EquipmentSummary `json:"equipment"`
}
