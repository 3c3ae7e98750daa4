// Package config carries the tunable parameters of the reliability analytics
// engine. The defaults encode the reliability-engineering heuristics the
// engine was calibrated with; overriding them changes reported risk levels, so
// treat non-default values as a deliberate recalibration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config groups engine parameters and logging settings.
type Config struct {
	Params  Params        `yaml:"params"`
	Logging LoggingConfig `yaml:"logging"`
}

// Params holds the analytical constants applied by every calculation.
type Params struct {
	// OperatingHoursPerDay is the assumed equipment duty cycle.
	OperatingHoursPerDay float64 `yaml:"operatingHoursPerDay"`
	// PlannedDowntimeFactor is the share of potential operating time reserved
	// for planned maintenance.
	PlannedDowntimeFactor float64 `yaml:"plannedDowntimeFactor"`
	// MTBFReferenceHours is the MTBF at which an equipment scores 100.
	MTBFReferenceHours float64 `yaml:"mtbfReferenceHours"`
	// MTTRTargetHours is the repair time that still scores 100.
	MTTRTargetHours float64 `yaml:"mttrTargetHours"`
	// MTTRPenaltyBandHours is the band over which the MTTR score decays to 0.
	MTTRPenaltyBandHours float64 `yaml:"mttrPenaltyBandHours"`
	// MaintenanceComplianceScore substitutes for a PM-order compliance feed.
	// No compliance data source is wired in, so this is supplied by the host.
	MaintenanceComplianceScore float64 `yaml:"maintenanceComplianceScore"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("RELIABILITY_CONFIG")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// Default returns the calibrated parameter set.
func Default() Config {
	return Config{
		Params:  DefaultParams(),
		Logging: LoggingConfig{Level: "info", JSON: false},
	}
}

// DefaultParams returns the heuristic constants the engine was calibrated
// with: a 16h/day duty cycle, 5% planned downtime, a 2000h MTBF reference, a
// 4h repair target with a 20h penalty band, and a fixed compliance score of 85.
func DefaultParams() Params {
	return Params{
		OperatingHoursPerDay:       16.0,
		PlannedDowntimeFactor:      0.05,
		MTBFReferenceHours:         2000.0,
		MTTRTargetHours:            4.0,
		MTTRPenaltyBandHours:       20.0,
		MaintenanceComplianceScore: 85.0,
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RELIABILITY_OPERATING_HOURS_PER_DAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Params.OperatingHoursPerDay = f
		}
	}
	if v := os.Getenv("RELIABILITY_PLANNED_DOWNTIME_FACTOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Params.PlannedDowntimeFactor = f
		}
	}
	if v := os.Getenv("RELIABILITY_MTBF_REFERENCE_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Params.MTBFReferenceHours = f
		}
	}
	if v := os.Getenv("RELIABILITY_MTTR_TARGET_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Params.MTTRTargetHours = f
		}
	}
	if v := os.Getenv("RELIABILITY_MTTR_PENALTY_BAND_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Params.MTTRPenaltyBandHours = f
		}
	}
	if v := os.Getenv("RELIABILITY_MAINTENANCE_COMPLIANCE_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Params.MaintenanceComplianceScore = f
		}
	}
	if v := os.Getenv("RELIABILITY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RELIABILITY_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
}
