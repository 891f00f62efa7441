package domain

import (
	"fmt"
	"strings"
)

// PlanningLimits is the single source of truth for every ceiling the planner
// enforces. It is threaded explicitly through each pipeline stage.
type PlanningLimits struct {
	// MaxDriveHours is the absolute per-day drive time ceiling.
	MaxDriveHours float64
	// MaxDailyMiles is the absolute per-day distance ceiling.
	MaxDailyMiles float64
	// MinDriveHours is the smallest drive time ever reported for a segment.
	MinDriveHours float64

	MinDays int
	MaxDays int

	// CorridorMiles is the maximum detour for a stop to count as on the way.
	CorridorMiles float64
	// DuplicateRadiusMiles is how close two similarly named stops must be
	// before one is dropped as a duplicate.
	DuplicateRadiusMiles float64
}

// Preset names accepted by LimitsPreset.
const (
	PresetHeritage   = "heritage"
	PresetCalculator = "calculator"
)

// HeritageLimits are the ceilings used by the heritage-cities planner:
// 10 hours and 500 miles per day.
func HeritageLimits() PlanningLimits {
	return PlanningLimits{
		MaxDriveHours:        10,
		MaxDailyMiles:        500,
		MinDriveHours:        0.5,
		MinDays:              1,
		MaxDays:              14,
		CorridorMiles:        200,
		DuplicateRadiusMiles: 5,
	}
}

// CalculatorLimits are the tighter ceilings used by the trip calculator:
// 8 hours and 450 miles per day.
func CalculatorLimits() PlanningLimits {
	l := HeritageLimits()
	l.MaxDriveHours = 8
	l.MaxDailyMiles = 450
	return l
}

// LimitsPreset returns the named preset.
func LimitsPreset(name string) (PlanningLimits, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetHeritage:
		return HeritageLimits(), nil
	case PresetCalculator:
		return CalculatorLimits(), nil
	default:
		return PlanningLimits{}, fmt.Errorf("%w: unknown planning limits preset %q", ErrValidation, name)
	}
}

// Validate rejects limits that would make the pipeline meaningless.
func (l PlanningLimits) Validate() error {
	switch {
	case l.MaxDriveHours <= 0 || l.MaxDailyMiles <= 0:
		return fmt.Errorf("%w: drive ceilings must be positive", ErrValidation)
	case l.MinDriveHours <= 0 || l.MinDriveHours > l.MaxDriveHours:
		return fmt.Errorf("%w: min drive hours must be in (0, max]", ErrValidation)
	case l.MinDays < 1 || l.MaxDays < l.MinDays:
		return fmt.Errorf("%w: day bounds must satisfy 1 <= min <= max", ErrValidation)
	case l.CorridorMiles <= 0:
		return fmt.Errorf("%w: corridor width must be positive", ErrValidation)
	}
	return nil
}
