package planner

import (
	"fmt"

	"github.com/pkordes/route66/internal/domain"
)

// Enforce is the last pass over a distribution. Any segment whose drive time or
// distance exceeds the ceilings is clamped, and every clamp is reported: a
// violation here means upstream selection produced an infeasible day.
// The input slice is not modified.
func Enforce(segments []domain.DailySegment, limits domain.PlanningLimits) ([]domain.DailySegment, domain.ValidationReport) {
	out := make([]domain.DailySegment, len(segments))
	copy(out, segments)

	report := domain.ValidationReport{IsValid: true}
	for i := range out {
		s := &out[i]
		clamped := false

		if s.DriveHours > limits.MaxDriveHours {
			report.Violations = append(report.Violations, domain.Violation{
				Day:         s.Day,
				Description: fmt.Sprintf("drive time %.1fh exceeds the %.0fh limit", s.DriveHours, limits.MaxDriveHours),
			})
			s.DriveHours = limits.MaxDriveHours
			clamped = true
		}
		if s.DistanceMiles > limits.MaxDailyMiles {
			report.Violations = append(report.Violations, domain.Violation{
				Day:         s.Day,
				Description: fmt.Sprintf("distance %.0f mi exceeds the %.0f mi limit", s.DistanceMiles, limits.MaxDailyMiles),
			})
			s.DistanceMiles = limits.MaxDailyMiles
			clamped = true
		}

		if clamped {
			s.Description = fmt.Sprintf("Day %d: %s to %s, %.0f miles (about %.1f hours, limited to the daily maximum)",
				s.Day, s.Start.Name, s.End.Name, s.DistanceMiles, s.DriveHours)
		}
	}

	report.IsValid = len(report.Violations) == 0
	return out, report
}
