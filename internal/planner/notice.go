package planner

import (
	"fmt"

	"github.com/pkordes/route66/internal/domain"
)

// heritageCapDetails are shown whenever a trip was shortened to fit the
// heritage cities on the route.
var heritageCapDetails = []string{
	"Each night is spent in a major Route 66 heritage city",
	"Daily drives stay within safe distance and drive-time limits",
	"Choose a start or end city further apart to plan a longer trip",
}

// BuildNotice maps a plan's adjustments and warnings onto a single notice.
// A day reduction wins over a day increase, which wins over plain warnings;
// warnings are appended to the details of an adjustment notice.
// It returns nil when there is nothing to tell the user.
func BuildNotice(adjustments []domain.Adjustment, warnings []string, originalDays, finalDays int) *domain.AdjustmentNotice {
	var reduced, increased []domain.Adjustment
	for _, a := range adjustments {
		switch a.Kind {
		case domain.AdjustmentDayReduction:
			reduced = append(reduced, a)
		case domain.AdjustmentDayIncrease:
			increased = append(increased, a)
		}
	}

	switch {
	case len(reduced) > 0:
		details := append([]string(nil), heritageCapDetails...)
		details = append(details, warnings...)
		return &domain.AdjustmentNotice{
			Severity: domain.SeverityInfo,
			Title:    "Trip adjusted to Route 66 heritage cities",
			Message: fmt.Sprintf("Your %d-day request was planned as %d days so that every day ends in a heritage city.",
				originalDays, finalDays),
			Details: details,
		}
	case len(increased) > 0:
		details := make([]string, 0, len(increased))
		for _, a := range increased {
			details = append(details, a.Reason)
		}
		details = append(details, warnings...)
		return &domain.AdjustmentNotice{
			Severity: domain.SeverityWarning,
			Title:    "Trip length increased",
			Message:  fmt.Sprintf("Your %d-day request needs %d days to keep daily drives within safe limits.", originalDays, finalDays),
			Details:  details,
		}
	case len(warnings) > 0:
		n := &domain.AdjustmentNotice{
			Severity: domain.SeverityWarning,
			Title:    "Planning notes",
			Message:  warnings[0],
		}
		if len(warnings) > 1 {
			n.Details = append([]string(nil), warnings[1:]...)
		}
		return n
	}
	return nil
}
