package planner

import (
	"math"
	"strings"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/geo"
)

// lastLegPenalty is added when picking a stop would leave a final day longer
// than the mile ceiling.
const lastLegPenalty = 200

// HeritageBonus is subtracted from a candidate's score.
func HeritageBonus(h domain.Heritage) float64 {
	switch h {
	case domain.HeritageHigh:
		return 150
	case domain.HeritageMedium:
		return 75
	case domain.HeritageLow:
		return 25
	default:
		return 0
	}
}

// CategoryBonus is subtracted from a candidate's score.
func CategoryBonus(category string) float64 {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "heritage"), strings.Contains(c, "historic"):
		return 100
	case strings.Contains(c, "museum"), strings.Contains(c, "cultural"):
		return 80
	case strings.Contains(c, "landmark"), strings.Contains(c, "attraction"):
		return 60
	case strings.Contains(c, "restaurant"), strings.Contains(c, "drive_in"), strings.Contains(c, "drive-in"):
		return 40
	default:
		return 0
	}
}

// Candidate is a possible next stop and the miles needed to reach it from the
// current position.
type Candidate struct {
	Stop  domain.Waypoint
	Miles float64
}

// ScoreInput is the context a candidate is scored in.
type ScoreInput struct {
	Final domain.Waypoint
	// TargetMiles is the desired distance for this day. Zero disables the
	// distance term.
	TargetMiles float64
	// LastSegment is set when the leg after this stop will be the final day.
	LastSegment bool
	Limits      domain.PlanningLimits
}

// ScoreCandidate scores c; lower is better. ok is false when reaching the
// candidate would break the mile or drive-time ceiling, in which case the
// candidate must never be selected.
func ScoreCandidate(c Candidate, in ScoreInput) (score float64, ok bool) {
	if math.IsNaN(c.Miles) || c.Miles > in.Limits.MaxDailyMiles {
		return 0, false
	}
	if geo.UncappedDriveHours(c.Miles) > in.Limits.MaxDriveHours {
		return 0, false
	}

	if in.TargetMiles > 0 {
		score = math.Abs(c.Miles-in.TargetMiles) * 0.5
	}
	score -= HeritageBonus(c.Stop.Heritage)
	score -= CategoryBonus(c.Stop.Category)

	if in.LastSegment && geo.Distance(c.Stop, in.Final) > in.Limits.MaxDailyMiles {
		score += lastLegPenalty
	}
	return score, true
}

// SelectNextStop returns the best-scoring candidate and its index. Ties keep
// the earlier candidate. ok is false when every candidate is excluded.
func SelectNextStop(candidates []Candidate, in ScoreInput) (best Candidate, index int, ok bool) {
	bestScore := math.Inf(1)
	for i, c := range candidates {
		s, valid := ScoreCandidate(c, in)
		if !valid {
			continue
		}
		if s < bestScore {
			bestScore = s
			best, index, ok = c, i, true
		}
	}
	return best, index, ok
}
