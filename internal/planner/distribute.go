package planner

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/geo"
)

// LimitedAttractionsAdvisory is attached to plans built by distance-proportional
// splitting.
const LimitedAttractionsAdvisory = "Some days may have fewer attractions because few Route 66 stops lie along this stretch"

// targetWindow is how far, as a fraction of the day's target, a real stop's
// distance may stray before an en-route overnight point is used instead.
const targetWindow = 0.5

// LegFunc measures the leg between two waypoints.
type LegFunc func(from, to domain.Waypoint) domain.Leg

// HaversineLeg measures a leg as great-circle miles with no authoritative duration.
func HaversineLeg(from, to domain.Waypoint) domain.Leg {
	return domain.Leg{Miles: geo.Distance(from, to)}
}

// Distribution is the outcome of partitioning a stop sequence into days.
type Distribution struct {
	Segments []domain.DailySegment
	// Proportional is true when the sequence had too few stops and the days
	// were split by distance instead.
	Proportional bool
}

// Distribute partitions seq (start, intermediates in travel order, end) into
// exactly days segments.
//
// With at least one leg per day available, the day boundaries are evenly
// spaced sequence indexes and every endpoint is a real stop, provided every
// such day fits the ceilings. Otherwise each day aims at an equal share of the
// remaining distance: the best-scoring look-ahead stop within the window is
// used, or an overnight point is interpolated toward the end. The final day
// always ends at seq's last element.
func Distribute(seq []domain.Waypoint, days int, limits domain.PlanningLimits, leg LegFunc) (Distribution, error) {
	if days < 1 {
		return Distribution{}, &domain.InfeasibleRequestError{Reason: fmt.Sprintf("cannot split a trip into %d days", days)}
	}
	if len(seq) < 2 {
		return Distribution{}, &domain.InfeasibleRequestError{Reason: "a trip needs a start and an end"}
	}
	if leg == nil {
		leg = HaversineLeg
	}

	if len(seq)-1 >= days {
		if segments, ok := distributeByIndex(seq, days, limits, leg); ok {
			return Distribution{Segments: segments}, nil
		}
	}
	return Distribution{Segments: distributeByDistance(seq, days, limits, leg), Proportional: true}, nil
}

// distributeByIndex reports false when any index-spaced day breaks a ceiling,
// e.g. when the stops bunch up at one end of the route.
func distributeByIndex(seq []domain.Waypoint, days int, limits domain.PlanningLimits, leg LegFunc) ([]domain.DailySegment, bool) {
	last := len(seq) - 1
	segments := make([]domain.DailySegment, 0, days)
	prev := 0
	for day := 1; day <= days; day++ {
		idx := day * last / days
		seg, fits := newSegment(day, seq[prev], seq[idx], leg, limits)
		if !fits {
			return nil, false
		}
		segments = append(segments, seg)
		prev = idx
	}
	return segments, true
}

func distributeByDistance(seq []domain.Waypoint, days int, limits domain.PlanningLimits, leg LegFunc) []domain.DailySegment {
	end := seq[len(seq)-1]
	current := seq[0]
	remaining := append([]domain.Waypoint(nil), seq[1:len(seq)-1]...)

	segments := make([]domain.DailySegment, 0, days)
	for day := 1; day <= days; day++ {
		if day == days {
			seg, _ := newSegment(day, current, end, leg, limits)
			segments = append(segments, seg)
			break
		}

		daysLeft := days - day + 1
		left := geo.Distance(current, end)
		target := left / float64(daysLeft)

		var next domain.Waypoint
		if c, idx, ok := pickLookAhead(current, remaining, end, target, daysLeft == 2, limits); ok {
			next = c.Stop
			remaining = remaining[idx+1:]
		} else {
			f := 1.0
			if left > 0 {
				f = math.Min(target, limits.MaxDailyMiles) / left
			}
			next = overnightPoint(current, end, f, day)
			remaining = aheadOf(remaining, next, end)
		}

		seg, _ := newSegment(day, current, next, leg, limits)
		segments = append(segments, seg)
		current = next
	}
	return segments
}

// pickLookAhead scores the remaining stops by cumulative distance from current
// and returns the winner with its index in remaining.
func pickLookAhead(current domain.Waypoint, remaining []domain.Waypoint, end domain.Waypoint, target float64, lastSegment bool, limits domain.PlanningLimits) (Candidate, int, bool) {
	var (
		candidates []Candidate
		indexes    []int
		cumulative float64
		prev       = current
	)
	for i, r := range remaining {
		cumulative += geo.Distance(prev, r)
		prev = r
		if cumulative > limits.MaxDailyMiles {
			break
		}
		if math.Abs(cumulative-target) > target*targetWindow {
			continue
		}
		candidates = append(candidates, Candidate{Stop: r, Miles: cumulative})
		indexes = append(indexes, i)
	}

	best, i, ok := SelectNextStop(candidates, ScoreInput{
		Final:       end,
		TargetMiles: target,
		LastSegment: lastSegment,
		Limits:      limits,
	})
	if !ok {
		return Candidate{}, 0, false
	}
	return best, indexes[i], true
}

// overnightPoint interpolates a stop fraction f of the way from current to end.
func overnightPoint(current, end domain.Waypoint, f float64, day int) domain.Waypoint {
	lat, lng := geo.Interpolate(current, end, f)
	name := fmt.Sprintf("Overnight en route to %s (day %d)", end.Name, day)
	return domain.Waypoint{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("overnight:%.5f,%.5f", lat, lng))),
		Name:     name,
		City:     name,
		State:    end.State,
		Lat:      lat,
		Lng:      lng,
		Category: domain.CategoryOvernight,
		Heritage: domain.HeritageNone,
	}
}

// aheadOf keeps the stops that still lie between pos and end.
func aheadOf(stops []domain.Waypoint, pos, end domain.Waypoint) []domain.Waypoint {
	var out []domain.Waypoint
	for _, s := range stops {
		if geo.LngBetween(s.Lng, pos.Lng, end.Lng) {
			out = append(out, s)
		}
	}
	return out
}

// newSegment builds one day and reports whether it fits the ceilings.
func newSegment(day int, from, to domain.Waypoint, leg LegFunc, limits domain.PlanningLimits) (domain.DailySegment, bool) {
	l := leg(from, to)
	hours, capped := segmentHours(l, limits)
	fits := !capped && hours <= limits.MaxDriveHours
	return domain.DailySegment{
		Day:           day,
		Start:         from,
		End:           to,
		DistanceMiles: l.Miles,
		DriveHours:    hours,
		Stops:         []domain.Waypoint{to},
		Description:   fmt.Sprintf("Day %d: %s to %s, %.0f miles (about %.1f hours)", day, from.Name, to.Name, l.Miles, hours),
	}, fits
}

// segmentHours prefers an authoritative duration when the provider supplied
// one. Provider durations are not capped here so that Enforce can report them.
// capped is true when the leg is longer than limits.MaxDailyMiles.
func segmentHours(l domain.Leg, limits domain.PlanningLimits) (hours float64, capped bool) {
	est := geo.EstimateDrive(l.Miles, limits)
	if l.DurationSeconds > 0 {
		return math.Max(limits.MinDriveHours, l.DurationSeconds/3600), est.Capped
	}
	return est.Hours, est.Capped
}
