package planner

import (
	"strings"
	"unicode"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/geo"
)

// secondaryCategories are the supplementary stop types searched after the
// heritage destinations.
var secondaryCategories = map[string]struct{}{
	domain.CategoryAttraction:     {},
	domain.CategoryRestaurant:     {},
	domain.CategoryMuseum:         {},
	domain.CategoryLandmark:       {},
	domain.CategoryScenicSpot:     {},
	domain.CategoryHistoricSite:   {},
	domain.CategoryCulturalSite:   {},
	domain.CategoryDriveInTheater: {},
	domain.CategoryGasStation:     {},
	domain.CategoryMotel:          {},
}

// Discovery is the outcome of the two-tier stop search.
type Discovery struct {
	// Stops is every relevant, deduplicated stop in travel order.
	Stops []domain.Waypoint
	// Primary is the subset of Stops that are heritage destinations.
	Primary []domain.Waypoint
	// Duplicates counts stops dropped by deduplication.
	Duplicates int
}

// IsPrimary reports whether w belongs to the heritage-destination tier.
func IsPrimary(w domain.Waypoint) bool {
	return w.IsMajor || w.Heritage == domain.HeritageHigh
}

// IsSecondary reports whether w's category is one of the supplementary types.
func IsSecondary(w domain.Waypoint) bool {
	_, ok := secondaryCategories[w.Category]
	return ok
}

// Relevant reports whether candidate is geographically on the way from start
// to end: its longitude must lie strictly between theirs and the detour it
// adds must stay under the corridor width. Unusable coordinates never qualify.
func Relevant(candidate, start, end domain.Waypoint, limits domain.PlanningLimits) bool {
	if !candidate.HasValidCoordinates() {
		return false
	}
	if !geo.LngBetween(candidate.Lng, start.Lng, end.Lng) {
		return false
	}
	detour := geo.Distance(start, candidate) + geo.Distance(candidate, end) - geo.Distance(start, end)
	return detour < limits.CorridorMiles
}

// DiscoverStops searches the boundary's candidates in two tiers, primary
// destinations first, then supplementary categories. Both tiers pass the same
// relevance filter; the concatenation is deduplicated (earlier entries win, so
// a heritage city beats a same-named attraction) and returned in travel order.
func DiscoverStops(b Boundary, limits domain.PlanningLimits) Discovery {
	var primary, secondary []domain.Waypoint
	for _, w := range b.Between {
		if !Relevant(w, b.Start, b.End, limits) {
			continue
		}
		switch {
		case IsPrimary(w):
			primary = append(primary, w)
		case IsSecondary(w):
			secondary = append(secondary, w)
		}
	}

	combined := append(primary, secondary...)
	kept := Deduplicate(combined, limits.DuplicateRadiusMiles)
	sortByProgress(kept, b.Westbound())

	d := Discovery{Stops: kept, Duplicates: len(combined) - len(kept)}
	for _, w := range kept {
		if IsPrimary(w) {
			d.Primary = append(d.Primary, w)
		}
	}
	return d
}

// Deduplicate drops stops that duplicate an earlier one. Two stops are
// duplicates when their names share a token and they are within radius miles
// of each other; when either lacks usable coordinates the name check alone decides.
func Deduplicate(stops []domain.Waypoint, radius float64) []domain.Waypoint {
	kept := make([]domain.Waypoint, 0, len(stops))
	for _, s := range stops {
		dup := false
		for _, k := range kept {
			if IsDuplicate(s, k, radius) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, s)
		}
	}
	return kept
}

// IsDuplicate implements the pairwise rule used by Deduplicate.
func IsDuplicate(a, b domain.Waypoint, radius float64) bool {
	if !shareNameToken(a.Name, b.Name) {
		return false
	}
	if !a.HasValidCoordinates() || !b.HasValidCoordinates() {
		return true
	}
	return geo.Distance(a, b) <= radius
}

// stopTokens are too common in Route 66 names to say anything about identity.
var stopTokens = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "route": {}, "66": {}, "historic": {}, "old": {},
}

func nameTokens(name string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, skip := stopTokens[f]; skip {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

func shareNameToken(a, b string) bool {
	ta := nameTokens(a)
	for t := range nameTokens(b) {
		if _, ok := ta[t]; ok {
			return true
		}
	}
	return false
}
