// Package planner turns a start city, an end city, a requested day count and a
// pool of candidate waypoints into a validated day-by-day itinerary.
//
// The pipeline runs in fixed order: boundary resolution, constraint policy,
// stop discovery, segment distribution, enforcement, and notice reporting.
// Each stage is a plain function over the previous stage's output so it can be
// tested in isolation; Planner wires them together.
package planner

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/geo"
)

// Boundary is the resolved start and end of a trip plus every usable waypoint
// whose longitude lies strictly between them, ordered in travel direction.
type Boundary struct {
	Start   domain.Waypoint
	End     domain.Waypoint
	Between []domain.Waypoint

	// Skipped holds candidates dropped because their coordinates are unusable.
	Skipped []domain.Waypoint
}

// Westbound reports whether the trip travels toward decreasing longitude.
func (b Boundary) Westbound() bool {
	return b.End.Lng < b.Start.Lng
}

// ResolveBoundary matches startName and endName case-sensitively against the
// waypoint display names in pool.
//
// Returns *domain.NotFoundError when either name has no match and
// *domain.InvalidCoordinateError when a matched endpoint cannot be used for
// distance math. Both are fatal for the planning request.
func ResolveBoundary(startName, endName string, pool []domain.Waypoint) (Boundary, error) {
	start, ok := findByName(pool, startName)
	if !ok {
		return Boundary{}, &domain.NotFoundError{Location: startName}
	}
	end, ok := findByName(pool, endName)
	if !ok {
		return Boundary{}, &domain.NotFoundError{Location: endName}
	}

	for _, w := range []domain.Waypoint{start, end} {
		if !w.HasValidCoordinates() {
			return Boundary{}, &domain.InvalidCoordinateError{Waypoint: w.Name, Lat: w.Lat, Lng: w.Lng}
		}
	}

	if start.Name == end.Name || geo.Distance(start, end) == 0 {
		return Boundary{}, &domain.InfeasibleRequestError{Reason: "start and end must be different places"}
	}

	b := Boundary{Start: start, End: end}
	for _, w := range pool {
		if sameWaypoint(w, start) || sameWaypoint(w, end) {
			continue
		}
		if !w.HasValidCoordinates() {
			b.Skipped = append(b.Skipped, w)
			continue
		}
		if geo.LngBetween(w.Lng, start.Lng, end.Lng) {
			b.Between = append(b.Between, w)
		}
	}
	sortByProgress(b.Between, b.Westbound())

	return b, nil
}

func findByName(pool []domain.Waypoint, name string) (domain.Waypoint, bool) {
	for _, w := range pool {
		if w.Name == name {
			return w, true
		}
	}
	return domain.Waypoint{}, false
}

// sameWaypoint compares by ID when both carry one, otherwise by name.
func sameWaypoint(a, b domain.Waypoint) bool {
	if a.ID != uuid.Nil && b.ID != uuid.Nil {
		return a.ID == b.ID
	}
	return a.Name == b.Name
}

// sortByProgress orders stops from the trip start toward the trip end.
func sortByProgress(stops []domain.Waypoint, westbound bool) {
	slices.SortStableFunc(stops, func(a, b domain.Waypoint) int {
		if westbound {
			return cmp.Compare(b.Lng, a.Lng)
		}
		return cmp.Compare(a.Lng, b.Lng)
	})
}
