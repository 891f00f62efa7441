// Package domain contains the core data types for the Route 66 trip planner.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (geo, planner, repo, service, handler).
package domain

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Heritage ranks a waypoint's historical significance.
type Heritage string

const (
	HeritageHigh   Heritage = "high"
	HeritageMedium Heritage = "medium"
	HeritageLow    Heritage = "low"
	HeritageNone   Heritage = "none"
)

// ParseHeritage maps a stored heritage value onto a Heritage.
// Unknown or empty values become HeritageNone.
func ParseHeritage(s string) Heritage {
	switch Heritage(strings.ToLower(strings.TrimSpace(s))) {
	case HeritageHigh:
		return HeritageHigh
	case HeritageMedium:
		return HeritageMedium
	case HeritageLow:
		return HeritageLow
	default:
		return HeritageNone
	}
}

// Waypoint categories referenced by the planner.
const (
	CategoryDestinationCity = "destination_city"
	CategoryAttraction      = "attraction"
	CategoryRestaurant      = "restaurant"
	CategoryMuseum          = "museum"
	CategoryLandmark        = "landmark"
	CategoryScenicSpot      = "scenic_spot"
	CategoryHistoricSite    = "historic_site"
	CategoryCulturalSite    = "cultural_site"
	CategoryDriveInTheater  = "drive_in_theater"
	CategoryGasStation      = "gas_station"
	CategoryMotel           = "motel"

	// CategoryOvernight marks a point interpolated by the planner when the
	// waypoint pool has no real stop near a day's target distance.
	CategoryOvernight = "overnight"
)

// Waypoint is any point of interest usable as a trip endpoint or stop.
// Waypoints are read-only inputs to the planner.
type Waypoint struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	City     string    `json:"city"`
	State    string    `json:"state"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Category string    `json:"category"`
	Heritage Heritage  `json:"heritage"`

	// IsMajorStop is the raw flag as stored.
	IsMajorStop bool `json:"is_major_stop"`

	// IsMajor is computed once by NormalizeWaypoint and is the only field the
	// planner consults when it needs to know whether a stop is a destination city.
	IsMajor bool `json:"is_major"`
}

// canonicalCities lists the well-known Route 66 overnight cities.
var canonicalCities = map[string]struct{}{
	"chicago":        {},
	"joliet":         {},
	"bloomington":    {},
	"springfield":    {},
	"st. louis":      {},
	"rolla":          {},
	"joplin":         {},
	"tulsa":          {},
	"oklahoma city":  {},
	"elk city":       {},
	"amarillo":       {},
	"tucumcari":      {},
	"santa fe":       {},
	"albuquerque":    {},
	"gallup":         {},
	"holbrook":       {},
	"winslow":        {},
	"flagstaff":      {},
	"williams":       {},
	"kingman":        {},
	"needles":        {},
	"barstow":        {},
	"san bernardino": {},
	"los angeles":    {},
	"santa monica":   {},
}

// IsCanonicalCity reports whether name is one of the well-known
// Route 66 destination cities. Matching ignores case and a trailing state
// suffix such as ", IL".
func IsCanonicalCity(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(n, ","); i >= 0 {
		n = strings.TrimSpace(n[:i])
	}
	_, ok := canonicalCities[n]
	return ok
}

// NormalizeWaypoint fills the derived fields of w. It is called once when
// waypoints are loaded so that later stages never repeat fallback chains.
//   - City falls back to Name when empty.
//   - Heritage defaults to HeritageNone.
//   - IsMajor is true for destination cities, explicitly flagged stops, and
//     waypoints named after a canonical Route 66 city. The city column is not
//     consulted: an attraction located in Tulsa is not itself a major stop.
func NormalizeWaypoint(w Waypoint) Waypoint {
	w.Name = strings.TrimSpace(w.Name)
	w.City = strings.TrimSpace(w.City)
	if w.City == "" {
		w.City = w.Name
	}
	w.Category = strings.ToLower(strings.TrimSpace(w.Category))
	w.Heritage = ParseHeritage(string(w.Heritage))
	w.IsMajor = w.IsMajorStop ||
		w.Category == CategoryDestinationCity ||
		IsCanonicalCity(w.Name)
	return w
}

// HasValidCoordinates reports whether the waypoint's coordinates are finite
// and in range. A waypoint at exactly (0, 0) is treated as missing.
func (w Waypoint) HasValidCoordinates() bool {
	if math.IsNaN(w.Lat) || math.IsNaN(w.Lng) || math.IsInf(w.Lat, 0) || math.IsInf(w.Lng, 0) {
		return false
	}
	if w.Lat < -90 || w.Lat > 90 || w.Lng < -180 || w.Lng > 180 {
		return false
	}
	return !(w.Lat == 0 && w.Lng == 0)
}

// Label returns "City, ST" when a state is known, otherwise the name.
func (w Waypoint) Label() string {
	if w.State != "" && w.City != "" {
		return w.City + ", " + w.State
	}
	return w.Name
}
