// Package geo provides the distance and drive-time primitives the planner is
// built on. Every function is pure and total: degenerate input resolves to a
// defined value instead of an error.
package geo

import (
	"math"

	"github.com/pkordes/route66/internal/domain"
)

// EarthRadiusMiles is the mean Earth radius used by the haversine formula.
const EarthRadiusMiles = 3959.0

// scheduleBuffer pads every estimate for fuel, food and photo stops.
const scheduleBuffer = 1.10

// speedBand is the average speed assumed for legs shorter than upTo miles.
type speedBand struct {
	upTo float64
	mph  float64
}

var speedBands = []speedBand{
	{upTo: 50, mph: 45},
	{upTo: 150, mph: 50},
	{upTo: 300, mph: 55},
	{upTo: math.Inf(1), mph: 60},
}

// MilesBetween returns the great-circle distance between two lat/lng pairs.
// Non-finite results resolve to 0.
func MilesBetween(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLng*sinLng
	d := 2 * EarthRadiusMiles * math.Asin(math.Sqrt(math.Min(1, h)))
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// Distance returns the great-circle distance in miles between two waypoints.
func Distance(a, b domain.Waypoint) float64 {
	return MilesBetween(a.Lat, a.Lng, b.Lat, b.Lng)
}

// DriveEstimate is the result of converting a distance into drive time.
type DriveEstimate struct {
	// Miles is the distance the estimate was computed from, after capping.
	Miles float64
	Hours float64
	// Capped is true when the input exceeded limits.MaxDailyMiles.
	Capped bool
}

// EstimateDrive converts miles into drive hours using the speed-band table and
// a 10% schedule buffer. Distances above limits.MaxDailyMiles are capped first.
// The result is clamped to [limits.MinDriveHours, limits.MaxDriveHours];
// zero, negative and NaN distances yield the minimum.
//
// A longer leg never takes less time than a shorter one: when a leg crosses
// into a faster band, the time spent reaching the band boundary at the slower
// speed is kept as a floor.
func EstimateDrive(miles float64, limits domain.PlanningLimits) DriveEstimate {
	if math.IsNaN(miles) || miles <= 0 {
		return DriveEstimate{Miles: 0, Hours: limits.MinDriveHours}
	}

	est := DriveEstimate{Miles: miles}
	if miles > limits.MaxDailyMiles {
		est.Miles = limits.MaxDailyMiles
		est.Capped = true
	}

	hours := bandHours(est.Miles) * scheduleBuffer
	est.Hours = math.Min(limits.MaxDriveHours, math.Max(limits.MinDriveHours, hours))
	return est
}

// DriveTimeHours is EstimateDrive without the capping diagnostics.
func DriveTimeHours(miles float64, limits domain.PlanningLimits) float64 {
	return EstimateDrive(miles, limits).Hours
}

// UncappedDriveHours returns the buffered drive time for miles without any
// distance cap or hour ceiling. The planner uses it to decide whether a
// candidate leg would break the time ceiling before it is ever built.
func UncappedDriveHours(miles float64) float64 {
	if math.IsNaN(miles) || miles <= 0 {
		return 0
	}
	return bandHours(miles) * scheduleBuffer
}

func bandHours(miles float64) float64 {
	floor := 0.0
	for _, b := range speedBands {
		if miles < b.upTo {
			return math.Max(floor, miles/b.mph)
		}
		floor = math.Max(floor, b.upTo/b.mph)
	}
	return floor
}

// Interpolate returns the point a fraction f of the way from a to b along the
// great circle. f is clamped to [0, 1].
func Interpolate(a, b domain.Waypoint, f float64) (lat, lng float64) {
	f = math.Max(0, math.Min(1, f))
	lat1, lng1 := toRad(a.Lat), toRad(a.Lng)
	lat2, lng2 := toRad(b.Lat), toRad(b.Lng)

	delta := Distance(a, b) / EarthRadiusMiles
	if delta == 0 {
		return a.Lat, a.Lng
	}

	ka := math.Sin((1-f)*delta) / math.Sin(delta)
	kb := math.Sin(f*delta) / math.Sin(delta)

	x := ka*math.Cos(lat1)*math.Cos(lng1) + kb*math.Cos(lat2)*math.Cos(lng2)
	y := ka*math.Cos(lat1)*math.Sin(lng1) + kb*math.Cos(lat2)*math.Sin(lng2)
	z := ka*math.Sin(lat1) + kb*math.Sin(lat2)

	return toDeg(math.Atan2(z, math.Sqrt(x*x+y*y))), toDeg(math.Atan2(y, x))
}

// LngBetween reports whether lng lies strictly between from and to, whichever
// direction the trip travels.
func LngBetween(lng, from, to float64) bool {
	if from < to {
		return lng > from && lng < to
	}
	return lng < from && lng > to
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
