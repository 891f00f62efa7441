package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/geo"
)

var (
	chicago     = domain.Waypoint{Name: "Chicago", Lat: 41.8781, Lng: -87.6298}
	santaMonica = domain.Waypoint{Name: "Santa Monica", Lat: 34.0195, Lng: -118.4912}
	amarillo    = domain.Waypoint{Name: "Amarillo", Lat: 35.2220, Lng: -101.8313}
)

func TestDistance_ChicagoToSantaMonica(t *testing.T) {
	d := geo.Distance(chicago, santaMonica)

	assert.InDelta(t, 1756, d, 5)
}

func TestDistance_Symmetric(t *testing.T) {
	points := []domain.Waypoint{chicago, santaMonica, amarillo, {Lat: -33.86, Lng: 151.2}}
	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, geo.Distance(a, b), geo.Distance(b, a), 1e-9)
		}
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, geo.Distance(amarillo, amarillo))
}

func TestMilesBetween_NaNResolvesToZero(t *testing.T) {
	assert.Equal(t, 0.0, geo.MilesBetween(math.NaN(), 0, 10, 10))
}

func TestDriveTimeHours_Bands(t *testing.T) {
	limits := domain.HeritageLimits()

	tests := []struct {
		name  string
		miles float64
		want  float64
	}{
		{"short leg at 45 mph", 30, 30.0 / 45 * 1.1},
		{"mid leg at 50 mph", 100, 100.0 / 50 * 1.1},
		{"long leg at 55 mph", 220, 220.0 / 55 * 1.1},
		{"very long leg at 60 mph", 420, 420.0 / 60 * 1.1},
		{"tiny leg floors at minimum", 10, 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, geo.DriveTimeHours(tc.miles, limits), 1e-9)
		})
	}
}

func TestDriveTimeHours_DegenerateInputs(t *testing.T) {
	limits := domain.HeritageLimits()

	for _, miles := range []float64{0, -12, math.NaN()} {
		assert.Equal(t, 0.5, geo.DriveTimeHours(miles, limits), "miles=%v", miles)
	}
}

func TestDriveTimeHours_Monotonic(t *testing.T) {
	limits := domain.HeritageLimits()

	prev := geo.DriveTimeHours(0.1, limits)
	for d := 0.5; d <= limits.MaxDailyMiles; d += 0.5 {
		got := geo.DriveTimeHours(d, limits)
		require.GreaterOrEqual(t, got, prev, "drive time dropped at %.1f miles", d)
		prev = got
	}
}

func TestDriveTimeHours_Ceiling(t *testing.T) {
	for _, limits := range []domain.PlanningLimits{domain.HeritageLimits(), domain.CalculatorLimits()} {
		for _, d := range []float64{1, 49.9, 50, 149.9, 150, 299.9, 300, 450, 500, 900, 5000, math.Inf(1)} {
			got := geo.DriveTimeHours(d, limits)
			assert.LessOrEqual(t, got, limits.MaxDriveHours, "miles=%v", d)
			assert.GreaterOrEqual(t, got, limits.MinDriveHours, "miles=%v", d)
		}
	}
}

func TestEstimateDrive_CapsLongDistances(t *testing.T) {
	limits := domain.CalculatorLimits()

	est := geo.EstimateDrive(1000, limits)

	assert.True(t, est.Capped)
	assert.Equal(t, 450.0, est.Miles)
	assert.Equal(t, 8.0, est.Hours)
}

func TestEstimateDrive_UnderCapNotFlagged(t *testing.T) {
	est := geo.EstimateDrive(200, domain.HeritageLimits())

	assert.False(t, est.Capped)
	assert.Equal(t, 200.0, est.Miles)
}

func TestInterpolate_Endpoints(t *testing.T) {
	lat, lng := geo.Interpolate(chicago, santaMonica, 0)
	assert.InDelta(t, chicago.Lat, lat, 1e-9)
	assert.InDelta(t, chicago.Lng, lng, 1e-9)

	lat, lng = geo.Interpolate(chicago, santaMonica, 1)
	assert.InDelta(t, santaMonica.Lat, lat, 1e-9)
	assert.InDelta(t, santaMonica.Lng, lng, 1e-9)
}

func TestInterpolate_FractionOfDistance(t *testing.T) {
	total := geo.Distance(chicago, santaMonica)

	lat, lng := geo.Interpolate(chicago, santaMonica, 0.25)
	mid := domain.Waypoint{Lat: lat, Lng: lng}

	assert.InDelta(t, total*0.25, geo.Distance(chicago, mid), 0.5)
	assert.InDelta(t, total*0.75, geo.Distance(mid, santaMonica), 0.5)
}

func TestLngBetween_DirectionAware(t *testing.T) {
	// Westbound: Chicago (-87) to Santa Monica (-118).
	assert.True(t, geo.LngBetween(-101.8, -87.6, -118.5))
	assert.False(t, geo.LngBetween(-80, -87.6, -118.5))
	// Eastbound.
	assert.True(t, geo.LngBetween(-101.8, -118.5, -87.6))
	// Endpoints are excluded.
	assert.False(t, geo.LngBetween(-87.6, -87.6, -118.5))
}
