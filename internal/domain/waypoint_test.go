package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/route66/internal/domain"
)

func TestNormalizeWaypoint(t *testing.T) {
	w := domain.NormalizeWaypoint(domain.Waypoint{
		Name:     "  Blue Whale of Catoosa ",
		Category: " Attraction",
		Heritage: "HIGH",
	})

	assert.Equal(t, "Blue Whale of Catoosa", w.Name)
	assert.Equal(t, "Blue Whale of Catoosa", w.City)
	assert.Equal(t, domain.CategoryAttraction, w.Category)
	assert.Equal(t, domain.HeritageHigh, w.Heritage)
	assert.False(t, w.IsMajor)
}

func TestNormalizeWaypoint_MajorStop(t *testing.T) {
	cases := []struct {
		name string
		in   domain.Waypoint
		want bool
	}{
		{"explicit flag", domain.Waypoint{Name: "Shamrock", IsMajorStop: true}, true},
		{"destination city category", domain.Waypoint{Name: "Shamrock", Category: "destination_city"}, true},
		{"canonical name", domain.Waypoint{Name: "Tulsa", Category: "attraction"}, true},
		{"canonical name with state", domain.Waypoint{Name: "Springfield, MO"}, true},
		{"attraction located in a canonical city", domain.Waypoint{Name: "Golden Driller", City: "Tulsa"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NormalizeWaypoint(tc.in).IsMajor)
		})
	}
}

func TestParseHeritage_UnknownIsNone(t *testing.T) {
	assert.Equal(t, domain.HeritageNone, domain.ParseHeritage("legendary"))
	assert.Equal(t, domain.HeritageNone, domain.ParseHeritage(""))
	assert.Equal(t, domain.HeritageMedium, domain.ParseHeritage(" Medium "))
}

func TestHasValidCoordinates(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"tulsa", 36.154, -95.9928, true},
		{"null island", 0, 0, false},
		{"latitude out of range", 200, -100, false},
		{"longitude out of range", 35, -181, false},
		{"nan", math.NaN(), -100, false},
		{"inf", 35, math.Inf(-1), false},
		{"equator is fine", 0, -78.5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := domain.Waypoint{Lat: tc.lat, Lng: tc.lng}
			assert.Equal(t, tc.want, w.HasValidCoordinates())
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Tulsa, OK", domain.Waypoint{Name: "Tulsa", City: "Tulsa", State: "OK"}.Label())
	assert.Equal(t, "Cadillac Ranch", domain.Waypoint{Name: "Cadillac Ranch"}.Label())
}

func TestLimitsPreset(t *testing.T) {
	h, err := domain.LimitsPreset("heritage")
	require.NoError(t, err)
	assert.Equal(t, 10.0, h.MaxDriveHours)
	assert.Equal(t, 500.0, h.MaxDailyMiles)

	c, err := domain.LimitsPreset("Calculator")
	require.NoError(t, err)
	assert.Equal(t, 8.0, c.MaxDriveHours)
	assert.Equal(t, 450.0, c.MaxDailyMiles)

	d, err := domain.LimitsPreset("")
	require.NoError(t, err)
	assert.Equal(t, h, d)

	_, err = domain.LimitsPreset("autobahn")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanningLimits_Validate(t *testing.T) {
	require.NoError(t, domain.HeritageLimits().Validate())
	require.NoError(t, domain.CalculatorLimits().Validate())

	bad := domain.HeritageLimits()
	bad.MinDriveHours = 12
	assert.ErrorIs(t, bad.Validate(), domain.ErrValidation)
}

func TestPlanRequest_Normalize(t *testing.T) {
	r, changed := domain.PlanRequest{RequestedDays: -3}.Normalize()

	assert.True(t, changed)
	assert.Equal(t, 1, r.RequestedDays)
	assert.Equal(t, domain.StyleDestinationFocused, r.Style)

	r, changed = domain.PlanRequest{RequestedDays: 5, Style: domain.StyleScenic}.Normalize()
	assert.False(t, changed)
	assert.Equal(t, 5, r.RequestedDays)
	assert.Equal(t, domain.StyleScenic, r.Style)
}

func TestNewPaginationParams(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	page, limit := 3, 500
	p = domain.NewPaginationParams(&page, &limit)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset())
}
