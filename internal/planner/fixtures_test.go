package planner_test

import (
	"github.com/google/uuid"

	"github.com/pkordes/route66/internal/domain"
)

// ---- fixtures ---------------------------------------------------------------

func city(name string, lat, lng float64) domain.Waypoint {
	return domain.NormalizeWaypoint(domain.Waypoint{
		ID:       uuid.New(),
		Name:     name,
		Lat:      lat,
		Lng:      lng,
		Category: domain.CategoryDestinationCity,
		Heritage: domain.HeritageHigh,
	})
}

func stop(name, category string, lat, lng float64, h domain.Heritage) domain.Waypoint {
	return domain.NormalizeWaypoint(domain.Waypoint{
		ID:       uuid.New(),
		Name:     name,
		Lat:      lat,
		Lng:      lng,
		Category: category,
		Heritage: h,
	})
}

var (
	chicago      = city("Chicago", 41.8781, -87.6298)
	santaMonica  = city("Santa Monica", 34.0195, -118.4912)
	springfield  = city("Springfield, IL", 39.7817, -89.6501)
	stLouis      = city("St. Louis", 38.6270, -90.1994)
	tulsa        = city("Tulsa", 36.1540, -95.9928)
	oklahomaCity = city("Oklahoma City", 35.4676, -97.5164)
	amarillo     = city("Amarillo", 35.2220, -101.8313)
	albuquerque  = city("Albuquerque", 35.0844, -106.6504)
	flagstaff    = city("Flagstaff", 35.1983, -111.6513)
	barstow      = city("Barstow", 34.8958, -117.0173)
	kingman      = city("Kingman", 35.1894, -114.0530)
	boston       = city("Boston", 42.3601, -71.0589)

	joliet  = stop("Joliet", domain.CategoryAttraction, 41.5250, -88.0817, domain.HeritageHigh)
	dwight  = stop("Dwight", domain.CategoryAttraction, 41.0945, -88.4256, domain.HeritageHigh)
	pontiac = stop("Pontiac", domain.CategoryAttraction, 40.8809, -88.6298, domain.HeritageHigh)
)

// eightMajors is Chicago, Santa Monica and eight heritage cities between them,
// deliberately out of travel order.
func eightMajors() []domain.Waypoint {
	return []domain.Waypoint{
		amarillo, chicago, barstow, stLouis, santaMonica,
		tulsa, springfield, flagstaff, oklahomaCity, albuquerque,
	}
}

// nineMajors adds Kingman to eightMajors.
func nineMajors() []domain.Waypoint {
	return append(eightMajors(), kingman)
}

// illinoisCluster puts every stop within 90 miles of Chicago, leaving the rest
// of the route bare.
func illinoisCluster() []domain.Waypoint {
	return []domain.Waypoint{chicago, joliet, dwight, pontiac, santaMonica}
}

func names(ws []domain.Waypoint) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name
	}
	return out
}

// wideLimits lets three destination-city days span the whole route.
func wideLimits() domain.PlanningLimits {
	l := domain.HeritageLimits()
	l.MaxDailyMiles = 700
	l.MaxDriveHours = 13
	return l
}
