package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStyle selects which constraint rules apply to a request.
type TripStyle string

const (
	StyleDestinationFocused TripStyle = "destination-focused"
	StyleBalanced           TripStyle = "balanced"
	StyleScenic             TripStyle = "scenic"
)

// Valid reports whether s is a known trip style.
func (s TripStyle) Valid() bool {
	switch s {
	case StyleDestinationFocused, StyleBalanced, StyleScenic:
		return true
	}
	return false
}

// PlanRequest is the input to a single planning run.
type PlanRequest struct {
	StartLocation string
	EndLocation   string
	RequestedDays int
	Style         TripStyle
	// Limits names a preset (see LimitsPreset). Empty means the planner default.
	Limits    string
	Waypoints []Waypoint
}

// Normalize forces the request into a sane shape at the service boundary:
// a day count below 1 becomes 1 and an empty style becomes destination-focused.
// It reports whether the day count had to be changed.
func (r PlanRequest) Normalize() (PlanRequest, bool) {
	changed := false
	if r.RequestedDays < 1 {
		r.RequestedDays = 1
		changed = true
	}
	if r.Style == "" {
		r.Style = StyleDestinationFocused
	}
	return r, changed
}

// AdjustmentKind classifies a policy adjustment.
type AdjustmentKind string

const (
	AdjustmentDayReduction AdjustmentKind = "day-reduction"
	AdjustmentDayIncrease  AdjustmentKind = "day-increase"
	AdjustmentRouteChange  AdjustmentKind = "route-change"
)

// Adjustment records the effect of one constraint on the requested day count.
type Adjustment struct {
	Kind       AdjustmentKind `json:"kind"`
	Original   int            `json:"original"`
	Adjusted   int            `json:"adjusted"`
	Reason     string         `json:"reason"`
	Constraint string         `json:"constraint"`
}

// Severity of an AdjustmentNotice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// AdjustmentNotice is the presentation-ready summary of a plan's adjustments.
// It is derived on every plan and never stored on its own.
type AdjustmentNotice struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
}

// Leg is the distance and duration between two waypoints.
type Leg struct {
	Miles           float64 `json:"miles"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Attraction is a point of interest listed for a segment's end city.
type Attraction struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
}

// DailySegment is one day of travel.
type DailySegment struct {
	Day           int          `json:"day"`
	Start         Waypoint     `json:"start"`
	End           Waypoint     `json:"end"`
	DistanceMiles float64      `json:"distance_miles"`
	DriveHours    float64      `json:"drive_hours"`
	Stops         []Waypoint   `json:"stops"`
	Description   string       `json:"description"`
	Attractions   []Attraction `json:"attractions,omitempty"`
}

// Violation describes a segment that had to be clamped to the ceilings.
type Violation struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
}

// ValidationReport is the outcome of the final enforcement pass.
type ValidationReport struct {
	IsValid    bool        `json:"is_valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// TripPlan is the aggregate returned to callers.
// Invariants: len(Segments) == TotalDays, Segments[i].Day == i+1, and the first
// and last Waypoints equal the resolved start and end.
type TripPlan struct {
	ID                 uuid.UUID         `json:"id"`
	Title              string            `json:"title"`
	StartCity          string            `json:"start_city"`
	EndCity            string            `json:"end_city"`
	TotalDays          int               `json:"total_days"`
	TotalDistanceMiles float64           `json:"total_distance_miles"`
	TotalDriveHours    float64           `json:"total_drive_hours"`
	Segments           []DailySegment    `json:"segments"`
	Waypoints          []Waypoint        `json:"waypoints"`
	Style              TripStyle         `json:"style"`
	Notice             *AdjustmentNotice `json:"notice,omitempty"`
	Adjustments        []Adjustment      `json:"adjustments,omitempty"`
	Advisories         []string          `json:"advisories,omitempty"`
	Validation         ValidationReport  `json:"validation"`
	EstimatedDistances bool              `json:"estimated_distances"`
	CreatedAt          time.Time         `json:"created_at"`
}

// PlanSummary is the list view of a saved plan.
type PlanSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartCity string    `json:"start_city"`
	EndCity   string    `json:"end_city"`
	TotalDays int       `json:"total_days"`
	Style     TripStyle `json:"style"`
	CreatedAt time.Time `json:"created_at"`
}
