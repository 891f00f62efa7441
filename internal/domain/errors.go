package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, and by the planner when a start or end location
// does not resolve to a waypoint.
// Handlers map a missing saved plan to HTTP 404 and an unresolved location to 422.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing location name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidCoordinate is returned when a waypoint that must anchor a trip has
// missing, non-finite, or out-of-range coordinates.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ErrInfeasible is returned when no valid itinerary can be built for a request.
var ErrInfeasible = errors.New("infeasible request")

// NotFoundError names the location that failed to resolve.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location %q not found", e.Location)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidCoordinateError carries the offending waypoint and its coordinates.
type InvalidCoordinateError struct {
	Waypoint string
	Lat      float64
	Lng      float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("waypoint %q has invalid coordinates (%v, %v)", e.Waypoint, e.Lat, e.Lng)
}

func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// InfeasibleRequestError explains why planning could not produce a trip.
type InfeasibleRequestError struct {
	Reason string
}

func (e *InfeasibleRequestError) Error() string {
	return "infeasible request: " + e.Reason
}

func (e *InfeasibleRequestError) Unwrap() error { return ErrInfeasible }
