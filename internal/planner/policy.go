package planner

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pkordes/route66/internal/domain"
)

// Constraint names, as recorded on adjustments.
const (
	ConstraintDestinationCities = "destination-cities-cap"
	ConstraintMinimumDays       = "minimum-days"
	ConstraintMaximumDays       = "maximum-days"
	ConstraintDistanceMinimum   = "minimum-days-by-distance"
)

// PolicyInput is what each constraint sees. Days is the day count as already
// adjusted by every higher-priority constraint.
type PolicyInput struct {
	Boundary Boundary
	Days     int
	Style    domain.TripStyle
	Limits   domain.PlanningLimits
}

// ConstraintResult is the outcome of one constraint.
// A valid result leaves the day count alone; an invalid one suggests a new
// day count and explains why. Fatal marks a hard error rather than a warning.
type ConstraintResult struct {
	Valid         bool
	SuggestedDays int
	Reason        string
	Message       string
	Fatal         bool
}

// Constraint is a named, prioritized rule over a PolicyInput.
type Constraint struct {
	Name     string
	Priority int
	// Styles limits the constraint to the listed trip styles. Empty means all.
	Styles   []domain.TripStyle
	Evaluate func(in PolicyInput) ConstraintResult
}

func (c Constraint) appliesTo(style domain.TripStyle) bool {
	return len(c.Styles) == 0 || slices.Contains(c.Styles, style)
}

// PolicyResult is the accumulated outcome of the whole chain.
type PolicyResult struct {
	FinalDays   int
	Adjustments []domain.Adjustment
	Warnings    []string
	// Valid is false only when a fatal constraint triggered.
	Valid bool
}

// Policy is a priority-ordered chain of constraints. Higher priorities run first.
type Policy struct {
	constraints []Constraint
}

// NewPolicy builds a policy from the given constraints.
func NewPolicy(constraints ...Constraint) *Policy {
	p := &Policy{}
	for _, c := range constraints {
		p.Register(c)
	}
	return p
}

// DefaultPolicy is the destination-cities cap followed by the day bounds.
func DefaultPolicy() *Policy {
	return NewPolicy(DestinationCitiesCap(), MinimumDays(), MaximumDays())
}

// Register adds c to the chain, keeping descending priority order.
// Constraints with equal priority run in registration order.
func (p *Policy) Register(c Constraint) {
	p.constraints = append(p.constraints, c)
	slices.SortStableFunc(p.constraints, func(a, b Constraint) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

// Names returns the constraint names in evaluation order.
func (p *Policy) Names() []string {
	names := make([]string, len(p.constraints))
	for i, c := range p.constraints {
		names[i] = c.Name
	}
	return names
}

// Apply runs every applicable constraint in priority order.
func (p *Policy) Apply(in PolicyInput) PolicyResult {
	res := PolicyResult{FinalDays: in.Days, Valid: true}

	for _, c := range p.constraints {
		if !c.appliesTo(in.Style) {
			continue
		}
		in.Days = res.FinalDays
		r := c.Evaluate(in)
		if r.Valid {
			continue
		}
		if r.Message != "" {
			res.Warnings = append(res.Warnings, r.Message)
		}
		if r.Fatal {
			res.Valid = false
		}
		if r.SuggestedDays > 0 && r.SuggestedDays != res.FinalDays {
			kind := domain.AdjustmentDayReduction
			if r.SuggestedDays > res.FinalDays {
				kind = domain.AdjustmentDayIncrease
			}
			res.Adjustments = append(res.Adjustments, domain.Adjustment{
				Kind:       kind,
				Original:   res.FinalDays,
				Adjusted:   r.SuggestedDays,
				Reason:     r.Reason,
				Constraint: c.Name,
			})
			res.FinalDays = r.SuggestedDays
		}
	}

	sortByImpact(res.Adjustments)
	return res
}

// sortByImpact puts the largest day-count changes first.
func sortByImpact(adjs []domain.Adjustment) {
	slices.SortStableFunc(adjs, func(a, b domain.Adjustment) int {
		return cmp.Compare(absInt(b.Adjusted-b.Original), absInt(a.Adjusted-a.Original))
	})
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DestinationCitiesCap limits a destination-focused trip to one day per major
// city strictly between start and end, plus the final day into the end city.
func DestinationCitiesCap() Constraint {
	return Constraint{
		Name:     ConstraintDestinationCities,
		Priority: 100,
		Styles:   []domain.TripStyle{domain.StyleDestinationFocused},
		Evaluate: func(in PolicyInput) ConstraintResult {
			majors := 0
			for _, w := range in.Boundary.Between {
				if w.IsMajor {
					majors++
				}
			}
			limit := majors + 1
			if in.Days <= limit {
				return ConstraintResult{Valid: true}
			}
			return ConstraintResult{
				SuggestedDays: limit,
				Reason: fmt.Sprintf("Only %d heritage cities lie between %s and %s, so the trip fits in %d days",
					majors, in.Boundary.Start.Name, in.Boundary.End.Name, limit),
			}
		},
	}
}

// MinimumDays rejects trips shorter than limits.MinDays.
func MinimumDays() Constraint {
	return Constraint{
		Name:     ConstraintMinimumDays,
		Priority: 90,
		Evaluate: func(in PolicyInput) ConstraintResult {
			if in.Days >= in.Limits.MinDays {
				return ConstraintResult{Valid: true}
			}
			return ConstraintResult{
				SuggestedDays: in.Limits.MinDays,
				Reason:        fmt.Sprintf("A trip needs at least %d day", in.Limits.MinDays),
				Message:       fmt.Sprintf("Requested %d days; a trip must last at least %d day", in.Days, in.Limits.MinDays),
				Fatal:         true,
			}
		},
	}
}

// MaximumDays caps trips at limits.MaxDays with a warning.
func MaximumDays() Constraint {
	return Constraint{
		Name:     ConstraintMaximumDays,
		Priority: 80,
		Evaluate: func(in PolicyInput) ConstraintResult {
			if in.Days <= in.Limits.MaxDays {
				return ConstraintResult{Valid: true}
			}
			return ConstraintResult{
				SuggestedDays: in.Limits.MaxDays,
				Reason:        fmt.Sprintf("Trips are limited to %d days", in.Limits.MaxDays),
				Message:       fmt.Sprintf("Trip shortened from %d to %d days, the longest itinerary we plan", in.Days, in.Limits.MaxDays),
			}
		},
	}
}
