package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/route66/internal/domain"
)

// Planner runs the full planning pipeline for one set of limits.
// It holds no per-request state and is safe for concurrent use as long as the
// configured DistanceProvider is.
type Planner struct {
	limits   domain.PlanningLimits
	policy   *Policy
	provider DistanceProvider
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Planner.
type Option func(*Planner)

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p *Policy) Option {
	return func(pl *Planner) { pl.policy = p }
}

// WithDistanceProvider sets an external source of road distances. Without one
// every distance is a great-circle estimate.
func WithDistanceProvider(p DistanceProvider) Option {
	return func(pl *Planner) { pl.provider = p }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(pl *Planner) { pl.log = l }
}

// WithClock overrides time.Now for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(pl *Planner) { pl.now = now }
}

// New returns a Planner for limits, which must pass Validate.
func New(limits domain.PlanningLimits, opts ...Option) (*Planner, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("planner.New: %w", err)
	}
	p := &Planner{
		limits: limits,
		policy: DefaultPolicy(),
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Limits returns the ceilings this planner enforces when a request names no
// preset.
func (p *Planner) Limits() domain.PlanningLimits { return p.limits }

// Plan builds a trip for req from req.Waypoints, under the preset named by
// req.Limits when one is set.
//
// Fatal errors are *domain.NotFoundError, *domain.InvalidCoordinateError and
// *domain.InfeasibleRequestError. Everything else is recovered: day-count
// changes land in Adjustments and Notice, clamps in Validation and Notice.
func (p *Planner) Plan(ctx context.Context, req domain.PlanRequest) (domain.TripPlan, error) {
	style := req.Style
	if style == "" {
		style = domain.StyleDestinationFocused
	}
	if !style.Valid() {
		return domain.TripPlan{}, fmt.Errorf("planner.Plan: unknown trip style %q: %w", style, domain.ErrValidation)
	}

	limits, err := p.limitsFor(req)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("planner.Plan: %w", err)
	}

	b, err := ResolveBoundary(req.StartLocation, req.EndLocation, req.Waypoints)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("planner.Plan: %w", err)
	}
	for _, w := range b.Skipped {
		p.log.Warn("skipping waypoint with invalid coordinates",
			"waypoint", w.Name, "lat", w.Lat, "lng", w.Lng)
	}

	pr := p.policy.Apply(PolicyInput{Boundary: b, Days: req.RequestedDays, Style: style, Limits: limits})
	if !pr.Valid {
		reason := "the requested day count cannot be planned"
		if len(pr.Warnings) > 0 {
			reason = pr.Warnings[0]
		}
		return domain.TripPlan{}, fmt.Errorf("planner.Plan: %w", &domain.InfeasibleRequestError{Reason: reason})
	}
	for _, a := range pr.Adjustments {
		p.log.Info("trip length adjusted",
			"constraint", a.Constraint, "from", a.Original, "to", a.Adjusted, "reason", a.Reason)
	}

	m := newMeasurer(ctx, p.provider, p.log)

	days := pr.FinalDays
	adjustments := pr.Adjustments
	total := m.leg(b.Start, b.End).Miles
	if need := int(math.Ceil(total / limits.MaxDailyMiles)); need > days {
		p.log.Warn("trip length raised to keep daily distance under the limit",
			"constraint", ConstraintDistanceMinimum, "from", days, "to", need,
			"total_miles", math.Round(total), "max_daily_miles", limits.MaxDailyMiles)
		adjustments = append(adjustments, domain.Adjustment{
			Kind:     domain.AdjustmentDayIncrease,
			Original: days,
			Adjusted: need,
			Reason: fmt.Sprintf("%s to %s is about %.0f miles, which needs at least %d days at %.0f miles per day",
				b.Start.Name, b.End.Name, total, need, limits.MaxDailyMiles),
			Constraint: ConstraintDistanceMinimum,
		})
		sortByImpact(adjustments)
		days = need
	}

	disc := DiscoverStops(b, limits)
	if disc.Duplicates > 0 {
		p.log.Debug("dropped duplicate stops", "count", disc.Duplicates)
	}

	seq := make([]domain.Waypoint, 0, len(disc.Stops)+2)
	seq = append(seq, b.Start)
	seq = append(seq, overnightCandidates(disc, days)...)
	seq = append(seq, b.End)

	dist, err := Distribute(seq, days, limits, m.leg)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("planner.Plan: %w", err)
	}

	segments, report := Enforce(dist.Segments, limits)
	warnings := append([]string(nil), pr.Warnings...)
	for _, v := range report.Violations {
		p.log.Warn("segment clamped to daily limits", "day", v.Day, "violation", v.Description)
		warnings = append(warnings, fmt.Sprintf("Day %d: %s", v.Day, v.Description))
	}

	plan := domain.TripPlan{
		ID:                 uuid.New(),
		Title:              fmt.Sprintf("%s to %s", b.Start.Name, b.End.Name),
		StartCity:          b.Start.Name,
		EndCity:            b.End.Name,
		TotalDays:          len(segments),
		Segments:           segments,
		Style:              style,
		Notice:             BuildNotice(adjustments, warnings, req.RequestedDays, days),
		Adjustments:        adjustments,
		Validation:         report,
		EstimatedDistances: m.estimated,
		CreatedAt:          p.now().UTC(),
	}
	plan.Waypoints = append(plan.Waypoints, b.Start)
	for _, s := range segments {
		plan.TotalDistanceMiles += s.DistanceMiles
		plan.TotalDriveHours += s.DriveHours
		plan.Waypoints = append(plan.Waypoints, s.End)
	}
	if dist.Proportional {
		plan.Advisories = append(plan.Advisories, LimitedAttractionsAdvisory)
	}

	p.log.Info("trip planned",
		"start", plan.StartCity, "end", plan.EndCity, "requested_days", req.RequestedDays,
		"days", plan.TotalDays, "miles", math.Round(plan.TotalDistanceMiles),
		"proportional", dist.Proportional, "valid", report.IsValid)

	return plan, nil
}

// limitsFor returns the preset req names, or the planner's own limits.
func (p *Planner) limitsFor(req domain.PlanRequest) (domain.PlanningLimits, error) {
	if req.Limits == "" {
		return p.limits, nil
	}
	return domain.LimitsPreset(req.Limits)
}

// overnightCandidates prefers the heritage destinations when there are enough
// of them to end every day but the last; otherwise every discovered stop is
// offered.
func overnightCandidates(d Discovery, days int) []domain.Waypoint {
	if len(d.Primary) >= days-1 {
		return d.Primary
	}
	return d.Stops
}

// measurer measures legs for one planning run. Provider failures fall back to
// the great-circle estimate and mark the run as estimated.
type measurer struct {
	ctx       context.Context
	provider  DistanceProvider
	log       *slog.Logger
	estimated bool
}

func newMeasurer(ctx context.Context, provider DistanceProvider, log *slog.Logger) *measurer {
	return &measurer{ctx: ctx, provider: provider, log: log, estimated: provider == nil}
}

func (m *measurer) leg(from, to domain.Waypoint) domain.Leg {
	if m.provider == nil {
		return HaversineLeg(from, to)
	}
	l, err := m.provider.Leg(m.ctx, from, to)
	if err != nil || l.Miles <= 0 || math.IsNaN(l.Miles) {
		if err != nil {
			m.log.Warn("distance provider failed, using estimate",
				"from", from.Name, "to", to.Name, "error", err)
		}
		m.estimated = true
		return HaversineLeg(from, to)
	}
	return l
}
