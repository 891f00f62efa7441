// Package service contains the business logic for the Route 66 planner API.
// Services validate inputs, run the planner, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/planner"
	"github.com/pkordes/route66/internal/repo"
)

// TripPlanner is the part of *planner.Planner the service needs.
type TripPlanner interface {
	Plan(ctx context.Context, req domain.PlanRequest) (domain.TripPlan, error)
}

// attractionsPerStop caps the list shown under each day.
const attractionsPerStop = 5

// PlanService plans, enriches and stores trips.
type PlanService struct {
	planner     TripPlanner
	waypoints   repo.WaypointRepo
	attractions repo.AttractionRepo
	plans       repo.PlanRepo
	concurrency int
	log         *slog.Logger
}

// NewPlanService constructs a PlanService. concurrency bounds the number of
// attraction lookups in flight per plan; values below 1 mean 1.
func NewPlanService(p TripPlanner, w repo.WaypointRepo, a repo.AttractionRepo, r repo.PlanRepo, concurrency int, log *slog.Logger) *PlanService {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &PlanService{planner: p, waypoints: w, attractions: a, plans: r, concurrency: concurrency, log: log}
}

// Plan builds a trip from the stored waypoint pool (or req.Waypoints when the
// caller supplies its own), lists attractions for every overnight city, and
// saves the result.
func (s *PlanService) Plan(ctx context.Context, req domain.PlanRequest) (domain.TripPlan, error) {
	req.StartLocation = strings.TrimSpace(req.StartLocation)
	req.EndLocation = strings.TrimSpace(req.EndLocation)
	if req.StartLocation == "" || req.EndLocation == "" {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: start and end locations are required: %w", domain.ErrValidation)
	}

	requested := req.RequestedDays
	req, forced := req.Normalize()
	if forced {
		s.log.Info("requested days raised to minimum", "requested", requested, "days", req.RequestedDays)
	}

	if len(req.Waypoints) == 0 {
		pool, err := s.waypoints.List(ctx)
		if err != nil {
			return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
		}
		req.Waypoints = pool
	}

	plan, err := s.planner.Plan(ctx, req)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	if forced {
		plan.Adjustments = append([]domain.Adjustment{{
			Kind:       domain.AdjustmentDayIncrease,
			Original:   requested,
			Adjusted:   req.RequestedDays,
			Reason:     "A trip lasts at least one day",
			Constraint: planner.ConstraintMinimumDays,
		}}, plan.Adjustments...)
		if plan.Notice == nil {
			plan.Notice = planner.BuildNotice(plan.Adjustments, nil, requested, plan.TotalDays)
		}
	}

	if err := s.addAttractions(ctx, plan.Segments); err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	return plan, nil
}

// addAttractions fills each segment's attractions concurrently. Lookups are
// best effort: a failed lookup leaves that day without attractions. Only a
// cancelled context is returned as an error.
func (s *PlanService) addAttractions(ctx context.Context, segments []domain.DailySegment) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range segments {
		end := segments[i].End
		if end.Category == domain.CategoryOvernight {
			continue
		}
		g.Go(func() error {
			list, err := s.attractions.ListByCity(gctx, end.City, end.State, attractionsPerStop)
			if err != nil {
				s.log.Warn("attraction lookup failed", "day", segments[i].Day, "city", end.Label(), "error", err)
				return nil
			}
			segments[i].Attractions = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Get returns a saved plan.
func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlanService.Get: %w", err)
	}
	return plan, nil
}

// ListPaged returns one page of saved plan summaries and the total count.
func (s *PlanService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PlanSummary, int64, error) {
	out, total, err := s.plans.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlanService.ListPaged: %w", err)
	}
	return out, total, nil
}

// Delete removes a saved plan.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}
