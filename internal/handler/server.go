// Package handler implements the HTTP handlers for the Route 66 planner API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, plan.go, waypoint.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/route66/internal/domain"
)

// PlanServicer defines the business operations the trip plan handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database, planner or service layer.
type PlanServicer interface {
	Plan(ctx context.Context, req domain.PlanRequest) (domain.TripPlan, error)
	Get(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PlanSummary, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WaypointServicer lists the stored waypoint pool.
type WaypointServicer interface {
	List(ctx context.Context, majorOnly bool) ([]domain.Waypoint, error)
}

// Server serves every API endpoint.
type Server struct {
	plans     PlanServicer
	waypoints WaypointServicer
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(plans PlanServicer, waypoints WaypointServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{plans: plans, waypoints: waypoints, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/waypoints", s.ListWaypoints)
	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListPlans)
		r.Post("/plan", s.PlanTrip)
		r.Get("/{id}", s.GetPlan)
		r.Delete("/{id}", s.DeletePlan)
	})
}

// Routes returns a standalone router with every route registered.
// main.go mounts it behind the middleware stack; tests use it directly.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}
