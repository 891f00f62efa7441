package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/route66/internal/domain"
)

// PlanTripRequest is the body of POST /trips/plan.
type PlanTripRequest struct {
	StartLocation string          `json:"start_location"`
	EndLocation   string          `json:"end_location"`
	Days          int             `json:"days"`
	Style         *string         `json:"style,omitempty"`
	Limits        *string         `json:"limits,omitempty"`
	Waypoints     []WaypointInput `json:"waypoints,omitempty"`
}

// WaypointInput is a caller-supplied waypoint that replaces the stored pool.
type WaypointInput struct {
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Category    string   `json:"category,omitempty"`
	Heritage    string   `json:"heritage,omitempty"`
	IsMajorStop bool     `json:"is_major_stop,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PlanList is the body of GET /trips.
type PlanList struct {
	Data       []domain.PlanSummary `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// ListPlansParams are the query parameters of GET /trips.
type ListPlansParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// PlanTrip handles POST /trips/plan.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var body PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: ErrorDetail{Code: "request_too_large", Message: "request body is too large"},
			})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be a JSON object"))
		return
	}

	plan, err := s.plans.Plan(r.Context(), requestToPlan(body))
	if err != nil {
		if resp, ok := planningBody(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		s.writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

// ListPlans handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=10, max=50).
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	var params ListPlansParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &params.Page); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid format for parameter page"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid format for parameter limit"))
		return
	}

	p := domain.NewPaginationParams(params.Page, params.Limit)
	plans, total, err := s.plans.ListPaged(r.Context(), p)
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	if plans == nil {
		plans = []domain.PlanSummary{}
	}

	writeJSON(w, http.StatusOK, PlanList{
		Data:       plans,
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: int(total)},
	})
}

// GetPlan handles GET /trips/{id}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := bindID(w, r)
	if !ok {
		return
	}

	plan, err := s.plans.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip plan not found"))
			return
		}
		s.writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// DeletePlan handles DELETE /trips/{id}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := bindID(w, r)
	if !ok {
		return
	}

	if err := s.plans.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip plan not found"))
			return
		}
		s.writeInternal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// bindID parses the {id} path parameter, writing a 422 when it is not a UUID.
func bindID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid format for parameter id"))
		return openapi_types.UUID{}, false
	}
	return id, true
}

// requestToPlan converts a PlanTripRequest into a domain.PlanRequest.
// Missing coordinates become NaN so the planner reports them as invalid.
func requestToPlan(body PlanTripRequest) domain.PlanRequest {
	req := domain.PlanRequest{
		StartLocation: body.StartLocation,
		EndLocation:   body.EndLocation,
		RequestedDays: body.Days,
	}
	if body.Style != nil {
		req.Style = domain.TripStyle(*body.Style)
	}
	if body.Limits != nil {
		req.Limits = *body.Limits
	}
	for _, in := range body.Waypoints {
		wp := domain.Waypoint{
			ID:          uuid.New(),
			Name:        in.Name,
			City:        in.City,
			State:       in.State,
			Lat:         math.NaN(),
			Lng:         math.NaN(),
			Category:    in.Category,
			Heritage:    domain.Heritage(in.Heritage),
			IsMajorStop: in.IsMajorStop,
		}
		if in.Lat != nil {
			wp.Lat = *in.Lat
		}
		if in.Lng != nil {
			wp.Lng = *in.Lng
		}
		req.Waypoints = append(req.Waypoints, domain.NormalizeWaypoint(wp))
	}
	return req
}
