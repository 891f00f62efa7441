package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/route66/internal/domain"
)

// Waypoint is the API view of a stored waypoint.
// Lat and Lng are null when the stored coordinates are missing or invalid.
type Waypoint struct {
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	City     string             `json:"city"`
	State    string             `json:"state,omitempty"`
	Lat      *float64           `json:"lat"`
	Lng      *float64           `json:"lng"`
	Category string             `json:"category,omitempty"`
	Heritage string             `json:"heritage"`
	IsMajor  bool               `json:"is_major"`
}

// ListWaypointsParams are the query parameters of GET /waypoints.
type ListWaypointsParams struct {
	Major *bool `form:"major,omitempty" json:"major,omitempty"`
}

// ListWaypoints handles GET /waypoints.
// ?major=true restricts the list to destination cities.
func (s *Server) ListWaypoints(w http.ResponseWriter, r *http.Request) {
	var params ListWaypointsParams
	if err := runtime.BindQueryParameter("form", true, false, "major", r.URL.Query(), &params.Major); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid format for parameter major"))
		return
	}

	majorOnly := params.Major != nil && *params.Major
	waypoints, err := s.waypoints.List(r.Context(), majorOnly)
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}

	data := make([]Waypoint, len(waypoints))
	for i, wp := range waypoints {
		data[i] = waypointToResponse(wp)
	}
	writeJSON(w, http.StatusOK, data)
}

// waypointToResponse converts a domain.Waypoint into the API type.
func waypointToResponse(w domain.Waypoint) Waypoint {
	resp := Waypoint{
		Id:       w.ID,
		Name:     w.Name,
		City:     w.City,
		State:    w.State,
		Category: w.Category,
		Heritage: string(w.Heritage),
		IsMajor:  w.IsMajor,
	}
	if w.HasValidCoordinates() {
		lat, lng := w.Lat, w.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	return resp
}
