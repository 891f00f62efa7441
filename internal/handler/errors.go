package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/route66/internal/domain"
)

// ErrorDetail is the machine- and human-readable part of an error body.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message because the handler is the layer that
// knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a request rejected before
// reaching the service layer (e.g. malformed body or bad path parameter).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// planningBody maps the planner's typed failures to an ErrorResponse.
// ok is false for errors that are not the caller's fault.
func planningBody(err error) (body ErrorResponse, ok bool) {
	var notFound *domain.NotFoundError
	var badCoord *domain.InvalidCoordinateError
	var infeasible *domain.InfeasibleRequestError
	switch {
	case errors.As(err, &notFound):
		return ErrorResponse{Error: ErrorDetail{Code: "location_not_found", Message: notFound.Error()}}, true
	case errors.As(err, &badCoord):
		return ErrorResponse{Error: ErrorDetail{Code: "invalid_coordinates", Message: badCoord.Error()}}, true
	case errors.As(err, &infeasible):
		return ErrorResponse{Error: ErrorDetail{Code: "infeasible_request", Message: infeasible.Reason}}, true
	case errors.Is(err, domain.ErrValidation):
		return validationBody(err), true
	}
	return ErrorResponse{}, false
}

// unwrapMessage strips operation prefixes and the sentinel text from a
// wrapped error.
// e.g. "service.PlanService.Plan: planner.Plan: unknown trip style \"x\": validation error"
// → "unknown trip style \"x\""
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 || !isOpName(msg[:i]) {
			break
		}
		msg = msg[i+2:]
	}
	sentinel := domain.ErrValidation.Error()
	msg = strings.TrimPrefix(msg, sentinel+": ")
	msg = strings.TrimSuffix(msg, ": "+sentinel)
	return msg
}

// isOpName reports whether s looks like "pkg.Type.Method".
func isOpName(s string) bool {
	return s != "" && strings.Contains(s, ".") && !strings.ContainsAny(s, " \"")
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeInternal logs err and writes a generic 500 body.
// Internal error text never reaches the client.
func (s *Server) writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}
