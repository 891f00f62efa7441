package service

import (
	"context"
	"fmt"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/repo"
)

// WaypointService exposes the candidate waypoint pool.
type WaypointService struct {
	repo repo.WaypointRepo
}

// NewWaypointService constructs a WaypointService backed by the provided WaypointRepo.
func NewWaypointService(r repo.WaypointRepo) *WaypointService {
	return &WaypointService{repo: r}
}

// List returns every waypoint. When majorOnly is set only destination cities
// are returned.
func (s *WaypointService) List(ctx context.Context, majorOnly bool) ([]domain.Waypoint, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.WaypointService.List: %w", err)
	}
	if !majorOnly {
		return all, nil
	}
	out := make([]domain.Waypoint, 0, len(all))
	for _, w := range all {
		if w.IsMajor {
			out = append(out, w)
		}
	}
	return out, nil
}
