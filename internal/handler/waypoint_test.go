package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/handler"
)

type mockWaypointServicer struct {
	list func(ctx context.Context, majorOnly bool) ([]domain.Waypoint, error)
}

func (m *mockWaypointServicer) List(ctx context.Context, majorOnly bool) ([]domain.Waypoint, error) {
	return m.list(ctx, majorOnly)
}

var _ handler.WaypointServicer = (*mockWaypointServicer)(nil)

func TestListWaypoints_200(t *testing.T) {
	var gotMajor bool
	svc := &mockWaypointServicer{
		list: func(_ context.Context, majorOnly bool) ([]domain.Waypoint, error) {
			gotMajor = majorOnly
			return []domain.Waypoint{
				{ID: uuid.New(), Name: "Tulsa", City: "Tulsa", State: "OK", Lat: 36.154, Lng: -95.9928, Heritage: domain.HeritageHigh, IsMajor: true},
				{ID: uuid.New(), Name: "Lost Marker", City: "Lost Marker", Lat: math.NaN(), Lng: math.NaN(), Heritage: domain.HeritageNone},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/waypoints", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotMajor)

	var resp []handler.Waypoint
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	require.NotNil(t, resp[0].Lat)
	assert.InDelta(t, 36.154, *resp[0].Lat, 1e-9)
	assert.True(t, resp[0].IsMajor)
	assert.Nil(t, resp[1].Lat)
	assert.Nil(t, resp[1].Lng)
}

func TestListWaypoints_MajorOnly(t *testing.T) {
	var gotMajor bool
	svc := &mockWaypointServicer{
		list: func(_ context.Context, majorOnly bool) ([]domain.Waypoint, error) {
			gotMajor = majorOnly
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/waypoints?major=true", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotMajor)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListWaypoints_422_BadFlag(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/waypoints?major=sometimes", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockWaypointServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListWaypoints_500(t *testing.T) {
	svc := &mockWaypointServicer{
		list: func(_ context.Context, _ bool) ([]domain.Waypoint, error) {
			return nil, errors.New("db down")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/waypoints", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
