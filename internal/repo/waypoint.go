// Package repo contains all database access logic for the Route 66 planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/route66/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// WaypointRepo reads the candidate waypoint pool.
type WaypointRepo interface {
	// List returns every waypoint, normalized, ordered west to east.
	List(ctx context.Context) ([]domain.Waypoint, error)

	// Create inserts a waypoint and returns it with its generated ID.
	Create(ctx context.Context, w domain.Waypoint) (domain.Waypoint, error)
}

type pgWaypointRepo struct {
	db db
}

// NewWaypointRepo constructs a WaypointRepo backed by the provided db connection.
func NewWaypointRepo(db db) WaypointRepo {
	return &pgWaypointRepo{db: db}
}

const waypointColumns = `id, name, city, state, lat, lng, category, heritage, is_major_stop`

func (r *pgWaypointRepo) List(ctx context.Context) ([]domain.Waypoint, error) {
	q := `SELECT ` + waypointColumns + ` FROM waypoints ORDER BY lng, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.WaypointRepo.List: %w", err)
	}
	defer rows.Close()

	var out []domain.Waypoint
	for rows.Next() {
		w, err := scanWaypoint(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.WaypointRepo.List: scan: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.WaypointRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgWaypointRepo) Create(ctx context.Context, w domain.Waypoint) (domain.Waypoint, error) {
	q := `
		INSERT INTO waypoints (name, city, state, lat, lng, category, heritage, is_major_stop)
		VALUES (@name, @city, @state, @lat, @lng, @category, @heritage, @is_major_stop)
		RETURNING ` + waypointColumns

	w = domain.NormalizeWaypoint(w)
	args := pgx.NamedArgs{
		"name":          w.Name,
		"city":          w.City,
		"state":         w.State,
		"lat":           nullableCoord(w.Lat),
		"lng":           nullableCoord(w.Lng),
		"category":      w.Category,
		"heritage":      string(w.Heritage),
		"is_major_stop": w.IsMajorStop,
	}

	got, err := scanWaypoint(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Waypoint{}, fmt.Errorf("repo.WaypointRepo.Create: %w", err)
	}
	return got, nil
}

// scanWaypoint maps a row onto a normalized Waypoint. NULL coordinates become
// NaN so the planner treats them as unusable.
func scanWaypoint(s scanner) (domain.Waypoint, error) {
	var (
		w        domain.Waypoint
		id       pgtype.UUID
		lat, lng pgtype.Float8
		heritage string
	)
	if err := s.Scan(&id, &w.Name, &w.City, &w.State, &lat, &lng, &w.Category, &heritage, &w.IsMajorStop); err != nil {
		return domain.Waypoint{}, err
	}

	w.ID = uuid.UUID(id.Bytes)
	w.Lat, w.Lng = math.NaN(), math.NaN()
	if lat.Valid {
		w.Lat = lat.Float64
	}
	if lng.Valid {
		w.Lng = lng.Float64
	}
	w.Heritage = domain.Heritage(heritage)
	return domain.NormalizeWaypoint(w), nil
}

func nullableCoord(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
