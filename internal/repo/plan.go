package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/route66/internal/domain"
)

// PlanRepo persists generated trip plans.
type PlanRepo interface {
	// Create stores plan under plan.ID.
	Create(ctx context.Context, plan domain.TripPlan) error

	// GetByID returns the stored plan. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)

	// ListPaged returns one page of plan summaries, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PlanSummary, int64, error)

	// Delete removes a plan. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

func (r *pgPlanRepo) Create(ctx context.Context, plan domain.TripPlan) error {
	const q = `
		INSERT INTO trip_plans (id, title, start_city, end_city, total_days, style, plan, created_at)
		VALUES (@id, @title, @start_city, @end_city, @total_days, @style, @plan, @created_at)`

	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Create: encode: %w", err)
	}

	_, err = r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         plan.ID,
		"title":      plan.Title,
		"start_city": plan.StartCity,
		"end_city":   plan.EndCity,
		"total_days": plan.TotalDays,
		"style":      string(plan.Style),
		"plan":       doc,
		"created_at": plan.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	return nil
}

func (r *pgPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	const q = `SELECT plan FROM trip_plans WHERE id = @id`

	var doc []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TripPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(doc, &plan); err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: decode: %w", err)
	}
	return plan, nil
}

func (r *pgPlanRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PlanSummary, int64, error) {
	const countQ = `SELECT count(*) FROM trip_plans`
	const q = `
		SELECT id, title, start_city, end_city, total_days, style, created_at
		FROM trip_plans
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	out := []domain.PlanSummary{}
	for rows.Next() {
		var (
			s     domain.PlanSummary
			id    pgtype.UUID
			style string
		)
		if err := rows.Scan(&id, &s.Title, &s.StartCity, &s.EndCity, &s.TotalDays, &style, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: scan: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		s.Style = domain.TripStyle(style)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trip_plans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
