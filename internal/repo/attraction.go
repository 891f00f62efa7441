package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/route66/internal/domain"
)

// AttractionRepo looks up points of interest to list under a day's end city.
type AttractionRepo interface {
	// ListByCity returns up to limit attractions in city, matched
	// case-insensitively. An empty state matches any state.
	ListByCity(ctx context.Context, city, state string, limit int) ([]domain.Attraction, error)
}

type pgAttractionRepo struct {
	db db
}

// NewAttractionRepo constructs an AttractionRepo backed by the provided db connection.
func NewAttractionRepo(db db) AttractionRepo {
	return &pgAttractionRepo{db: db}
}

func (r *pgAttractionRepo) ListByCity(ctx context.Context, city, state string, limit int) ([]domain.Attraction, error) {
	const q = `
		SELECT id, name, city, state, category, description
		FROM attractions
		WHERE lower(city) = lower(@city)
		  AND (@state = '' OR state = @state)
		ORDER BY name
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"city": city, "state": state, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.AttractionRepo.ListByCity: %w", err)
	}
	defer rows.Close()

	var out []domain.Attraction
	for rows.Next() {
		var (
			a  domain.Attraction
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &a.Name, &a.City, &a.State, &a.Category, &a.Description); err != nil {
			return nil, fmt.Errorf("repo.AttractionRepo.ListByCity: scan: %w", err)
		}
		a.ID = uuid.UUID(id.Bytes)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AttractionRepo.ListByCity: rows: %w", err)
	}
	return out, nil
}
