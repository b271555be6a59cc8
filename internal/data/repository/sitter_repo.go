package repository

import (
	"context"
	"fmt"

	"sitter-booking/internal/data/entity"
	"sitter-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SitterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sitter, error)
	FindActiveByCity(ctx context.Context, city string, limit, offset int) ([]*entity.Sitter, error)
}

type sitterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSitterRepository(db database.PgxIface, log *zap.Logger) SitterRepository {
	return &sitterRepository{
		db:  db,
		log: log.With(zap.String("repository", "sitter")),
	}
}

func (r *sitterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sitter, error) {
	query := `
		SELECT id, name, city, bio, active, created_at, updated_at, deleted_at
		FROM sitters
		WHERE id = $1 AND deleted_at IS NULL
	`

	var sitter entity.Sitter
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sitter.ID,
		&sitter.Name,
		&sitter.City,
		&sitter.Bio,
		&sitter.Active,
		&sitter.CreatedAt,
		&sitter.UpdatedAt,
		&sitter.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sitter by ID",
			zap.Error(err),
			zap.String("sitter_id", id.String()),
		)
		return nil, fmt.Errorf("find sitter by ID %s: %w", id.String(), err)
	}

	return &sitter, nil
}

func (r *sitterRepository) FindActiveByCity(ctx context.Context, city string, limit, offset int) ([]*entity.Sitter, error) {
	query := `
		SELECT id, name, city, bio, active, created_at, updated_at, deleted_at
		FROM sitters
		WHERE city = $1 AND active = true AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, city, limit, offset)
	if err != nil {
		r.log.Error("Failed to find sitters by city",
			zap.Error(err),
			zap.String("city", city),
		)
		return nil, fmt.Errorf("find sitters by city %s: %w", city, err)
	}
	defer rows.Close()

	var sitters []*entity.Sitter
	for rows.Next() {
		var sitter entity.Sitter
		err := rows.Scan(
			&sitter.ID,
			&sitter.Name,
			&sitter.City,
			&sitter.Bio,
			&sitter.Active,
			&sitter.CreatedAt,
			&sitter.UpdatedAt,
			&sitter.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan sitter row", zap.Error(err))
			return nil, fmt.Errorf("scan sitter row: %w", err)
		}
		sitters = append(sitters, &sitter)
	}

	return sitters, nil
}
