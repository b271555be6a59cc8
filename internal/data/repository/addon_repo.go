package repository

import (
	"context"
	"fmt"

	"sitter-booking/internal/data/entity"
	"sitter-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AddOnRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.AddOn, error)
	FindAllActive(ctx context.Context) ([]*entity.AddOn, error)
}

type addOnRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddOnRepository(db database.PgxIface, log *zap.Logger) AddOnRepository {
	return &addOnRepository{
		db:  db,
		log: log.With(zap.String("repository", "addon")),
	}
}

func (r *addOnRepository) FindByCode(ctx context.Context, code string) (*entity.AddOn, error) {
	query := `
		SELECT id, code, name, price_cents, active, created_at
		FROM addons
		WHERE code = $1
	`

	var addOn entity.AddOn
	err := r.db.QueryRow(ctx, query, code).Scan(
		&addOn.ID,
		&addOn.Code,
		&addOn.Name,
		&addOn.PriceCents,
		&addOn.Active,
		&addOn.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find addon by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find addon by code %s: %w", code, err)
	}

	return &addOn, nil
}

func (r *addOnRepository) FindAllActive(ctx context.Context) ([]*entity.AddOn, error) {
	query := `
		SELECT id, code, name, price_cents, active, created_at
		FROM addons
		WHERE active = true
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active addons", zap.Error(err))
		return nil, fmt.Errorf("find active addons: %w", err)
	}
	defer rows.Close()

	var addOns []*entity.AddOn
	for rows.Next() {
		var addOn entity.AddOn
		err := rows.Scan(
			&addOn.ID,
			&addOn.Code,
			&addOn.Name,
			&addOn.PriceCents,
			&addOn.Active,
			&addOn.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan addon row", zap.Error(err))
			return nil, fmt.Errorf("scan addon row: %w", err)
		}
		addOns = append(addOns, &addOn)
	}

	return addOns, nil
}
