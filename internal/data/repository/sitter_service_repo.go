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

type SitterServiceRepository interface {
	FindBySitterAndType(ctx context.Context, sitterID uuid.UUID, serviceType entity.ServiceType) (*entity.SitterService, error)
	FindActiveBySitter(ctx context.Context, sitterID uuid.UUID) ([]*entity.SitterService, error)
}

type sitterServiceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSitterServiceRepository(db database.PgxIface, log *zap.Logger) SitterServiceRepository {
	return &sitterServiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "sitter_service")),
	}
}

func (r *sitterServiceRepository) FindBySitterAndType(ctx context.Context, sitterID uuid.UUID, serviceType entity.ServiceType) (*entity.SitterService, error) {
	query := `
		SELECT id, sitter_id, service_type, hourly_rate_cents, active, created_at
		FROM sitter_services
		WHERE sitter_id = $1 AND service_type = $2
	`

	var svc entity.SitterService
	err := r.db.QueryRow(ctx, query, sitterID, serviceType).Scan(
		&svc.ID,
		&svc.SitterID,
		&svc.ServiceType,
		&svc.HourlyRateCents,
		&svc.Active,
		&svc.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sitter service",
			zap.Error(err),
			zap.String("sitter_id", sitterID.String()),
			zap.String("service_type", string(serviceType)),
		)
		return nil, fmt.Errorf("find sitter service %s/%s: %w", sitterID.String(), serviceType, err)
	}

	return &svc, nil
}

func (r *sitterServiceRepository) FindActiveBySitter(ctx context.Context, sitterID uuid.UUID) ([]*entity.SitterService, error) {
	query := `
		SELECT id, sitter_id, service_type, hourly_rate_cents, active, created_at
		FROM sitter_services
		WHERE sitter_id = $1 AND active = true
		ORDER BY service_type
	`

	rows, err := r.db.Query(ctx, query, sitterID)
	if err != nil {
		r.log.Error("Failed to find sitter services",
			zap.Error(err),
			zap.String("sitter_id", sitterID.String()),
		)
		return nil, fmt.Errorf("find sitter services for %s: %w", sitterID.String(), err)
	}
	defer rows.Close()

	var services []*entity.SitterService
	for rows.Next() {
		var svc entity.SitterService
		err := rows.Scan(
			&svc.ID,
			&svc.SitterID,
			&svc.ServiceType,
			&svc.HourlyRateCents,
			&svc.Active,
			&svc.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan sitter service row", zap.Error(err))
			return nil, fmt.Errorf("scan sitter service row: %w", err)
		}
		services = append(services, &svc)
	}

	return services, nil
}
