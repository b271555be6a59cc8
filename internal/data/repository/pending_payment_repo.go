package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sitter-booking/internal/data/entity"
	"sitter-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type PendingPaymentRepository interface {
	Create(ctx context.Context, payment *entity.PendingPayment) error
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.PendingPayment, error)
	FindByIntentID(ctx context.Context, gatewayIntentID string) (*entity.PendingPayment, error)

	// State transitions. Each guards its source state in SQL so a stale
	// caller cannot move a record backwards.
	MarkAuthorized(ctx context.Context, id uuid.UUID) error
	MarkAbandoned(ctx context.Context, id uuid.UUID) error

	// Sweep queries
	FindStaleByStatus(ctx context.Context, status entity.PendingPaymentStatus, olderThan time.Duration) ([]*entity.PendingPayment, error)
}

type pendingPaymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPendingPaymentRepository(db database.PgxIface, log *zap.Logger) PendingPaymentRepository {
	return &pendingPaymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "pending_payment")),
	}
}

func (r *pendingPaymentRepository) Create(ctx context.Context, payment *entity.PendingPayment) error {
	query := `
		INSERT INTO pending_payments (id, idempotency_key, gateway_intent_id, client_secret,
		                              amount_cents, currency, status, request_snapshot,
		                              created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.IdempotencyKey,
		payment.GatewayIntentID,
		payment.ClientSecret,
		payment.AmountCents,
		payment.Currency,
		payment.Status,
		payment.RequestSnapshot,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create pending payment %s: %w", payment.IdempotencyKey, ErrDuplicateKey)
		}
		r.log.Error("Failed to create pending payment",
			zap.Error(err),
			zap.String("idempotency_key", payment.IdempotencyKey),
			zap.String("gateway_intent_id", payment.GatewayIntentID),
		)
		return fmt.Errorf("create pending payment %s: %w", payment.IdempotencyKey, err)
	}

	return nil
}

func (r *pendingPaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.PendingPayment, error) {
	return r.findOne(ctx, "idempotency_key", key)
}

func (r *pendingPaymentRepository) FindByIntentID(ctx context.Context, gatewayIntentID string) (*entity.PendingPayment, error) {
	return r.findOne(ctx, "gateway_intent_id", gatewayIntentID)
}

func (r *pendingPaymentRepository) findOne(ctx context.Context, column, value string) (*entity.PendingPayment, error) {
	query := fmt.Sprintf(`
		SELECT id, idempotency_key, gateway_intent_id, client_secret,
		       amount_cents, currency, status, request_snapshot,
		       created_at, updated_at
		FROM pending_payments
		WHERE %s = $1
	`, column)

	var payment entity.PendingPayment
	err := r.db.QueryRow(ctx, query, value).Scan(
		&payment.ID,
		&payment.IdempotencyKey,
		&payment.GatewayIntentID,
		&payment.ClientSecret,
		&payment.AmountCents,
		&payment.Currency,
		&payment.Status,
		&payment.RequestSnapshot,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending payment",
			zap.Error(err),
			zap.String(column, value),
		)
		return nil, fmt.Errorf("find pending payment by %s %s: %w", column, value, err)
	}

	return &payment, nil
}

func (r *pendingPaymentRepository) MarkAuthorized(ctx context.Context, id uuid.UUID) error {
	// Matching 'authorized' too makes concurrent commits converge instead of
	// erroring when both observed 'created'.
	query := `
		UPDATE pending_payments
		SET status = 'authorized', updated_at = NOW()
		WHERE id = $1 AND status IN ('created', 'authorized')
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark pending payment authorized",
			zap.Error(err),
			zap.String("pending_payment_id", id.String()),
		)
		return fmt.Errorf("mark pending payment %s authorized: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark pending payment %s authorized: %w", id.String(), ErrStateConflict)
	}

	return nil
}

func (r *pendingPaymentRepository) MarkAbandoned(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE pending_payments
		SET status = 'abandoned', updated_at = NOW()
		WHERE id = $1 AND status IN ('created', 'authorized')
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark pending payment abandoned",
			zap.Error(err),
			zap.String("pending_payment_id", id.String()),
		)
		return fmt.Errorf("mark pending payment %s abandoned: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark pending payment %s abandoned: %w", id.String(), ErrStateConflict)
	}

	return nil
}

func (r *pendingPaymentRepository) FindStaleByStatus(ctx context.Context, status entity.PendingPaymentStatus, olderThan time.Duration) ([]*entity.PendingPayment, error) {
	query := `
		SELECT id, idempotency_key, gateway_intent_id, client_secret,
		       amount_cents, currency, status, request_snapshot,
		       created_at, updated_at
		FROM pending_payments
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at
	`

	cutoff := time.Now().Add(-olderThan)

	rows, err := r.db.Query(ctx, query, status, cutoff)
	if err != nil {
		r.log.Error("Failed to find stale pending payments",
			zap.Error(err),
			zap.String("status", string(status)),
			zap.Time("cutoff", cutoff),
		)
		return nil, fmt.Errorf("find stale pending payments in %s: %w", status, err)
	}
	defer rows.Close()

	var payments []*entity.PendingPayment
	for rows.Next() {
		var payment entity.PendingPayment
		err := rows.Scan(
			&payment.ID,
			&payment.IdempotencyKey,
			&payment.GatewayIntentID,
			&payment.ClientSecret,
			&payment.AmountCents,
			&payment.Currency,
			&payment.Status,
			&payment.RequestSnapshot,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pending payment row", zap.Error(err))
			return nil, fmt.Errorf("scan pending payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}
