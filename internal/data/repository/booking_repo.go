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

type BookingRepository interface {
	// CreateConfirmed inserts the booking and marks its pending payment
	// consumed in one transaction. Returns ErrDuplicateBooking when another
	// commit already won the payment_reference unique constraint.
	CreateConfirmed(ctx context.Context, booking *entity.Booking, pendingPaymentID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPaymentReference(ctx context.Context, paymentReference string) (*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)

	// Business queries
	ExistsOverlapping(ctx context.Context, sitterID uuid.UUID, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, client_id, sitter_id, service_type, start_time, end_time,
	       location, notes, total_price_cents, commission_rate_bp, platform_fee_cents,
	       sitter_payout_cents, payment_reference, status, created_at, updated_at, deleted_at`

func (r *bookingRepository) CreateConfirmed(ctx context.Context, booking *entity.Booking, pendingPaymentID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin commit transaction", zap.Error(err))
		return fmt.Errorf("begin commit transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO bookings (id, order_id, client_id, sitter_id, service_type, start_time, end_time,
		                      location, notes, total_price_cents, commission_rate_bp, platform_fee_cents,
		                      sitter_payout_cents, payment_reference, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = tx.Exec(ctx, insertQuery,
		booking.ID,
		booking.OrderID,
		booking.ClientID,
		booking.SitterID,
		booking.ServiceType,
		booking.StartTime,
		booking.EndTime,
		booking.Location,
		booking.Notes,
		booking.TotalPriceCents,
		booking.CommissionRateBp,
		booking.PlatformFeeCents,
		booking.SitterPayoutCents,
		booking.PaymentReference,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create booking for %s: %w", booking.PaymentReference, ErrDuplicateBooking)
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("payment_reference", booking.PaymentReference),
		)
		return fmt.Errorf("insert booking %s: %w", booking.OrderID, err)
	}

	consumeQuery := `
		UPDATE pending_payments
		SET status = 'consumed', updated_at = NOW()
		WHERE id = $1 AND status <> 'consumed'
	`

	result, err := tx.Exec(ctx, consumeQuery, pendingPaymentID)
	if err != nil {
		r.log.Error("Failed to consume pending payment",
			zap.Error(err),
			zap.String("pending_payment_id", pendingPaymentID.String()),
		)
		return fmt.Errorf("consume pending payment %s: %w", pendingPaymentID.String(), err)
	}

	// Transaction rolls back, so the booking insert is undone with it.
	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending payment %s already consumed: %w", pendingPaymentID.String(), ErrDuplicateBooking)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking transaction",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
		)
		return fmt.Errorf("commit booking transaction %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *bookingRepository) FindByPaymentReference(ctx context.Context, paymentReference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_reference = $1`
	return r.findOne(ctx, query, paymentReference)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, arg any) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.ClientID,
		&booking.SitterID,
		&booking.ServiceType,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Location,
		&booking.Notes,
		&booking.TotalPriceCents,
		&booking.CommissionRateBp,
		&booking.PlatformFeeCents,
		&booking.SitterPayoutCents,
		&booking.PaymentReference,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err))
		return nil, fmt.Errorf("find booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by client ID",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by client ID %s: %w", clientID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.OrderID,
			&booking.ClientID,
			&booking.SitterID,
			&booking.ServiceType,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Location,
			&booking.Notes,
			&booking.TotalPriceCents,
			&booking.CommissionRateBp,
			&booking.PlatformFeeCents,
			&booking.SitterPayoutCents,
			&booking.PaymentReference,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE client_id = $1 AND deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query, clientID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by client ID",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return 0, fmt.Errorf("count bookings by client ID %s: %w", clientID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) ExistsOverlapping(ctx context.Context, sitterID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE sitter_id = $1
			  AND status = 'confirmed'
			  AND start_time < $3
			  AND end_time > $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, sitterID, start, end).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check overlapping bookings",
			zap.Error(err),
			zap.String("sitter_id", sitterID.String()),
		)
		return false, fmt.Errorf("check overlapping bookings for %s: %w", sitterID.String(), err)
	}

	return exists, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
