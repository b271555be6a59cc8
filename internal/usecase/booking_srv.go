package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sitter-booking/internal/data/entity"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/dto/request"
	"sitter-booking/internal/dto/response"
	"sitter-booking/internal/gateway"
	"sitter-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Commit turns a verified charge into a durable booking. Idempotent:
	// repeated calls for the same intent return the same booking.
	Commit(ctx context.Context, gatewayIntentID, gatewayPaymentID string) (*response.BookingResponse, error)

	GetUserBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo             *repository.Repository
	gateway          gateway.Gateway
	commissionRateBp int
	log              *zap.Logger
}

func NewBookingService(repo *repository.Repository, gw gateway.Gateway, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:             repo,
		gateway:          gw,
		commissionRateBp: config.Gateway.CommissionRateBp,
		log:              log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Commit(ctx context.Context, gatewayIntentID, gatewayPaymentID string) (*response.BookingResponse, error) {
	pending, err := s.repo.PendingPayment.FindByIntentID(ctx, gatewayIntentID)
	if err != nil {
		return nil, fmt.Errorf("look up pending payment: %w", err)
	}
	if pending == nil {
		s.log.Warn("Commit for unknown intent",
			zap.String("gateway_intent_id", gatewayIntentID),
		)
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntent, gatewayIntentID)
	}

	// Retry of a finished commit returns the booking that already exists
	if pending.Status == entity.PendingPaymentStatusConsumed {
		existing, err := s.repo.Booking.FindByPaymentReference(ctx, gatewayIntentID)
		if err != nil {
			return nil, fmt.Errorf("find existing booking: %w", err)
		}
		if existing == nil {
			// consumed without a booking should be impossible, the two are
			// written in one transaction
			s.log.Error("Consumed pending payment has no booking",
				zap.String("gateway_intent_id", gatewayIntentID),
				zap.String("pending_payment_id", pending.ID.String()),
			)
			return nil, fmt.Errorf("consumed pending payment %s has no booking", pending.ID.String())
		}
		return response.BookingToResponse(existing), nil
	}

	// The client-reported outcome is never trusted; ask the gateway.
	intent, err := s.gateway.RetrieveIntent(ctx, gatewayIntentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// An empty claimed payment id (trusted webhook path) defers entirely to
	// the gateway's record; a client-supplied id must match it.
	verified := intent.Status == gateway.StatusSucceeded && intent.LatestChargeID != "" &&
		(gatewayPaymentID == "" || intent.LatestChargeID == gatewayPaymentID)
	if !verified {
		s.log.Warn("Commit with unverified charge",
			zap.String("gateway_intent_id", gatewayIntentID),
			zap.String("claimed_payment_id", gatewayPaymentID),
			zap.String("gateway_status", intent.Status),
			zap.String("gateway_charge_id", intent.LatestChargeID),
		)
		return nil, fmt.Errorf("%w: charge %s", ErrPaymentNotVerified, gatewayPaymentID)
	}

	if intent.AmountCents != pending.AmountCents {
		// Integrity violation. Abort and leave the record for the sweep.
		s.log.Error("Charge amount mismatch",
			zap.String("gateway_intent_id", gatewayIntentID),
			zap.Int64("verified_cents", intent.AmountCents),
			zap.Int64("recorded_cents", pending.AmountCents),
		)
		return nil, fmt.Errorf("%w: verified %d, recorded %d", ErrAmountMismatch, intent.AmountCents, pending.AmountCents)
	}

	// Record the verified success signal before the commit write, so a
	// crash between here and the transaction is visible to the sweep as
	// money-collected-but-unbooked.
	if pending.Status == entity.PendingPaymentStatusCreated {
		if err := s.repo.PendingPayment.MarkAuthorized(ctx, pending.ID); err != nil {
			// A concurrent commit may have consumed the record between our
			// read and this update; its booking is the answer.
			if errors.Is(err, repository.ErrStateConflict) {
				winner, findErr := s.repo.Booking.FindByPaymentReference(ctx, gatewayIntentID)
				if findErr == nil && winner != nil {
					return response.BookingToResponse(winner), nil
				}
			}
			return nil, fmt.Errorf("mark pending payment authorized: %w", err)
		}
	}

	var snapshot entity.BookingRequestSnapshot
	if err := json.Unmarshal(pending.RequestSnapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal request snapshot for %s: %w", pending.ID.String(), err)
	}

	booking := s.buildBooking(pending, &snapshot)

	if err := s.repo.Booking.CreateConfirmed(ctx, booking, pending.ID); err != nil {
		// Lost the race against a concurrent commit; the winner's booking
		// is the answer.
		if errors.Is(err, repository.ErrDuplicateBooking) {
			winner, findErr := s.repo.Booking.FindByPaymentReference(ctx, gatewayIntentID)
			if findErr != nil || winner == nil {
				return nil, fmt.Errorf("resolve duplicate booking for %s: %w", gatewayIntentID, err)
			}
			return response.BookingToResponse(winner), nil
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking committed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("gateway_intent_id", gatewayIntentID),
		zap.Int64("total_price_cents", booking.TotalPriceCents),
		zap.Int64("platform_fee_cents", booking.PlatformFeeCents),
	)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) buildBooking(pending *entity.PendingPayment, snapshot *entity.BookingRequestSnapshot) *entity.Booking {
	total := pending.AmountCents
	fee := total * int64(s.commissionRateBp) / 10000
	now := time.Now()

	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:           utils.GenerateOrderID(),
		ClientID:          snapshot.ClientID,
		SitterID:          snapshot.SitterID,
		ServiceType:       snapshot.ServiceType,
		StartTime:         snapshot.StartTime,
		EndTime:           snapshot.EndTime,
		Location:          snapshot.Location,
		Notes:             snapshot.Notes,
		TotalPriceCents:   total,
		CommissionRateBp:  s.commissionRateBp,
		PlatformFeeCents:  fee,
		SitterPayoutCents: total - fee,
		PaymentReference:  pending.GatewayIntentID,
		Status:            entity.BookingStatusConfirmed,
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client ID format %s", ErrInvalidRequest, clientID)
	}

	bookings, err := s.repo.Booking.FindByClientID(ctx, clientUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("client_id", clientID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByClientID(ctx, clientUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = *response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID format %s", ErrInvalidRequest, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID format %s", ErrInvalidRequest, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return fmt.Errorf("%w: booking status is %s, cannot cancel", ErrInvalidRequest, booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
	)

	return nil
}
