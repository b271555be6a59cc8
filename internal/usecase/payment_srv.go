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

// PaymentService creates gateway authorizations and the pending payment
// records that track them. At most one gateway authorization exists per
// idempotency key.
type PaymentService interface {
	CreateIntent(ctx context.Context, clientID string, req *request.BookingRequest) (*response.PaymentIntentResponse, error)
}

type paymentService struct {
	repo    *repository.Repository
	pricing PricingService
	gateway gateway.Gateway
	config  *utils.Config
	log     *zap.Logger
}

func NewPaymentService(repo *repository.Repository, pricing PricingService, gw gateway.Gateway, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:    repo,
		pricing: pricing,
		gateway: gw,
		config:  config,
		log:     log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, clientID string, req *request.BookingRequest) (*response.PaymentIntentResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create intent validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client ID format %s", ErrInvalidRequest, clientID)
	}

	sitterUUID, err := uuid.Parse(req.SitterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sitter ID format %s", ErrInvalidRequest, req.SitterID)
	}

	key := utils.DeriveIdempotencyKey(clientUUID, sitterUUID, req.ServiceType, req.StartTime, req.Nonce)

	// A retry of the same logical request reuses the existing authorization
	existing, err := s.repo.PendingPayment.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("look up pending payment: %w", err)
	}
	if existing != nil && existing.Status != entity.PendingPaymentStatusAbandoned {
		s.log.Info("Reusing existing payment intent",
			zap.String("idempotency_key", key),
			zap.String("gateway_intent_id", existing.GatewayIntentID),
		)
		return &response.PaymentIntentResponse{
			GatewayIntentID: existing.GatewayIntentID,
			ClientSecret:    existing.ClientSecret,
			AmountCents:     existing.AmountCents,
			Currency:        existing.Currency,
		}, nil
	}

	// Amount always comes from the pricing authority
	breakdown, err := s.pricing.Quote(ctx, req)
	if err != nil {
		return nil, err
	}
	if breakdown.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: computed total %d cents", ErrInvalidAmount, breakdown.AmountCents)
	}

	intent, err := s.gateway.CreateIntent(ctx, breakdown.AmountCents, breakdown.Currency, key, map[string]string{
		"client_id":    clientUUID.String(),
		"sitter_id":    sitterUUID.String(),
		"service_type": req.ServiceType,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrRejected) {
			s.log.Error("Gateway rejected intent creation",
				zap.Error(err),
				zap.Int64("amount_cents", breakdown.AmountCents),
			)
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		s.log.Error("Gateway unavailable for intent creation", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	snapshot, err := json.Marshal(entity.BookingRequestSnapshot{
		ClientID:    clientUUID,
		SitterID:    sitterUUID,
		ServiceType: entity.ServiceType(req.ServiceType),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request snapshot: %w", err)
	}

	now := time.Now()
	pending := &entity.PendingPayment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		IdempotencyKey:  key,
		GatewayIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     breakdown.AmountCents,
		Currency:        breakdown.Currency,
		Status:          entity.PendingPaymentStatusCreated,
		RequestSnapshot: snapshot,
	}

	if err := s.repo.PendingPayment.Create(ctx, pending); err != nil {
		// A concurrent request with the same key won the insert; its record
		// is the authoritative one.
		if errors.Is(err, repository.ErrDuplicateKey) {
			winner, findErr := s.repo.PendingPayment.FindByIdempotencyKey(ctx, key)
			if findErr != nil || winner == nil {
				return nil, fmt.Errorf("resolve duplicate pending payment %s: %w", key, err)
			}
			return &response.PaymentIntentResponse{
				GatewayIntentID: winner.GatewayIntentID,
				ClientSecret:    winner.ClientSecret,
				AmountCents:     winner.AmountCents,
				Currency:        winner.Currency,
			}, nil
		}
		return nil, fmt.Errorf("create pending payment: %w", err)
	}

	s.log.Info("Payment intent created",
		zap.String("idempotency_key", key),
		zap.String("gateway_intent_id", intent.ID),
		zap.Int64("amount_cents", breakdown.AmountCents),
		zap.String("currency", breakdown.Currency),
	)

	return &response.PaymentIntentResponse{
		GatewayIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     breakdown.AmountCents,
		Currency:        breakdown.Currency,
		Breakdown:       breakdown,
	}, nil
}
