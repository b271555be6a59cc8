package usecase

import (
	"context"
	"fmt"
	"time"

	"sitter-booking/internal/data/entity"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/dto/request"
	"sitter-booking/internal/dto/response"
	"sitter-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PricingService is the only place a chargeable amount can originate.
// Totals are computed from the sitter's rate card and the add-on price
// list; a client-supplied figure is never part of the input.
type PricingService interface {
	Quote(ctx context.Context, req *request.BookingRequest) (*response.QuoteBreakdown, error)

	// Catalog reads backing the quote inputs
	SearchSitters(ctx context.Context, city string, req *request.PaginatedRequest) ([]response.SitterResponse, error)
	GetSitterServices(ctx context.Context, sitterID string) ([]response.SitterServiceResponse, error)
	GetAddOns(ctx context.Context) ([]response.AddOnResponse, error)
}

type pricingService struct {
	repo     *repository.Repository
	currency string
	log      *zap.Logger
}

func NewPricingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PricingService {
	return &pricingService{
		repo:     repo,
		currency: config.Gateway.Currency,
		log:      log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Quote(ctx context.Context, req *request.BookingRequest) (*response.QuoteBreakdown, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	sitterID, err := uuid.Parse(req.SitterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sitter ID format %s", ErrInvalidRequest, req.SitterID)
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidRequest)
	}
	if req.StartTime.Before(time.Now()) {
		return nil, fmt.Errorf("%w: cannot book a past time window", ErrInvalidRequest)
	}

	sitter, err := s.repo.Sitter.FindByID(ctx, sitterID)
	if err != nil {
		return nil, fmt.Errorf("look up sitter: %w", err)
	}
	if sitter == nil || !sitter.Active {
		return nil, fmt.Errorf("%w: sitter %s not found or inactive", ErrInvalidRequest, req.SitterID)
	}

	svc, err := s.repo.SitterService.FindBySitterAndType(ctx, sitterID, entity.ServiceType(req.ServiceType))
	if err != nil {
		return nil, fmt.Errorf("look up sitter service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("%w: sitter does not offer %s", ErrInvalidRequest, req.ServiceType)
	}

	// Sitter must be free for the whole window
	busy, err := s.repo.Booking.ExistsOverlapping(ctx, sitterID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("check sitter availability: %w", err)
	}
	if busy {
		return nil, fmt.Errorf("%w: sitter is not available for the requested window", ErrInvalidRequest)
	}

	hours := billableHours(req.StartTime, req.EndTime)
	base := svc.HourlyRateCents * hours

	breakdown := &response.QuoteBreakdown{
		HourlyRateCents: svc.HourlyRateCents,
		BillableHours:   hours,
		BaseCents:       base,
		AmountCents:     base,
		Currency:        s.currency,
	}

	for _, code := range req.AddOnCodes {
		addOn, err := s.repo.AddOn.FindByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("look up addon %s: %w", code, err)
		}
		if addOn == nil || !addOn.Active {
			return nil, fmt.Errorf("%w: unknown addon %s", ErrInvalidRequest, code)
		}
		breakdown.AddOns = append(breakdown.AddOns, response.AddOnLine{
			Code:       addOn.Code,
			Name:       addOn.Name,
			PriceCents: addOn.PriceCents,
		})
		breakdown.AmountCents += addOn.PriceCents
	}

	s.log.Info("Quote computed",
		zap.String("sitter_id", req.SitterID),
		zap.String("service_type", req.ServiceType),
		zap.Int64("billable_hours", hours),
		zap.Int64("amount_cents", breakdown.AmountCents),
	)

	return breakdown, nil
}

func (s *pricingService) SearchSitters(ctx context.Context, city string, req *request.PaginatedRequest) ([]response.SitterResponse, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidRequest)
	}

	sitters, err := s.repo.Sitter.FindActiveByCity(ctx, city, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("search sitters in %s: %w", city, err)
	}

	resp := make([]response.SitterResponse, len(sitters))
	for i, sitter := range sitters {
		resp[i] = response.SitterToResponse(sitter)
	}

	return resp, nil
}

func (s *pricingService) GetAddOns(ctx context.Context) ([]response.AddOnResponse, error) {
	addOns, err := s.repo.AddOn.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get addons: %w", err)
	}

	resp := make([]response.AddOnResponse, len(addOns))
	for i, addOn := range addOns {
		resp[i] = response.AddOnToResponse(addOn)
	}

	return resp, nil
}

func (s *pricingService) GetSitterServices(ctx context.Context, sitterID string) ([]response.SitterServiceResponse, error) {
	id, err := uuid.Parse(sitterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sitter ID format %s", ErrInvalidRequest, sitterID)
	}

	sitter, err := s.repo.Sitter.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up sitter: %w", err)
	}
	if sitter == nil {
		return nil, fmt.Errorf("%w: sitter %s not found", ErrInvalidRequest, sitterID)
	}

	services, err := s.repo.SitterService.FindActiveBySitter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sitter services: %w", err)
	}

	resp := make([]response.SitterServiceResponse, len(services))
	for i, svc := range services {
		resp[i] = response.SitterServiceToResponse(svc)
	}

	return resp, nil
}

// billableHours rounds the window up to whole hours, minimum one.
func billableHours(start, end time.Time) int64 {
	d := end.Sub(start)
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}
