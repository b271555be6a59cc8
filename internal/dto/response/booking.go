package response

import (
	"time"

	"sitter-booking/internal/data/entity"
)

type AddOnLine struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

// QuoteBreakdown itemizes how the server-side total was computed.
type QuoteBreakdown struct {
	HourlyRateCents int64       `json:"hourly_rate_cents"`
	BillableHours   int64       `json:"billable_hours"`
	BaseCents       int64       `json:"base_cents"`
	AddOns          []AddOnLine `json:"addons,omitempty"`
	AmountCents     int64       `json:"amount_cents"`
	Currency        string      `json:"currency"`
}

type PaymentIntentResponse struct {
	GatewayIntentID string          `json:"gateway_intent_id"`
	ClientSecret    string          `json:"client_secret"`
	AmountCents     int64           `json:"amount_cents"`
	Currency        string          `json:"currency"`
	Breakdown       *QuoteBreakdown `json:"breakdown,omitempty"`
}

type BookingResponse struct {
	ID                string               `json:"id"`
	OrderID           string               `json:"order_id"`
	ClientID          string               `json:"client_id"`
	SitterID          string               `json:"sitter_id"`
	ServiceType       entity.ServiceType   `json:"service_type"`
	StartTime         time.Time            `json:"start_time"`
	EndTime           time.Time            `json:"end_time"`
	Location          string               `json:"location"`
	Notes             string               `json:"notes,omitempty"`
	TotalPriceCents   int64                `json:"total_price_cents"`
	CommissionRateBp  int                  `json:"commission_rate_bp"`
	PlatformFeeCents  int64                `json:"platform_fee_cents"`
	SitterPayoutCents int64                `json:"sitter_payout_cents"`
	PaymentReference  string               `json:"payment_reference"`
	Status            entity.BookingStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
}

type SitterResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
	Bio  string `json:"bio,omitempty"`
}

type SitterServiceResponse struct {
	ServiceType     entity.ServiceType `json:"service_type"`
	HourlyRateCents int64              `json:"hourly_rate_cents"`
}

type AddOnResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type DiscrepancyClass string

const (
	DiscrepancyChargeSucceededBookingMissing DiscrepancyClass = "charge_succeeded_booking_missing"
	DiscrepancyChargeNeverSucceeded          DiscrepancyClass = "charge_never_succeeded"
)

// DiscrepancyReport describes one pending payment whose money movement and
// booking state have diverged.
type DiscrepancyReport struct {
	PendingPaymentID string           `json:"pending_payment_id"`
	GatewayIntentID  string           `json:"gateway_intent_id"`
	AmountCents      int64            `json:"amount_cents"`
	Currency         string           `json:"currency"`
	AgeSeconds       int64            `json:"age_seconds"`
	Classification   DiscrepancyClass `json:"classification"`
}

func BookingToResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                booking.ID.String(),
		OrderID:           booking.OrderID,
		ClientID:          booking.ClientID.String(),
		SitterID:          booking.SitterID.String(),
		ServiceType:       booking.ServiceType,
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		Location:          booking.Location,
		Notes:             booking.Notes,
		TotalPriceCents:   booking.TotalPriceCents,
		CommissionRateBp:  booking.CommissionRateBp,
		PlatformFeeCents:  booking.PlatformFeeCents,
		SitterPayoutCents: booking.SitterPayoutCents,
		PaymentReference:  booking.PaymentReference,
		Status:            booking.Status,
		CreatedAt:         booking.CreatedAt,
	}
}

func SitterToResponse(sitter *entity.Sitter) SitterResponse {
	return SitterResponse{
		ID:   sitter.ID.String(),
		Name: sitter.Name,
		City: sitter.City,
		Bio:  sitter.Bio,
	}
}

func AddOnToResponse(addOn *entity.AddOn) AddOnResponse {
	return AddOnResponse{
		Code:       addOn.Code,
		Name:       addOn.Name,
		PriceCents: addOn.PriceCents,
	}
}

func SitterServiceToResponse(svc *entity.SitterService) SitterServiceResponse {
	return SitterServiceResponse{
		ServiceType:     svc.ServiceType,
		HourlyRateCents: svc.HourlyRateCents,
	}
}
