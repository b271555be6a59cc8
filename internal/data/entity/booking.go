package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking exists only for payments that reached consumed. payment_reference
// holds the gateway intent ID and carries a unique constraint, so at most
// one booking can ever exist per charge regardless of how many commit
// attempts race.
type Booking struct {
	Base
	OrderID           string        `db:"order_id"`
	ClientID          uuid.UUID     `db:"client_id"`
	SitterID          uuid.UUID     `db:"sitter_id"`
	ServiceType       ServiceType   `db:"service_type"`
	StartTime         time.Time     `db:"start_time"`
	EndTime           time.Time     `db:"end_time"`
	Location          string        `db:"location"`
	Notes             string        `db:"notes"`
	TotalPriceCents   int64         `db:"total_price_cents"`
	CommissionRateBp  int           `db:"commission_rate_bp"`
	PlatformFeeCents  int64         `db:"platform_fee_cents"`
	SitterPayoutCents int64         `db:"sitter_payout_cents"`
	PaymentReference  string        `db:"payment_reference"`
	Status            BookingStatus `db:"status"`
}
