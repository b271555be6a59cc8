package entity

import (
	"time"

	"github.com/google/uuid"
)

type PendingPaymentStatus string

const (
	// created: gateway intent exists, no verified charge yet
	PendingPaymentStatusCreated PendingPaymentStatus = "created"
	// authorized: a gateway-verified succeeded charge was observed
	PendingPaymentStatusAuthorized PendingPaymentStatus = "authorized"
	// consumed: a booking was durably written for this payment
	PendingPaymentStatusConsumed PendingPaymentStatus = "consumed"
	// abandoned: timed out without confirmation, or escalated by the sweep
	PendingPaymentStatusAbandoned PendingPaymentStatus = "abandoned"
)

// PendingPayment is the single source of truth for whether money was ever
// set in motion for a booking request. idempotency_key and gateway_intent_id
// carry unique constraints.
type PendingPayment struct {
	BaseNoDelete
	IdempotencyKey  string               `db:"idempotency_key"`
	GatewayIntentID string               `db:"gateway_intent_id"`
	ClientSecret    string               `db:"client_secret"`
	AmountCents     int64                `db:"amount_cents"`
	Currency        string               `db:"currency"`
	Status          PendingPaymentStatus `db:"status"`
	RequestSnapshot []byte               `db:"request_snapshot"`
}

// BookingRequestSnapshot is the trusted copy of the booking request frozen
// at intent-creation time. The commit path builds the booking from this, so
// nothing at commit time depends on client input.
type BookingRequestSnapshot struct {
	ClientID    uuid.UUID   `json:"client_id"`
	SitterID    uuid.UUID   `json:"sitter_id"`
	ServiceType ServiceType `json:"service_type"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Location    string      `json:"location"`
	Notes       string      `json:"notes"`
}
