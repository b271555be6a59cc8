package request

import "time"

// BookingRequest is the client's description of the slot they want. It is
// ephemeral input to the quote/intent path; the amount is never taken from
// the client.
type BookingRequest struct {
	SitterID    string    `json:"sitter_id" validate:"required,uuid4"`
	ServiceType string    `json:"service_type" validate:"required,oneof=house_sitting dog_walking drop_in_visit overnight"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Location    string    `json:"location" validate:"required,max=255"`
	Notes       string    `json:"notes" validate:"max=2000"`
	AddOnCodes  []string  `json:"addon_codes" validate:"dive,max=64"`
	// Nonce distinguishes deliberate re-requests of the same slot from
	// transport retries. Empty means "same logical request".
	Nonce string `json:"nonce" validate:"max=64"`
}

// CommitBookingRequest carries the client's proof of a confirmed charge.
// Both IDs are re-verified against the gateway before anything is written.
type CommitBookingRequest struct {
	GatewayIntentID  string `json:"gateway_intent_id" validate:"required,max=255"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required,max=255"`
}
