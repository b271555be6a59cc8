package gateway

import (
	"context"
	"errors"
)

// Intent statuses as reported by the gateway.
const (
	StatusSucceeded      = "succeeded"
	StatusRequiresAction = "requires_action"
	StatusCanceled       = "canceled"
)

var (
	// ErrUnavailable: transport or gateway-side failure, safe to retry.
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrRejected: the gateway refused the request, retrying will not help.
	ErrRejected = errors.New("payment gateway rejected request")
)

// Intent is the gateway's authorization object for a single charge.
type Intent struct {
	ID             string
	ClientSecret   string
	Status         string
	AmountCents    int64
	Currency       string
	LatestChargeID string
}

// Gateway is the outbound surface to the external payment provider. Both
// calls are safe to repeat: create dedupes on the idempotency key gateway
// side, retrieve is a read.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}
