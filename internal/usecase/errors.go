package usecase

import "errors"

// Error taxonomy for the payment commit protocol. Handlers map these to
// HTTP statuses with errors.Is; services wrap them with context via
// fmt.Errorf("...: %w", Err...).
var (
	// ErrInvalidRequest: bad input, not retryable.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGatewayUnavailable: transient gateway failure, retryable with backoff.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrInvalidAmount: the computed amount was rejected, signals a logic
	// bug upstream, not retryable.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownIntent: no pending payment for the gateway intent. Forged
	// or stale commit call.
	ErrUnknownIntent = errors.New("unknown payment intent")
	// ErrAmountMismatch: the gateway-verified charge amount differs from
	// the recorded amount. Never silently accepted.
	ErrAmountMismatch = errors.New("charge amount does not match pending payment")
	// ErrPaymentNotVerified: the client claims success but the gateway
	// disagrees. No booking is created.
	ErrPaymentNotVerified = errors.New("payment not verified by gateway")
)
