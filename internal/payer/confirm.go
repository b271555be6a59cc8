// Package payer is the device-side half of the payment protocol. It talks
// to the gateway directly with the client secret, so card details never
// pass through the application server.
package payer

import (
	"context"
	"fmt"
	"strings"

	"sitter-booking/internal/gateway"

	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeSucceeded      Outcome = "succeeded"
	OutcomeRequiresAction Outcome = "requires_action"
	OutcomeFailed         Outcome = "failed"
)

// Result is the single terminal state the payer sees: a charge that went
// through, or a failure with a message. No booking attempt happens on
// failure.
type Result struct {
	Outcome          Outcome
	GatewayPaymentID string
	ErrorMessage     string
}

// Confirmer is the gateway confirm surface the adapter drives.
type Confirmer interface {
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*gateway.Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*gateway.Intent, error)
}

// ChallengeHandler completes an additional-authentication challenge (e.g.
// a bank 3DS prompt). It may block indefinitely on payer interaction; a
// returned error means the payer cancelled.
type ChallengeHandler func(ctx context.Context, intent *gateway.Intent) error

type Adapter struct {
	confirmer Confirmer
	challenge ChallengeHandler
	log       *zap.Logger
}

func NewAdapter(confirmer Confirmer, challenge ChallengeHandler, log *zap.Logger) *Adapter {
	return &Adapter{
		confirmer: confirmer,
		challenge: challenge,
		log:       log.With(zap.String("component", "payer")),
	}
}

// Confirm authorizes the charge for clientSecret and loops the gateway's
// challenge flow until a terminal state. Always returns a Result for
// gateway-level declines; the error return is reserved for transport
// failures where the outcome is unknown.
func (a *Adapter) Confirm(ctx context.Context, clientSecret, paymentMethodID string) (*Result, error) {
	intentID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return &Result{Outcome: OutcomeFailed, ErrorMessage: err.Error()}, nil
	}

	intent, err := a.confirmer.ConfirmIntent(ctx, intentID, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("confirm intent %s: %w", intentID, err)
	}

	for intent.Status == gateway.StatusRequiresAction {
		if a.challenge == nil {
			return &Result{
				Outcome:      OutcomeFailed,
				ErrorMessage: "additional authentication required but no challenge handler configured",
			}, nil
		}

		if err := a.challenge(ctx, intent); err != nil {
			a.log.Info("Payer cancelled challenge",
				zap.String("intent_id", intentID),
				zap.Error(err),
			)
			return &Result{
				Outcome:      OutcomeFailed,
				ErrorMessage: "payment authentication cancelled",
			}, nil
		}

		intent, err = a.confirmer.RetrieveIntent(ctx, intentID)
		if err != nil {
			return nil, fmt.Errorf("retrieve intent %s after challenge: %w", intentID, err)
		}
	}

	switch intent.Status {
	case gateway.StatusSucceeded:
		return &Result{
			Outcome:          OutcomeSucceeded,
			GatewayPaymentID: intent.LatestChargeID,
		}, nil
	default:
		a.log.Info("Payment confirmation failed",
			zap.String("intent_id", intentID),
			zap.String("status", intent.Status),
		)
		return &Result{
			Outcome:      OutcomeFailed,
			ErrorMessage: fmt.Sprintf("payment not completed, gateway status %s", intent.Status),
		}, nil
	}
}

// IntentIDFromSecret extracts the intent ID from a client secret of the
// form "<intent_id>_secret_<...>".
func IntentIDFromSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret")
	if idx <= 0 {
		return "", fmt.Errorf("malformed client secret")
	}
	return clientSecret[:idx], nil
}
