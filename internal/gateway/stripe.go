package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"go.uber.org/zap"
)

type StripeGateway struct {
	api *client.API
	log *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{
		api: api,
		log: log.With(zap.String("gateway", "stripe")),
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.SetIdempotencyKey(idempotencyKey)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.Int64("amount_cents", amountCents),
			zap.String("currency", currency),
		)
		return nil, fmt.Errorf("create payment intent: %w", classify(err))
	}

	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}
	params.AddExpand("latest_charge")

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		g.log.Error("Failed to retrieve payment intent",
			zap.Error(err),
			zap.String("intent_id", intentID),
		)
		return nil, fmt.Errorf("retrieve payment intent %s: %w", intentID, classify(err))
	}

	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	intent := &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
	}
	if pi.LatestCharge != nil {
		intent.LatestChargeID = pi.LatestCharge.ID
	}
	return intent
}

// classify folds the SDK error zoo into the two outcomes callers care
// about: worth retrying, or not.
func classify(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeAPI {
			return ErrUnavailable
		}
		return ErrRejected
	}
	// Non-stripe errors are transport failures
	return ErrUnavailable
}
