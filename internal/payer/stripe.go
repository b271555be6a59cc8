package payer

import (
	"context"
	"fmt"

	"sitter-booking/internal/gateway"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// StripeConfirmer drives the gateway's confirm endpoint for the payer.
// Initialized with a publishable-scope key; it can confirm an intent it
// holds the client secret for, nothing else.
type StripeConfirmer struct {
	api *client.API
}

func NewStripeConfirmer(key string) *StripeConfirmer {
	api := &client.API{}
	api.Init(key, nil)
	return &StripeConfirmer{api: api}
}

func (c *StripeConfirmer) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*gateway.Intent, error) {
	params := &stripe.PaymentIntentConfirmParams{
		Params: stripe.Params{
			Context: ctx,
		},
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.AddExpand("latest_charge")

	pi, err := c.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("confirm payment intent %s: %w", intentID, err)
	}

	return toGatewayIntent(pi), nil
}

func (c *StripeConfirmer) RetrieveIntent(ctx context.Context, intentID string) (*gateway.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}
	params.AddExpand("latest_charge")

	pi, err := c.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent %s: %w", intentID, err)
	}

	return toGatewayIntent(pi), nil
}

func toGatewayIntent(pi *stripe.PaymentIntent) *gateway.Intent {
	intent := &gateway.Intent{
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
