package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrNotConfigured = errors.New("payment gateway secret key is not set")

type Stripe struct {
	api *client.API
}

// NewStripe builds the processor client. baseURL overrides the API endpoint
// and is empty in production.
func NewStripe(secretKey, baseURL string) (*Stripe, error) {
	if secretKey == "" {
		return nil, ErrNotConfigured
	}

	var backends *stripe.Backends
	if baseURL != "" {
		b := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:               stripe.String(baseURL),
			MaxNetworkRetries: stripe.Int64(0),
		})
		backends = &stripe.Backends{API: b, Connect: b, Uploads: b}
	}

	return &Stripe{api: client.New(secretKey, backends)}, nil
}

func (s *Stripe) CreateIntent(ctx context.Context, minorUnits int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(minorUnits),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}
	if pi.ClientSecret == "" {
		return "", errors.New("stripe: payment intent has no client secret")
	}
	return pi.ClientSecret, nil
}
