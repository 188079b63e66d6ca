package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/pkg/logging"
)

const Currency = "usd"

// MaxMinorUnits is the largest single charge the processor accepts (999,999.99 usd).
const MaxMinorUnits int64 = 99_999_999

var (
	hundred  = decimal.NewFromInt(100)
	maxUnits = decimal.NewFromInt(MaxMinorUnits)
)

type Gateway interface {
	CreateIntent(ctx context.Context, minorUnits int64, currency string) (string, error)
}

type PaymentIntentService struct {
	Gateway Gateway
}

// MinorUnits converts a major-unit amount to cents, truncating toward zero.
// Amounts outside (0, MaxMinorUnits] are rejected before the int64
// conversion so they cannot wrap.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	units := amount.Mul(hundred).Truncate(0)
	if !units.IsPositive() {
		return 0, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}
	if units.GreaterThan(maxUnits) {
		return 0, fmt.Errorf("%w: price exceeds the maximum charge", ErrValidation)
	}
	return units.IntPart(), nil
}

func (s *PaymentIntentService) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	l := logging.FromContext(ctx).With("svc", "payment.create_intent")

	units, err := MinorUnits(amount)
	if err != nil {
		return "", err
	}

	secret, err := s.Gateway.CreateIntent(ctx, units, Currency)
	if err != nil {
		l.Error("create_intent_error", "status", 502, "amount", units, "error", err)
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return secret, nil
}
