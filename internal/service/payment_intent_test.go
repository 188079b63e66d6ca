package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	units    int64
	currency string
	err      error
}

func (g *fakeGateway) CreateIntent(_ context.Context, minorUnits int64, currency string) (string, error) {
	g.units = minorUnits
	g.currency = currency
	if g.err != nil {
		return "", g.err
	}
	return "pi_secret", nil
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		want   int64
	}{
		{"10", 1000},
		{"10.00", 1000},
		{"12.345", 1234},
		{"0.019", 1},
		{"999999.99", MaxMinorUnits},
		{"999999.999", MaxMinorUnits},
	}
	for _, tt := range tests {
		got, err := MinorUnits(decimal.RequireFromString(tt.amount))
		require.NoError(t, err, tt.amount)
		assert.Equal(t, tt.want, got, tt.amount)
	}
}

func TestMinorUnits_OutOfRange(t *testing.T) {
	t.Parallel()

	for _, amount := range []string{
		"0",
		"0.001",
		"-1.005",
		"1000000.00",
		"100000000000000000",
		"184467440737095516.17",
	} {
		got, err := MinorUnits(decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, ErrValidation, amount)
		assert.Zero(t, got, amount)
	}
}

func TestPaymentIntentService_CreateIntent(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	svc := &PaymentIntentService{Gateway: gw}

	secret, err := svc.CreateIntent(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", secret)
	assert.EqualValues(t, 1000, gw.units)
	assert.Equal(t, "usd", gw.currency)
}

func TestPaymentIntentService_Errors(t *testing.T) {
	t.Parallel()

	svc := &PaymentIntentService{Gateway: &fakeGateway{}}
	_, err := svc.CreateIntent(context.Background(), decimal.RequireFromString("0.004"))
	assert.ErrorIs(t, err, ErrValidation)

	huge := &fakeGateway{}
	svc = &PaymentIntentService{Gateway: huge}
	_, err = svc.CreateIntent(context.Background(), decimal.RequireFromString("184467440737095516.17"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, huge.units)

	svc = &PaymentIntentService{Gateway: &fakeGateway{err: errors.New("card declined")}}
	_, err = svc.CreateIntent(context.Background(), decimal.NewFromInt(5))
	assert.ErrorIs(t, err, ErrGateway)
}
