package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/transport"
	"github.com/Skotchmaster/bistro/pkg/events"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type PaymentRepo interface {
	InsertPayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, email string) ([]models.Payment, error)
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
}

type CartRemover interface {
	RemoveCartEntries(ctx context.Context, ids []string) (int64, error)
}

// SettlementResult reports a recorded payment and how many of the requested
// cart entries were actually cleared.
type SettlementResult struct {
	Payment    *models.Payment
	Requested  int
	Deleted    int64
	CleanupErr error
}

func (r *SettlementResult) Complete() bool {
	return r.CleanupErr == nil && r.Deleted == int64(r.Requested)
}

type SettlementService struct {
	Payments PaymentRepo
	Cart     CartRemover
	Events   events.Publisher
}

// Settle records the payment first and clears the cart second. The two
// writes are not wrapped in a transaction: once the payment is stored the
// call succeeds, and a short or failed cleanup shows up in the result.
// The amount is stored as sent; it is not recomputed from the cart.
func (s *SettlementService) Settle(ctx context.Context, req transport.CreatePaymentRequest) (*SettlementResult, error) {
	l := logging.FromContext(ctx).With("svc", "settlement.settle", "email", req.Email)

	if err := validatePayment(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	payment := &models.Payment{
		Email:         req.Email,
		Amount:        req.Price,
		TransactionID: req.TransactionID,
		Status:        status,
		CartEntryIDs:  append([]string(nil), req.CartIDs...),
		MenuItemIDs:   append([]string(nil), req.MenuItemIDs...),
	}
	if err := s.Payments.InsertPayment(ctx, payment); err != nil {
		l.Error("payment_insert_error", "status", 500, "error", err)
		return nil, fmt.Errorf("record payment: %w", err)
	}

	res := &SettlementResult{Payment: payment, Requested: len(req.CartIDs)}

	deleted, err := s.Cart.RemoveCartEntries(ctx, req.CartIDs)
	if err != nil {
		res.CleanupErr = err
		l.Error("cart_cleanup_error", "payment_id", payment.ID, "requested", res.Requested, "error", err)
	} else {
		res.Deleted = deleted
		if !res.Complete() {
			l.Warn("cart_cleanup_partial", "payment_id", payment.ID, "requested", res.Requested, "deleted", deleted)
		}
	}

	s.publish(ctx, res)
	l.Info("payment_settled", "payment_id", payment.ID, "deleted", res.Deleted)
	return res, nil
}

func (s *SettlementService) ListByOwner(ctx context.Context, email string) ([]models.Payment, error) {
	return s.Payments.ListPayments(ctx, email)
}

// GetForOwner returns one payment of the owner. A payment that belongs to
// someone else is reported as not found.
func (s *SettlementService) GetForOwner(ctx context.Context, email, id string) (*models.Payment, error) {
	p, err := s.Payments.GetPayment(ctx, id)
	if err != nil {
		return nil, notFound(err, "payment")
	}
	if p.Email != email {
		return nil, fmt.Errorf("%w: payment", ErrNotFound)
	}
	return p, nil
}

func validatePayment(req transport.CreatePaymentRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email required", ErrValidation)
	}
	if strings.TrimSpace(req.TransactionID) == "" {
		return fmt.Errorf("%w: transaction_id required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	for _, id := range req.CartIDs {
		if id == "" {
			return fmt.Errorf("%w: empty cart id", ErrValidation)
		}
	}
	for _, id := range req.MenuItemIDs {
		if id == "" {
			return fmt.Errorf("%w: empty menu item id", ErrValidation)
		}
	}
	return nil
}

func (s *SettlementService) publish(ctx context.Context, res *SettlementResult) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":          "payment_settled",
		"paymentID":     res.Payment.ID,
		"email":         res.Payment.Email,
		"amount":        res.Payment.Amount.StringFixed(2),
		"transactionID": res.Payment.TransactionID,
		"requested":     res.Requested,
		"deleted":       res.Deleted,
		"complete":      res.Complete(),
	}
	if err := s.Events.PublishEvent(ctx, events.TopicPayments, res.Payment.ID, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", events.TopicPayments, "error", err)
	}
}
