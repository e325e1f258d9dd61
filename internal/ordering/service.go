// Package ordering places orders against the catalog and drives them through
// their lifecycle.
package ordering

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"canteen/internal/apperror"
	"canteen/internal/models"
	"canteen/internal/store"
	"canteen/internal/wallet"
)

// Payer settles wallet payments. *wallet.Ledger satisfies it.
type Payer interface {
	Refunder
	Debit(ctx context.Context, userID primitive.ObjectID, amount decimal.Decimal, description string, orderID *primitive.ObjectID) (models.Wallet, error)
}

type Config struct {
	TaxPercent    int64
	EstimatedTime int
}

type Service struct {
	validator *PriceValidator
	assembler *Assembler
	lifecycle *Lifecycle
	orders    store.Orders
	payer     Payer
}

func NewService(catalog store.Catalog, users store.Users, orders store.Orders, payer Payer, notify Notifier, cfg Config) *Service {
	return &Service{
		validator: NewPriceValidator(catalog),
		assembler: NewAssembler(catalog, users, orders, TaxRate(cfg.TaxPercent), cfg.EstimatedTime),
		lifecycle: NewLifecycle(orders, payer, notify),
		orders:    orders,
		payer:     payer,
	}
}

type PlaceOrderInput struct {
	UserID          primitive.ObjectID
	CanteenID       string
	Items           []LineRequest
	OrderMode       string
	PaymentMethod   string
	SpecialRequests string
	TableNumber     string
	DeliveryAddress string
}

// PlaceOrder validates the cart, persists the order and, for wallet
// payments, debits the final amount. An order whose wallet debit is rejected
// stays on record with payment status failed. An order cancelled while its
// debit was in flight gets the debit refunded.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	canteenID, err := ParseID(in.CanteenID, "canteen")
	if err != nil {
		return nil, err
	}
	mode, ok := models.ParseOrderMode(in.OrderMode)
	if !ok {
		return nil, apperror.New(apperror.KindInvalidInput, "orderMode must be one of dine-in, takeaway, delivery")
	}
	method, ok := models.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, apperror.New(apperror.KindInvalidInput, "paymentMethod must be one of card, upi, wallet, cash")
	}

	lines, err := s.validator.Validate(ctx, canteenID, in.Items)
	if err != nil {
		return nil, err
	}

	order, err := s.assembler.Assemble(ctx, AssembleInput{
		UserID:          in.UserID,
		CanteenID:       canteenID,
		Lines:           lines,
		OrderMode:       mode,
		PaymentMethod:   method,
		SpecialRequests: in.SpecialRequests,
		TableNumber:     in.TableNumber,
		DeliveryAddress: in.DeliveryAddress,
	})
	if err != nil {
		return nil, err
	}

	if method != models.PaymentMethodWallet {
		return order, nil
	}
	return s.payWithWallet(ctx, order)
}

func (s *Service) payWithWallet(ctx context.Context, order *models.Order) (*models.Order, error) {
	_, debitErr := s.payer.Debit(ctx, order.UserID, order.FinalAmount, "Payment for order "+order.ID.Hex(), &order.ID)
	if debitErr != nil {
		var appErr *apperror.Error
		if errors.As(debitErr, &appErr) {
			appErr.WithDetail("orderId", order.ID.Hex())
		}
		if apperror.KindOf(debitErr) == apperror.KindStorage {
			// The debit outcome is unknown; leave the payment pending.
			return nil, debitErr
		}
		if _, err := s.orders.UpdatePaymentStatus(ctx, order.ID, models.PaymentStatusFailed); err != nil {
			zap.L().Error("[ORDER] marking payment failed",
				zap.String("orderId", order.ID.Hex()),
				zap.Error(err),
			)
		}
		return nil, debitErr
	}

	paid, err := s.orders.CompletePayment(ctx, order.ID)
	if errors.Is(err, store.ErrStatusConflict) {
		return nil, s.lifecycle.settleCancelled(ctx, order.ID)
	}
	if err != nil {
		return nil, apperror.Storage(err, "payment taken but order was not updated").
			WithDetail("orderId", order.ID.Hex())
	}
	return &paid, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	orderID, err := ParseID(id, "order")
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.KindNotFound, "Order not found")
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to fetch order")
	}
	return &order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, apperror.Storage(err, "failed to fetch orders")
	}
	return orders, nil
}

func (s *Service) Transition(ctx context.Context, id, status string) (*models.Order, error) {
	orderID, err := ParseID(id, "order")
	if err != nil {
		return nil, err
	}
	target, ok := models.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return nil, apperror.New(apperror.KindInvalidInput, "unknown order status %q", status)
	}
	return s.lifecycle.Transition(ctx, orderID, target)
}

func (s *Service) AttachFeedback(ctx context.Context, id string, rating int, comment string) (*models.Order, error) {
	orderID, err := ParseID(id, "order")
	if err != nil {
		return nil, err
	}
	return s.lifecycle.AttachFeedback(ctx, orderID, rating, strings.TrimSpace(comment))
}

// RefundOrder credits amount back to the wallet of the order's owner.
func (s *Service) RefundOrder(ctx context.Context, id string, amount decimal.Decimal, reason string) (*models.Order, models.Wallet, error) {
	orderID, err := ParseID(id, "order")
	if err != nil {
		return nil, models.Wallet{}, err
	}
	amount, err = wallet.NormalizeAmount(amount)
	if err != nil {
		return nil, models.Wallet{}, err
	}
	return s.lifecycle.RefundOrder(ctx, orderID, amount, strings.TrimSpace(reason))
}

// ParseID checks that raw is a well-formed identifier before any lookup.
func ParseID(raw, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, apperror.New(apperror.KindInvalidInput, "Invalid %s ID: %q", what, raw)
	}
	return id, nil
}
