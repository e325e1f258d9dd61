package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"canteen/internal/apperror"
	"canteen/internal/models"
	"canteen/internal/store"
)

const maxRefundAttempts = 3

var successors = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range successors[from] {
		if next == to {
			return true
		}
	}
	return false
}

type LifecycleStore interface {
	FindOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, error)
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback models.Feedback) (models.Order, error)
	ReserveRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) (models.Order, error)
	ReleaseRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) error
}

type Refunder interface {
	Refund(ctx context.Context, userID primitive.ObjectID, amount decimal.Decimal, reason string, orderID primitive.ObjectID) (models.Wallet, error)
}

// Notifier is told about every committed order change.
type Notifier interface {
	OrderUpdated(order models.Order)
}

// Lifecycle owns order status transitions and feedback.
type Lifecycle struct {
	orders  LifecycleStore
	refunds Refunder
	notify  Notifier
	now     func() time.Time
}

func NewLifecycle(orders LifecycleStore, refunds Refunder, notify Notifier) *Lifecycle {
	return &Lifecycle{orders: orders, refunds: refunds, notify: notify, now: time.Now}
}

// Transition moves the order to target if target is a legal successor of
// the stored status. The write is conditional on the status read here, so
// two racing transitions cannot both succeed. A wallet order without a
// completed payment can only be cancelled. Cancelling a wallet-paid order
// refunds whatever part of its final amount was not refunded yet.
func (m *Lifecycle) Transition(ctx context.Context, orderID primitive.ObjectID, target models.OrderStatus) (*models.Order, error) {
	order, err := m.orders.FindOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.New(apperror.KindNotFound, "Order not found")
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to update order status")
	}

	if !CanTransition(order.Status, target) {
		return nil, apperror.New(apperror.KindInvalidTransition,
			"cannot move order from %s to %s", order.Status, target)
	}
	if target != models.OrderStatusCancelled && awaitingWalletPayment(order) {
		return nil, apperror.New(apperror.KindInvalidTransition,
			"wallet payment is %s, the order can only be cancelled", order.PaymentStatus)
	}

	updated, err := m.orders.UpdateOrderStatus(ctx, orderID, order.Status, target, m.now())
	if errors.Is(err, store.ErrStatusConflict) {
		return nil, apperror.New(apperror.KindInvalidTransition,
			"order is no longer %s, reload it and try again", order.Status)
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to update order status")
	}

	if target == models.OrderStatusCancelled &&
		updated.PaymentMethod == models.PaymentMethodWallet &&
		updated.PaymentStatus == models.PaymentStatusCompleted {
		updated, err = m.refundCancelled(ctx, updated)
		if err != nil {
			return nil, err
		}
	}

	if m.notify != nil {
		m.notify.OrderUpdated(updated)
	}
	return &updated, nil
}

// RefundOrder credits amount to the owner of the order. Refunds are reserved
// on the order first, so their running total never exceeds FinalAmount.
func (m *Lifecycle) RefundOrder(ctx context.Context, orderID primitive.ObjectID, amount decimal.Decimal, reason string) (*models.Order, models.Wallet, error) {
	order, w, err := m.refund(ctx, orderID, amount, reason)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, models.Wallet{}, apperror.New(apperror.KindNotFound, "Order not found")
	case errors.Is(err, store.ErrRefundExceeded):
		current, findErr := m.orders.FindOrder(ctx, orderID)
		if findErr != nil {
			return nil, models.Wallet{}, apperror.Storage(findErr, "failed to refund order")
		}
		return nil, models.Wallet{}, apperror.New(apperror.KindInvalidAmount,
			"Refund amount exceeds the refundable balance of %s", current.Refundable().StringFixed(2))
	case err != nil:
		return nil, models.Wallet{}, refundFailure(err)
	}
	return &order, w, nil
}

// settleCancelled refunds a wallet payment that completed after its order
// had already been cancelled.
func (m *Lifecycle) settleCancelled(ctx context.Context, orderID primitive.ObjectID) error {
	order, err := m.orders.FindOrder(ctx, orderID)
	if err != nil {
		return apperror.Storage(err, "failed to refund cancelled order")
	}
	refunded, err := m.refundCancelled(ctx, order)
	if err != nil {
		return err
	}
	if m.notify != nil {
		m.notify.OrderUpdated(refunded)
	}
	return apperror.New(apperror.KindInvalidTransition,
		"Order was cancelled before payment completed, the amount was refunded").
		WithDetail("orderId", orderID.Hex())
}

func (m *Lifecycle) refundCancelled(ctx context.Context, order models.Order) (models.Order, error) {
	for attempt := 1; order.Refundable().IsPositive(); attempt++ {
		_, _, err := m.refund(ctx, order.ID, order.Refundable(), "order cancelled")
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrRefundExceeded) || attempt == maxRefundAttempts {
			zap.L().Error("[ORDER] refund after cancellation failed",
				zap.String("orderId", order.ID.Hex()),
				zap.String("amount", order.Refundable().String()),
				zap.Error(err),
			)
			return models.Order{}, refundFailure(err)
		}
		// A manual refund landed in between; retry with what is left.
		if order, err = m.orders.FindOrder(ctx, order.ID); err != nil {
			return models.Order{}, apperror.Storage(err, "failed to refund cancelled order")
		}
	}

	refunded, err := m.orders.UpdatePaymentStatus(ctx, order.ID, models.PaymentStatusRefunded)
	if err != nil {
		return models.Order{}, apperror.Storage(err, "order refunded but payment status was not updated")
	}
	return refunded, nil
}

func (m *Lifecycle) refund(ctx context.Context, orderID primitive.ObjectID, amount decimal.Decimal, reason string) (models.Order, models.Wallet, error) {
	order, err := m.orders.ReserveRefund(ctx, orderID, amount)
	if err != nil {
		return models.Order{}, models.Wallet{}, err
	}
	w, err := m.refunds.Refund(ctx, order.UserID, amount, reason, order.ID)
	if err != nil {
		if releaseErr := m.orders.ReleaseRefund(ctx, orderID, amount); releaseErr != nil {
			zap.L().Error("[ORDER] releasing refund reservation",
				zap.String("orderId", orderID.Hex()),
				zap.String("amount", amount.String()),
				zap.Error(releaseErr),
			)
		}
		return models.Order{}, models.Wallet{}, err
	}
	return order, w, nil
}

func awaitingWalletPayment(order models.Order) bool {
	return order.PaymentMethod == models.PaymentMethodWallet &&
		order.PaymentStatus != models.PaymentStatusCompleted
}

// refundFailure keeps ledger errors as they are and hides store errors.
func refundFailure(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Storage(err, "failed to refund order")
}

// AttachFeedback stores the rating once; later attempts fail with AlreadySubmitted.
func (m *Lifecycle) AttachFeedback(ctx context.Context, orderID primitive.ObjectID, rating int, comment string) (*models.Order, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.New(apperror.KindInvalidRating, "rating must be between 1 and 5")
	}

	updated, err := m.orders.SetFeedback(ctx, orderID, models.Feedback{
		Rating:      rating,
		Comment:     comment,
		SubmittedAt: m.now(),
	})
	switch {
	case errors.Is(err, store.ErrFeedbackExists):
		return nil, apperror.New(apperror.KindAlreadySubmitted, "Feedback already submitted for this order")
	case errors.Is(err, store.ErrNotFound):
		return nil, apperror.New(apperror.KindNotFound, "Order not found")
	case err != nil:
		return nil, apperror.Storage(err, "failed to submit feedback")
	}

	if m.notify != nil {
		m.notify.OrderUpdated(updated)
	}
	return &updated, nil
}
