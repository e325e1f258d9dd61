// Package store declares the storage capabilities the ordering and wallet
// components are constructed with.
package store

//go:generate mockgen -destination=mock/store_mock.go -package=mock canteen/internal/store Orders,Wallets

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"canteen/internal/models"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrInsufficientFunds = errors.New("wallet balance is lower than the debit amount")
	ErrStatusConflict    = errors.New("order status changed concurrently")
	ErrFeedbackExists    = errors.New("order feedback already submitted")
	ErrRefundExceeded    = errors.New("refund would exceed the order total")
)

type MenuFilter struct {
	CanteenID primitive.ObjectID
	Category  string
	Dietary   string
}

// MenuItemUpdate carries the catalog fields an administrator may change.
// Nil fields are left untouched.
type MenuItemUpdate struct {
	Price       *decimal.Decimal
	IsAvailable *bool
}

type Catalog interface {
	FindCanteen(ctx context.Context, id primitive.ObjectID) (models.Canteen, error)
	ListCanteens(ctx context.Context) ([]models.Canteen, error)
	FindMenuItem(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error)
	ListMenuItems(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id primitive.ObjectID, update MenuItemUpdate) (models.MenuItem, error)
}

type Users interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

type Orders interface {
	// InsertOrder persists order in a single write and sets its ID.
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	ListUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// UpdateOrderStatus moves the order to "to" only if its stored status is
	// still "from". It returns ErrStatusConflict otherwise.
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, error)
	// CompletePayment marks a pending payment completed unless the order was
	// cancelled meanwhile, in which case it returns ErrStatusConflict.
	CompletePayment(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	// ReserveRefund adds amount to the order's refunded total only while the
	// new total stays within FinalAmount. It returns ErrRefundExceeded otherwise.
	ReserveRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) (models.Order, error)
	// ReleaseRefund gives back a reservation whose wallet credit failed.
	ReleaseRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) error
	// SetFeedback stores feedback unless the order already has some, in
	// which case it returns ErrFeedbackExists.
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback models.Feedback) (models.Order, error)
}

// Wallets applies every balance change as one atomic document update.
type Wallets interface {
	// EnsureWallet returns the user's wallet, creating an empty one if none
	// exists. Concurrent calls for the same user yield a single wallet.
	EnsureWallet(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error)
	FindWallet(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error)
	ApplyCredit(ctx context.Context, userID primitive.ObjectID, tx models.Transaction) (models.Wallet, error)
	// ApplyDebit appends tx only when balance >= tx.Amount and returns
	// ErrInsufficientFunds without mutating anything otherwise.
	ApplyDebit(ctx context.Context, userID primitive.ObjectID, tx models.Transaction) (models.Wallet, error)
	// ListTransactions returns a page of transactions, most recent first,
	// together with the total number of transactions.
	ListTransactions(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.Transaction, int64, error)
}

type Store interface {
	Catalog
	Users
	Orders
	Wallets
	Ping(ctx context.Context) error
}
