// Package wallet implements the prepaid wallet ledger: one balance per user
// and an append-only transaction log. Every balance change goes through
// Credit, Debit or Refund, and each is applied by the store as a single
// conditional document update, so concurrent debits for one user can never
// take the balance below zero.
package wallet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"canteen/internal/apperror"
	"canteen/internal/models"
	"canteen/internal/store"
)

const (
	DefaultCreditLimit = 100000

	// MaxDecimalPlaces is the finest unit an amount may carry.
	MaxDecimalPlaces = 2

	DefaultPageSize = 20
	MaxPageSize     = 100
	RecentCount     = 10
)

// maxAmount keeps every amount well inside what a Decimal128 field can hold.
var maxAmount = decimal.New(1, 15)

// NormalizeAmount rejects amounts that are not positive, carry more than
// MaxDecimalPlaces decimals or are too large to store. The returned value
// drops trailing zeros beyond MaxDecimalPlaces.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperror.New(apperror.KindInvalidAmount, "Invalid amount: must be greater than zero")
	}
	normalized := amount.Truncate(MaxDecimalPlaces)
	if !normalized.Equal(amount) {
		return decimal.Zero, apperror.New(apperror.KindInvalidAmount,
			"Invalid amount: at most %d decimal places are allowed", MaxDecimalPlaces)
	}
	if normalized.GreaterThan(maxAmount) {
		return decimal.Zero, apperror.New(apperror.KindInvalidAmount, "Invalid amount: must not exceed %s", maxAmount.String())
	}
	return normalized, nil
}

type Ledger struct {
	store       store.Wallets
	creditLimit decimal.Decimal
	now         func() time.Time
}

type Option func(*Ledger)

// WithCreditLimit sets the largest amount a single credit or refund may carry.
func WithCreditLimit(limit decimal.Decimal) Option {
	return func(l *Ledger) { l.creditLimit = limit }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(s store.Wallets, opts ...Option) *Ledger {
	l := &Ledger{
		store:       s,
		creditLimit: decimal.NewFromInt(DefaultCreditLimit),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Page is one slice of a wallet's history, most recent first.
type Page struct {
	Transactions []models.Transaction
	Total        int64
}

type Summary struct {
	Wallet models.Wallet
	Recent []models.Transaction
}

// GetOrCreate returns the user's wallet, creating an empty one on first access.
func (l *Ledger) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error) {
	w, err := l.store.EnsureWallet(ctx, userID)
	if err != nil {
		return models.Wallet{}, apperror.Storage(err, "failed to fetch wallet")
	}
	return w, nil
}

// Summary returns the wallet together with its most recent transactions.
func (l *Ledger) Summary(ctx context.Context, userID primitive.ObjectID) (Summary, error) {
	w, err := l.GetOrCreate(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	recent, _, err := l.store.ListTransactions(ctx, userID, RecentCount, 0)
	if err != nil {
		return Summary{}, apperror.Storage(err, "failed to fetch wallet")
	}
	return Summary{Wallet: w, Recent: recent}, nil
}

// CheckBalance reports the spendable balance and whether the wallet is active.
func (l *Ledger) CheckBalance(ctx context.Context, userID primitive.ObjectID) (decimal.Decimal, bool, error) {
	w, err := l.GetOrCreate(ctx, userID)
	if err != nil {
		return decimal.Zero, false, err
	}
	return w.Balance, w.IsActive, nil
}

func (l *Ledger) Credit(ctx context.Context, userID primitive.ObjectID, amount decimal.Decimal, description string, orderID *primitive.ObjectID) (models.Wallet, error) {
	amount, err := l.validateCredit(amount)
	if err != nil {
		return models.Wallet{}, err
	}
	if strings.TrimSpace(description) == "" {
		description = "Money added"
	}
	return l.credit(ctx, userID, prefixTransaction, amount, description, orderID)
}

// Refund credits amount back to the wallet, tagged with the originating order.
func (l *Ledger) Refund(ctx context.Context, userID primitive.ObjectID, amount decimal.Decimal, reason string, orderID primitive.ObjectID) (models.Wallet, error) {
	amount, err := l.validateCredit(amount)
	if err != nil {
		return models.Wallet{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Wallet{}, apperror.New(apperror.KindInvalidInput, "refund reason is required")
	}
	if orderID.IsZero() {
		return models.Wallet{}, apperror.New(apperror.KindInvalidInput, "orderId is required for a refund")
	}
	return l.credit(ctx, userID, prefixRefund, amount, "Refund: "+reason, &orderID)
}

func (l *Ledger) Debit(ctx context.Context, userID primitive.ObjectID, amount decimal.Decimal, description string, orderID *primitive.ObjectID) (models.Wallet, error) {
	amount, err := NormalizeAmount(amount)
	if err != nil {
		return models.Wallet{}, err
	}
	if strings.TrimSpace(description) == "" {
		description = "Order payment"
	}
	if _, err := l.GetOrCreate(ctx, userID); err != nil {
		return models.Wallet{}, err
	}

	tx, err := l.newTransaction(prefixTransaction, models.TransactionDebit, amount, description, orderID)
	if err != nil {
		return models.Wallet{}, err
	}

	w, err := l.store.ApplyDebit(ctx, userID, tx)
	if errors.Is(err, store.ErrInsufficientFunds) {
		current, findErr := l.store.FindWallet(ctx, userID)
		if findErr != nil {
			return models.Wallet{}, apperror.Storage(findErr, "failed to process payment")
		}
		zap.L().Info("[WALLET] debit rejected",
			zap.String("userId", userID.Hex()),
			zap.String("amount", amount.String()),
			zap.String("balance", current.Balance.String()),
		)
		return models.Wallet{}, apperror.New(apperror.KindInsufficientBalance,
			"Insufficient balance: you have %s", current.Balance.StringFixed(2)).
			WithDetail("availableBalance", current.Balance)
	}
	if err != nil {
		return models.Wallet{}, apperror.Storage(err, "failed to process payment")
	}
	return w, nil
}

// ListTransactions returns up to limit transactions starting offset entries
// back from the most recent one.
func (l *Ledger) ListTransactions(ctx context.Context, userID primitive.ObjectID, limit, offset int64) (Page, error) {
	if limit < 1 || limit > MaxPageSize {
		return Page{}, apperror.New(apperror.KindInvalidInput, "limit must be between 1 and %d", MaxPageSize)
	}
	if offset < 0 {
		return Page{}, apperror.New(apperror.KindInvalidInput, "skip must not be negative")
	}
	if _, err := l.GetOrCreate(ctx, userID); err != nil {
		return Page{}, err
	}
	txs, total, err := l.store.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		return Page{}, apperror.Storage(err, "failed to fetch transactions")
	}
	return Page{Transactions: txs, Total: total}, nil
}

func (l *Ledger) credit(ctx context.Context, userID primitive.ObjectID, prefix string, amount decimal.Decimal, description string, orderID *primitive.ObjectID) (models.Wallet, error) {
	tx, err := l.newTransaction(prefix, models.TransactionCredit, amount, description, orderID)
	if err != nil {
		return models.Wallet{}, err
	}
	w, err := l.store.ApplyCredit(ctx, userID, tx)
	if err != nil {
		return models.Wallet{}, apperror.Storage(err, "failed to credit wallet")
	}
	return w, nil
}

func (l *Ledger) validateCredit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperror.New(apperror.KindInvalidAmount, "Invalid amount. Please add at least 1")
	}
	if amount.GreaterThan(l.creditLimit) {
		return decimal.Zero, apperror.New(apperror.KindLimitExceeded, "Maximum limit is %s per transaction", l.creditLimit.String())
	}
	return NormalizeAmount(amount)
}

func (l *Ledger) newTransaction(prefix string, typ models.TransactionType, amount decimal.Decimal, description string, orderID *primitive.ObjectID) (models.Transaction, error) {
	now := l.now()
	id, err := newTransactionID(prefix, now)
	if err != nil {
		return models.Transaction{}, apperror.Storage(err, "failed to record transaction")
	}
	return models.Transaction{
		TransactionID: id,
		Type:          typ,
		Amount:        amount,
		Description:   description,
		OrderID:       orderID,
		Date:          now,
	}, nil
}
