package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is a single immutable ledger entry.
type Transaction struct {
	TransactionID string              `bson:"transactionId" json:"transactionId"`
	Type          TransactionType     `bson:"type" json:"type"`
	Amount        decimal.Decimal     `bson:"amount" json:"amount"`
	Description   string              `bson:"description" json:"description"`
	OrderID       *primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Date          time.Time           `bson:"date" json:"date"`
}

// Wallet holds a user's prepaid balance. Transactions are append-only and
// stored in chronological order. Balance always equals TotalAdded - TotalSpent.
type Wallet struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Balance      decimal.Decimal    `bson:"balance" json:"balance"`
	TotalAdded   decimal.Decimal    `bson:"totalAdded" json:"totalAdded"`
	TotalSpent   decimal.Decimal    `bson:"totalSpent" json:"totalSpent"`
	Transactions []Transaction      `bson:"transactions" json:"-"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
