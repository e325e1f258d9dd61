package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderMode string

const (
	OrderModeDineIn   OrderMode = "dine-in"
	OrderModeTakeaway OrderMode = "takeaway"
	OrderModeDelivery OrderMode = "delivery"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCash   PaymentMethod = "cash"
)

// ParseOrderMode reports whether s names a known fulfillment channel.
func ParseOrderMode(s string) (OrderMode, bool) {
	switch m := OrderMode(s); m {
	case OrderModeDineIn, OrderModeTakeaway, OrderModeDelivery:
		return m, true
	}
	return "", false
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(s); m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet, PaymentMethodCash:
		return m, true
	}
	return "", false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderLine is a single menu item entry within an order. UnitPrice is copied
// from the catalog when the order is placed and never changes afterwards.
type OrderLine struct {
	MenuItemID          primitive.ObjectID `bson:"menuItemId" json:"menuItem"`
	Name                string             `bson:"name" json:"name"`
	Quantity            int                `bson:"quantity" json:"quantity"`
	UnitPrice           decimal.Decimal    `bson:"price" json:"price"`
	SpecialInstructions string             `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
}

// LineTotal returns UnitPrice * Quantity.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Feedback struct {
	Rating      int       `bson:"rating" json:"rating"`
	Comment     string    `bson:"comment" json:"comment"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
}

type StatusChange struct {
	Status OrderStatus `bson:"status" json:"status"`
	At     time.Time   `bson:"at" json:"at"`
}

// Order defines the persisted order document. Orders are never deleted.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	CanteenID       primitive.ObjectID `bson:"canteenId" json:"canteenId"`
	CanteenName     string             `bson:"canteenName" json:"canteenName"`
	Lines           []OrderLine        `bson:"items" json:"items"`
	OrderMode       OrderMode          `bson:"orderMode" json:"orderMode"`
	Subtotal        decimal.Decimal    `bson:"totalAmount" json:"totalAmount"`
	Discount        decimal.Decimal    `bson:"discount" json:"discount"`
	Tax             decimal.Decimal    `bson:"tax" json:"tax"`
	FinalAmount     decimal.Decimal    `bson:"finalAmount" json:"finalAmount"`
	RefundedAmount  decimal.Decimal    `bson:"refundedAmount" json:"refundedAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	SpecialRequests string             `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	TableNumber     string             `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	DeliveryAddress string             `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	EstimatedTime   int                `bson:"estimatedTime" json:"estimatedTime"`
	Feedback        *Feedback          `bson:"feedback,omitempty" json:"feedback,omitempty"`
	StatusHistory   []StatusChange     `bson:"statusHistory" json:"statusHistory"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Refundable returns what may still be refunded against the order.
func (o Order) Refundable() decimal.Decimal {
	return o.FinalAmount.Sub(o.RefundedAmount)
}
