package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem is owned by the catalog. Its price is the authoritative price at
// the moment an order is placed.
type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CanteenID       primitive.ObjectID `bson:"canteenId" json:"canteenId"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Price           decimal.Decimal    `bson:"price" json:"price"`
	Category        string             `bson:"category" json:"category"`
	Dietary         string             `bson:"dietary" json:"dietary"`
	IsAvailable     bool               `bson:"isAvailable" json:"isAvailable"`
	PreparationTime int                `bson:"preparationTime,omitempty" json:"preparationTime,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
