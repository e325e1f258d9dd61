package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CanteenLocation struct {
	Building string `bson:"building,omitempty" json:"building,omitempty"`
	Floor    string `bson:"floor,omitempty" json:"floor,omitempty"`
}

type ServiceTypes struct {
	DineIn   bool `bson:"dineIn" json:"dineIn"`
	Takeaway bool `bson:"takeaway" json:"takeaway"`
	Delivery bool `bson:"delivery" json:"delivery"`
}

// Offers reports whether the canteen serves orders placed in mode m.
func (s ServiceTypes) Offers(m OrderMode) bool {
	switch m {
	case OrderModeDineIn:
		return s.DineIn
	case OrderModeTakeaway:
		return s.Takeaway
	case OrderModeDelivery:
		return s.Delivery
	}
	return false
}

type Canteen struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Location     CanteenLocation    `bson:"location" json:"location"`
	Cuisines     []string           `bson:"cuisines,omitempty" json:"cuisines,omitempty"`
	ServiceTypes ServiceTypes       `bson:"serviceTypes" json:"serviceTypes"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
