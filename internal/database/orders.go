package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"canteen/internal/models"
	"canteen/internal/store"
)

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := s.collection(collectionOrders).InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *Store) FindOrder(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := s.collection(collectionOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return models.Order{}, notFound(err)
	}
	return order, nil
}

func (s *Store) ListUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection(collectionOrders).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (models.Order, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set":  bson.M{"status": to, "updatedAt": at},
		"$push": bson.M{"statusHistory": models.StatusChange{Status: to, At: at}},
	}

	order, err := s.findOneAndUpdateOrder(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, s.missOrConflict(ctx, id, store.ErrStatusConflict)
	}
	return order, err
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Order, error) {
	update := bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now()}}
	order, err := s.findOneAndUpdateOrder(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return models.Order{}, notFound(err)
	}
	return order, nil
}

func (s *Store) CompletePayment(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	filter := bson.M{
		"_id":           id,
		"paymentStatus": models.PaymentStatusPending,
		"status":        bson.M{"$ne": models.OrderStatusCancelled},
	}
	update := bson.M{"$set": bson.M{"paymentStatus": models.PaymentStatusCompleted, "updatedAt": time.Now()}}

	order, err := s.findOneAndUpdateOrder(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, s.missOrConflict(ctx, id, store.ErrStatusConflict)
	}
	return order, err
}

func (s *Store) ReserveRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) (models.Order, error) {
	// Orders written before refunds were tracked have no refundedAmount.
	refunded := bson.M{"$ifNull": bson.A{"$refundedAmount", decimal.Zero}}
	filter := bson.M{
		"_id": id,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{refunded, amount}},
			"$finalAmount",
		}},
	}
	update := bson.M{
		"$inc": bson.M{"refundedAmount": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	order, err := s.findOneAndUpdateOrder(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, s.missOrConflict(ctx, id, store.ErrRefundExceeded)
	}
	return order, err
}

func (s *Store) ReleaseRefund(ctx context.Context, id primitive.ObjectID, amount decimal.Decimal) error {
	update := bson.M{"$inc": bson.M{"refundedAmount": amount.Neg()}}
	res, err := s.collection(collectionOrders).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("release refund: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback models.Feedback) (models.Order, error) {
	// A missing field and an explicit null both match.
	filter := bson.M{"_id": id, "feedback": nil}
	update := bson.M{"$set": bson.M{"feedback": feedback}}

	order, err := s.findOneAndUpdateOrder(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, s.missOrConflict(ctx, id, store.ErrFeedbackExists)
	}
	return order, err
}

func (s *Store) findOneAndUpdateOrder(ctx context.Context, filter, update bson.M) (models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := s.collection(collectionOrders).FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	return order, err
}

// missOrConflict tells a missing order apart from a guard that no longer
// holds after a conditional update matched nothing.
func (s *Store) missOrConflict(ctx context.Context, id primitive.ObjectID, conflict error) error {
	n, err := s.collection(collectionOrders).CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return conflict
}
