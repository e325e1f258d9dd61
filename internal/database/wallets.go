package database

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"canteen/internal/models"
	"canteen/internal/store"
)

// Two racing upserts for the same new user can both miss the filter; the
// unique userId index rejects the loser, which then retries as an update.
const upsertAttempts = 3

var withoutTransactions = bson.M{"transactions": 0}

func newWalletFields(now time.Time) bson.M {
	return bson.M{
		"isActive":  true,
		"createdAt": now,
	}
}

func (s *Store) EnsureWallet(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error) {
	now := time.Now()
	onInsert := newWalletFields(now)
	onInsert["balance"] = decimal.Zero
	onInsert["totalAdded"] = decimal.Zero
	onInsert["totalSpent"] = decimal.Zero
	onInsert["transactions"] = []models.Transaction{}
	onInsert["updatedAt"] = now

	update := bson.M{"$setOnInsert": onInsert}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(withoutTransactions)

	return s.upsertWallet(ctx, userID, update, opts)
}

func (s *Store) FindWallet(ctx context.Context, userID primitive.ObjectID) (models.Wallet, error) {
	opts := options.FindOne().SetProjection(withoutTransactions)
	var wallet models.Wallet
	err := s.collection(collectionWallets).FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&wallet)
	if err != nil {
		return models.Wallet{}, notFound(err)
	}
	return wallet, nil
}

func (s *Store) ApplyCredit(ctx context.Context, userID primitive.ObjectID, tx models.Transaction) (models.Wallet, error) {
	onInsert := newWalletFields(tx.Date)
	onInsert["totalSpent"] = decimal.Zero

	update := bson.M{
		"$inc": bson.M{
			"balance":    tx.Amount,
			"totalAdded": tx.Amount,
		},
		"$push":        bson.M{"transactions": tx},
		"$set":         bson.M{"updatedAt": tx.Date},
		"$setOnInsert": onInsert,
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(withoutTransactions)

	return s.upsertWallet(ctx, userID, update, opts)
}

// ApplyDebit only matches while the balance still covers the amount, so the
// check and the write happen as one operation on the server.
func (s *Store) ApplyDebit(ctx context.Context, userID primitive.ObjectID, tx models.Transaction) (models.Wallet, error) {
	filter := bson.M{
		"userId":  userID,
		"balance": bson.M{"$gte": tx.Amount},
	}
	update := bson.M{
		"$inc": bson.M{
			"balance":    tx.Amount.Neg(),
			"totalSpent": tx.Amount,
		},
		"$push": bson.M{"transactions": tx},
		"$set":  bson.M{"updatedAt": tx.Date},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutTransactions)

	var wallet models.Wallet
	err := s.collection(collectionWallets).FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, findErr := s.FindWallet(ctx, userID); findErr != nil {
			return models.Wallet{}, findErr
		}
		return models.Wallet{}, store.ErrInsufficientFunds
	}
	if err != nil {
		return models.Wallet{}, err
	}
	return wallet, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.Transaction, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$project", Value: bson.M{
			"total": bson.M{"$size": bson.M{"$ifNull": bson.A{"$transactions", bson.A{}}}},
			"transactions": bson.M{"$slice": bson.A{
				bson.M{"$reverseArray": bson.M{"$ifNull": bson.A{"$transactions", bson.A{}}}},
				offset,
				limit,
			}},
		}}},
	}

	cursor, err := s.collection(collectionWallets).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 0, store.ErrNotFound
	}

	var page struct {
		Total        int64                `bson:"total"`
		Transactions []models.Transaction `bson:"transactions"`
	}
	if err := cursor.Decode(&page); err != nil {
		return nil, 0, err
	}
	if page.Transactions == nil {
		page.Transactions = []models.Transaction{}
	}
	return page.Transactions, page.Total, nil
}

func (s *Store) upsertWallet(ctx context.Context, userID primitive.ObjectID, update bson.M, opts *options.FindOneAndUpdateOptions) (models.Wallet, error) {
	var (
		wallet models.Wallet
		err    error
	)
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		err = s.collection(collectionWallets).
			FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).
			Decode(&wallet)
		if err == nil {
			return wallet, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return models.Wallet{}, err
		}
	}
	return models.Wallet{}, err
}
