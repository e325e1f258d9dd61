package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureWalletIndexes makes userId unique so that concurrent first access
// can only ever create one wallet per user, and keeps transaction ids unique
// across wallets.
func EnsureWalletIndexes(db *mongo.Database) error {
	return ensureIndexes(db, collectionWallets,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_unique").SetUnique(true),
		},
		mongo.IndexModel{
			Keys: bson.D{{Key: "transactions.transactionId", Value: 1}},
			Options: options.Index().
				SetName("transactionId_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"transactions.transactionId": bson.M{"$exists": true},
				}),
		},
	)
}

func EnsureOrderIndexes(db *mongo.Database) error {
	return ensureIndexes(db, collectionOrders,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("userId_createdAt"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "canteenId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("canteenId_status"),
		},
	)
}

func EnsureMenuIndexes(db *mongo.Database) error {
	return ensureIndexes(db, collectionMenuItems,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "canteenId", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().SetName("canteenId_category"),
		},
	)
}

// EnsureIndexes creates every index the store relies on.
func EnsureIndexes(db *mongo.Database) error {
	for _, ensure := range []func(*mongo.Database) error{
		EnsureWalletIndexes,
		EnsureOrderIndexes,
		EnsureMenuIndexes,
	} {
		if err := ensure(db); err != nil {
			return err
		}
	}
	return nil
}

func ensureIndexes(db *mongo.Database, collection string, models ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		zap.L().Error("[DB] index creation failed", zap.String("collection", collection), zap.Error(err))
		return err
	}
	zap.L().Info("[DB] indexes ensured", zap.String("collection", collection), zap.Strings("indexes", names))
	return nil
}
