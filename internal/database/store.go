package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"canteen/internal/store"
)

const (
	collectionCanteens  = "canteens"
	collectionMenuItems = "menuItems"
	collectionUsers     = "users"
	collectionOrders    = "orders"
	collectionWallets   = "wallets"
)

// Store is the MongoDB implementation of store.Store. Every mutation is a
// single-document update, so no multi-document transactions are required.
type Store struct {
	db *mongo.Database
}

var _ store.Store = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// notFound maps the driver's empty-result error onto store.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
