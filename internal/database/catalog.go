package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"canteen/internal/models"
	"canteen/internal/store"
)

func (s *Store) FindCanteen(ctx context.Context, id primitive.ObjectID) (models.Canteen, error) {
	var canteen models.Canteen
	err := s.collection(collectionCanteens).FindOne(ctx, bson.M{"_id": id}).Decode(&canteen)
	if err != nil {
		return models.Canteen{}, notFound(err)
	}
	return canteen, nil
}

func (s *Store) ListCanteens(ctx context.Context) ([]models.Canteen, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection(collectionCanteens).Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	canteens := make([]models.Canteen, 0)
	if err := cursor.All(ctx, &canteens); err != nil {
		return nil, err
	}
	return canteens, nil
}

func (s *Store) FindMenuItem(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error) {
	var item models.MenuItem
	err := s.collection(collectionMenuItems).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return models.MenuItem{}, notFound(err)
	}
	return item, nil
}

func (s *Store) ListMenuItems(ctx context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
	query := bson.M{"canteenId": filter.CanteenID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Dietary != "" {
		query["dietary"] = filter.Dietary
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection(collectionMenuItems).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.MenuItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, id primitive.ObjectID, update store.MenuItemUpdate) (models.MenuItem, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.IsAvailable != nil {
		set["isAvailable"] = *update.IsAvailable
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.MenuItem
	err := s.collection(collectionMenuItems).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&item)
	if err != nil {
		return models.MenuItem{}, notFound(err)
	}
	return item, nil
}

func (s *Store) FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.collection(collectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}
