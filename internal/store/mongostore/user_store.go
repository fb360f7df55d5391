package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
)

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{collection: db.Collection("users")}
}

func (s *UserStore) Insert(ctx context.Context, user models.User) error {
	// Pre-check so the error names the colliding field; the unique indexes
	// still catch the insert race.
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrDuplicateEmail
	}
	count, err = s.collection.CountDocuments(ctx, bson.M{"username": user.Username})
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrDuplicateUsername
	}

	_, err = s.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		count, countErr := s.collection.CountDocuments(ctx, bson.M{"email": user.Email})
		if countErr == nil && count > 0 {
			return store.ErrDuplicateEmail
		}
		return store.ErrDuplicateUsername
	}
	return err
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, store.ErrUserNotFound
	}
	return user, err
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, store.ErrUserNotFound
	}
	return user, err
}

func (s *UserStore) Update(ctx context.Context, user models.User) error {
	update := bson.M{"$set": bson.M{
		"username": user.Username,
		"email":    user.Email,
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
