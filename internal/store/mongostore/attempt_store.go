package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
)

type AttemptStore struct {
	collection *mongo.Collection
}

func NewAttemptStore(db *mongo.Database) *AttemptStore {
	return &AttemptStore{collection: db.Collection("attempts")}
}

func activeFilter(user, quiz primitive.ObjectID) bson.M {
	return bson.M{
		"user":   user,
		"quiz":   quiz,
		"status": bson.M{"$in": []string{models.StatusNotStarted, models.StatusInProgress}},
	}
}

// StartAttempt reuses the caller's non-completed attempt if one exists,
// otherwise creates one in_progress. The partial unique index on
// (user, quiz) deduplicates concurrent creates: the losing insert re-reads
// the attempt the winner created.
func (s *AttemptStore) StartAttempt(ctx context.Context, user, quiz primitive.ObjectID, now time.Time) (models.Attempt, error) {
	var attempt models.Attempt
	err := s.collection.FindOne(ctx, activeFilter(user, quiz)).Decode(&attempt)
	if err == nil {
		if attempt.Status != models.StatusNotStarted {
			return attempt, nil
		}
		update := bson.M{"$set": bson.M{
			"status":     models.StatusInProgress,
			"start_time": now,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": attempt.ID}, update, opts).Decode(&attempt)
		return attempt, err
	}
	if err != mongo.ErrNoDocuments {
		return models.Attempt{}, err
	}

	attempt = models.Attempt{
		ID:        primitive.NewObjectID(),
		Quiz:      quiz,
		User:      user,
		Status:    models.StatusInProgress,
		Responses: []models.Response{},
		StartTime: now,
	}
	_, err = s.collection.InsertOne(ctx, attempt)
	if mongo.IsDuplicateKeyError(err) {
		err = s.collection.FindOne(ctx, activeFilter(user, quiz)).Decode(&attempt)
	}
	if err != nil {
		return models.Attempt{}, err
	}
	return attempt, nil
}

func (s *AttemptStore) FindActive(ctx context.Context, user, quiz primitive.ObjectID) (models.Attempt, error) {
	var attempt models.Attempt
	err := s.collection.FindOne(ctx, bson.M{
		"user":   user,
		"quiz":   quiz,
		"status": models.StatusInProgress,
	}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return models.Attempt{}, store.ErrNoActiveAttempt
	}
	return attempt, err
}

// CompleteAttempt is the one-way transition out of in_progress. The status
// guard in the filter makes a second submit a no-match, never an overwrite.
func (s *AttemptStore) CompleteAttempt(ctx context.Context, id primitive.ObjectID, responses []models.Response, score int, submitTime time.Time) error {
	filter := bson.M{"_id": id, "status": models.StatusInProgress}
	update := bson.M{"$set": bson.M{
		"responses":   responses,
		"score":       score,
		"status":      models.StatusCompleted,
		"submit_time": submitTime,
	}}
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNoActiveAttempt
	}
	return nil
}

func (s *AttemptStore) FindCompleted(ctx context.Context, user, quiz primitive.ObjectID) (models.Attempt, error) {
	var attempt models.Attempt
	err := s.collection.FindOne(ctx, bson.M{
		"user":   user,
		"quiz":   quiz,
		"status": models.StatusCompleted,
	}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return models.Attempt{}, store.ErrAttemptNotFound
	}
	return attempt, err
}

func (s *AttemptStore) FindByUserAndQuiz(ctx context.Context, user, quiz primitive.ObjectID) (models.Attempt, error) {
	var attempt models.Attempt
	err := s.collection.FindOne(ctx, bson.M{"user": user, "quiz": quiz}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return models.Attempt{}, store.ErrAttemptNotFound
	}
	return attempt, err
}

func (s *AttemptStore) FindByQuiz(ctx context.Context, quiz primitive.ObjectID) ([]models.Attempt, error) {
	return s.findAll(ctx, bson.M{"quiz": quiz})
}

func (s *AttemptStore) FindByUser(ctx context.Context, user primitive.ObjectID) ([]models.Attempt, error) {
	return s.findAll(ctx, bson.M{"user": user})
}

func (s *AttemptStore) findAll(ctx context.Context, filter bson.M) ([]models.Attempt, error) {
	cur, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	attempts := []models.Attempt{}
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
