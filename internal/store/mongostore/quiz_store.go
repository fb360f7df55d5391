package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
)

type QuizStore struct {
	collection *mongo.Collection
}

func NewQuizStore(db *mongo.Database) *QuizStore {
	return &QuizStore{collection: db.Collection("quizzes")}
}

func (s *QuizStore) Insert(ctx context.Context, quiz models.Quiz) error {
	// The stored total score always matches the question marks, whatever the
	// caller supplied.
	quiz.RecomputeTotalScore()
	_, err := s.collection.InsertOne(ctx, quiz)
	return err
}

func (s *QuizStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Quiz, error) {
	var quiz models.Quiz
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return models.Quiz{}, store.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizStore) FindAll(ctx context.Context) ([]models.Quiz, error) {
	cur, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}
