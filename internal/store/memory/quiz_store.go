package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
)

// QuizStore is an in-memory implementation of store.QuizStore.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[primitive.ObjectID]models.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[primitive.ObjectID]models.Quiz)}
}

func (s *QuizStore) Insert(_ context.Context, quiz models.Quiz) error {
	quiz.RecomputeTotalScore()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *QuizStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return models.Quiz{}, store.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) FindAll(_ context.Context) ([]models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quizzes := make([]models.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}
