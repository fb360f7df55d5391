package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
)

// AttemptStore is an in-memory implementation of store.AttemptStore. The
// mutex gives it the same one-active-attempt-per-(user, quiz) guarantee the
// Mongo partial unique index provides.
type AttemptStore struct {
	mu       sync.Mutex
	attempts map[primitive.ObjectID]models.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[primitive.ObjectID]models.Attempt)}
}

func (s *AttemptStore) StartAttempt(_ context.Context, user, quiz primitive.ObjectID, now time.Time) (models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, attempt := range s.attempts {
		if attempt.User != user || attempt.Quiz != quiz || attempt.Status == models.StatusCompleted {
			continue
		}
		if attempt.Status == models.StatusNotStarted {
			attempt.Status = models.StatusInProgress
			attempt.StartTime = now
			s.attempts[id] = attempt
		}
		return attempt, nil
	}

	attempt := models.Attempt{
		ID:        primitive.NewObjectID(),
		Quiz:      quiz,
		User:      user,
		Status:    models.StatusInProgress,
		Responses: []models.Response{},
		StartTime: now,
	}
	s.attempts[attempt.ID] = attempt
	return attempt, nil
}

func (s *AttemptStore) FindActive(_ context.Context, user, quiz primitive.ObjectID) (models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, attempt := range s.attempts {
		if attempt.User == user && attempt.Quiz == quiz && attempt.Status == models.StatusInProgress {
			return attempt, nil
		}
	}
	return models.Attempt{}, store.ErrNoActiveAttempt
}

func (s *AttemptStore) CompleteAttempt(_ context.Context, id primitive.ObjectID, responses []models.Response, score int, submitTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.attempts[id]
	if !ok || attempt.Status != models.StatusInProgress {
		return store.ErrNoActiveAttempt
	}
	attempt.Responses = responses
	attempt.Score = score
	attempt.Status = models.StatusCompleted
	t := submitTime
	attempt.SubmitTime = &t
	s.attempts[id] = attempt
	return nil
}

func (s *AttemptStore) FindCompleted(_ context.Context, user, quiz primitive.ObjectID) (models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, attempt := range s.attempts {
		if attempt.User == user && attempt.Quiz == quiz && attempt.Status == models.StatusCompleted {
			return attempt, nil
		}
	}
	return models.Attempt{}, store.ErrAttemptNotFound
}

func (s *AttemptStore) FindByUserAndQuiz(_ context.Context, user, quiz primitive.ObjectID) (models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, attempt := range s.attempts {
		if attempt.User == user && attempt.Quiz == quiz {
			return attempt, nil
		}
	}
	return models.Attempt{}, store.ErrAttemptNotFound
}

func (s *AttemptStore) FindByQuiz(_ context.Context, quiz primitive.ObjectID) ([]models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempts := []models.Attempt{}
	for _, attempt := range s.attempts {
		if attempt.Quiz == quiz {
			attempts = append(attempts, attempt)
		}
	}
	return attempts, nil
}

func (s *AttemptStore) FindByUser(_ context.Context, user primitive.ObjectID) ([]models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempts := []models.Attempt{}
	for _, attempt := range s.attempts {
		if attempt.User == user {
			attempts = append(attempts, attempt)
		}
	}
	return attempts, nil
}
