package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
)

// UserStore is an in-memory implementation of store.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *UserStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return store.ErrDuplicateUsername
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (s *UserStore) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}
