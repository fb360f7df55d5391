package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
)

var (
	// ErrUserNotFound is returned when a user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound is returned when a quiz id does not resolve.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound is returned when no attempt matches the query.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrNoActiveAttempt is returned when a submit has no in_progress attempt to land on.
	ErrNoActiveAttempt = errors.New("no active quiz attempt found")
	// ErrDuplicateEmail and ErrDuplicateUsername identify which field collided on register.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

type UserStore interface {
	Insert(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, user models.User) error
}

type QuizStore interface {
	Insert(ctx context.Context, quiz models.Quiz) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Quiz, error)
	FindAll(ctx context.Context) ([]models.Quiz, error)
}

// AttemptStore persists attempt documents. StartAttempt must behave as an
// atomic find-or-create on (user, quiz, non-completed): concurrent calls for
// the same pair return the same attempt.
type AttemptStore interface {
	StartAttempt(ctx context.Context, user, quiz primitive.ObjectID, now time.Time) (models.Attempt, error)
	FindActive(ctx context.Context, user, quiz primitive.ObjectID) (models.Attempt, error)
	// CompleteAttempt transitions an in_progress attempt to completed. It
	// returns ErrNoActiveAttempt if the attempt was already completed or gone.
	CompleteAttempt(ctx context.Context, id primitive.ObjectID, responses []models.Response, score int, submitTime time.Time) error
	FindCompleted(ctx context.Context, user, quiz primitive.ObjectID) (models.Attempt, error)
	FindByUserAndQuiz(ctx context.Context, user, quiz primitive.ObjectID) (models.Attempt, error)
	FindByQuiz(ctx context.Context, quiz primitive.ObjectID) ([]models.Attempt, error)
	FindByUser(ctx context.Context, user primitive.ObjectID) ([]models.Attempt, error)
}
