package attempts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/attempts"
	"quizdeck/internal/models"
	"quizdeck/internal/scoring"
	"quizdeck/internal/store"
	"quizdeck/internal/store/memory"
)

type fixture struct {
	tracker *attempts.Tracker
	quizzes *memory.QuizStore
	users   *memory.UserStore
	quiz    models.Quiz
	user    models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	quizzes := memory.NewQuizStore()
	attemptStore := memory.NewAttemptStore()
	users := memory.NewUserStore()

	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}
	if err := users.Insert(context.Background(), user); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	quiz := models.Quiz{
		ID:       primitive.NewObjectID(),
		Title:    "Basics",
		Duration: 10,
		// Deliberately wrong; the store must overwrite it with 15.
		TotalScore: 999,
		Questions: []models.Question{
			{ID: primitive.NewObjectID(), QuestionText: "Q1", Options: []string{"a", "b"}, CorrectOption: 1, Marks: 5},
			{ID: primitive.NewObjectID(), QuestionText: "Q2", Options: []string{"a", "b"}, CorrectOption: 0, Marks: 10},
		},
		CreatedBy: user.ID,
		Status:    models.QuizPublished,
		CreatedAt: time.Now(),
	}
	if err := quizzes.Insert(context.Background(), quiz); err != nil {
		t.Fatalf("insert quiz: %v", err)
	}

	return &fixture{
		tracker: attempts.NewTracker(quizzes, attemptStore, users),
		quizzes: quizzes,
		users:   users,
		quiz:    quiz,
		user:    user,
	}
}

func (f *fixture) answers(options ...int) []models.ResponseInput {
	responses := make([]models.ResponseInput, len(options))
	for i := range options {
		option := options[i]
		responses[i] = models.ResponseInput{
			QuestionID:     f.quiz.Questions[i].ID.Hex(),
			SelectedOption: &option,
		}
	}
	return responses
}

func TestTotalScoreRecomputedOnWrite(t *testing.T) {
	f := newFixture(t)
	quiz, err := f.quizzes.FindByID(context.Background(), f.quiz.ID)
	if err != nil {
		t.Fatalf("find quiz: %v", err)
	}
	if quiz.TotalScore != 15 {
		t.Fatalf("expected recomputed total score 15, got %d", quiz.TotalScore)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if first.Attempt.Status != models.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", first.Attempt.Status)
	}

	second, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID)
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if second.Attempt.ID != first.Attempt.ID {
		t.Fatalf("expected same attempt id, got %s and %s", first.Attempt.ID.Hex(), second.Attempt.ID.Hex())
	}
	if !second.Attempt.StartTime.Equal(first.Attempt.StartTime) {
		t.Fatal("restart must not reset the start time")
	}
}

func TestStartStripsCorrectOptions(t *testing.T) {
	f := newFixture(t)
	data, err := f.tracker.Start(context.Background(), f.user.ID, f.quiz.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(data.Quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(data.Quiz.Questions))
	}
	// TakeQuestion has no correct-option field; make sure the rest survived.
	if data.Quiz.Questions[0].QuestionText != "Q1" || data.Quiz.Questions[0].Marks != 5 {
		t.Fatalf("unexpected question payload: %+v", data.Quiz.Questions[0])
	}
}

func TestStartUnknownQuiz(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.Start(context.Background(), f.user.ID, primitive.NewObjectID())
	if !errors.Is(err, store.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitScoresAndCompletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	result, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, f.answers(1, 0))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 15 || result.TotalScore != 15 {
		t.Fatalf("expected 15/15, got %d/%d", result.Score, result.TotalScore)
	}
	if result.Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", result.Percentage)
	}
	for _, response := range result.Responses {
		if !response.IsCorrect {
			t.Fatalf("expected all responses correct, got %+v", response)
		}
	}
}

func TestSubmitPartialScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	result, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, f.answers(0, 0))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 10 {
		t.Fatalf("expected score 10, got %d", result.Score)
	}
	if result.Responses[0].IsCorrect {
		t.Fatalf("expected first response incorrect, got %+v", result.Responses[0])
	}
	if result.Percentage != 66.7 {
		t.Fatalf("expected 66.7%%, got %v", result.Percentage)
	}
}

func TestSubmitWithoutActiveAttempt(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.Submit(context.Background(), f.user.ID, f.quiz.ID, f.answers(1, 0))
	if !errors.Is(err, store.ErrNoActiveAttempt) {
		t.Fatalf("expected ErrNoActiveAttempt, got %v", err)
	}
}

func TestDoubleSubmitFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, f.answers(1, 0)); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, f.answers(0, 1))
	if !errors.Is(err, store.ErrNoActiveAttempt) {
		t.Fatalf("expected ErrNoActiveAttempt on second submit, got %v", err)
	}

	// The recorded result must still be the first submission's.
	result, err := f.tracker.Result(ctx, f.user.ID, f.quiz.ID)
	if err != nil {
		t.Fatalf("result failed: %v", err)
	}
	if result.UserScore != 15 {
		t.Fatalf("completed attempt was mutated: score %d", result.UserScore)
	}
}

func TestSubmitUnknownQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	option := 0
	_, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, []models.ResponseInput{
		{QuestionID: primitive.NewObjectID().Hex(), SelectedOption: &option},
	})
	var verr *scoring.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// A failed submit leaves the attempt in_progress for a manual retry.
	if _, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, f.answers(1, 0)); err != nil {
		t.Fatalf("retry after failed submit: %v", err)
	}
}

func TestResultRequiresCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	_, err := f.tracker.Result(ctx, f.user.ID, f.quiz.ID)
	if !errors.Is(err, store.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound before completion, got %v", err)
	}
}

func TestParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.Start(ctx, f.user.ID, f.quiz.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.tracker.Submit(ctx, f.user.ID, f.quiz.ID, f.answers(1, 0)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	participants, err := f.tracker.Participants(ctx, f.quiz.ID)
	if err != nil {
		t.Fatalf("participants failed: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(participants))
	}
	p := participants[0]
	if p.Username != "alice" || p.Score != 15 || p.Status != models.StatusCompleted {
		t.Fatalf("unexpected participant: %+v", p)
	}
	if p.TotalQuestions != 2 {
		t.Fatalf("expected 2 recorded responses, got %d", p.TotalQuestions)
	}
	if p.SubmitTime == nil {
		t.Fatal("expected submit time to be set")
	}
}
