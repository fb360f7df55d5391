// Package attempts implements the quiz-attempt lifecycle:
// not_started -> in_progress (start) -> completed (submit). Nothing leaves
// completed.
package attempts

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/scoring"
	"quizdeck/internal/store"
)

// Tracker owns attempt state transitions. Stores are injected; scoring is
// delegated to the scoring package.
type Tracker struct {
	quizzes  store.QuizStore
	attempts store.AttemptStore
	users    store.UserStore
	now      func() time.Time
}

func NewTracker(quizzes store.QuizStore, attempts store.AttemptStore, users store.UserStore) *Tracker {
	return NewTrackerWithClock(quizzes, attempts, users, time.Now)
}

// NewTrackerWithClock allows deterministic timestamps in tests.
func NewTrackerWithClock(quizzes store.QuizStore, attempts store.AttemptStore, users store.UserStore, now func() time.Time) *Tracker {
	return &Tracker{quizzes: quizzes, attempts: attempts, users: users, now: now}
}

// Start finds or creates the caller's attempt and returns the quiz prepared
// for taking. Calling it again while in_progress returns the same attempt
// without resetting the timer.
func (t *Tracker) Start(ctx context.Context, userID, quizID primitive.ObjectID) (models.StartQuizData, error) {
	quiz, err := t.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return models.StartQuizData{}, err
	}

	attempt, err := t.attempts.StartAttempt(ctx, userID, quizID, t.now())
	if err != nil {
		return models.StartQuizData{}, err
	}

	questions := make([]models.TakeQuestion, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		questions = append(questions, models.TakeQuestion{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			Options:      question.Options,
			Marks:        question.Marks,
		})
	}

	return models.StartQuizData{
		Quiz: models.TakeQuiz{
			ID:         quiz.ID,
			Title:      quiz.Title,
			Duration:   quiz.Duration,
			TotalScore: quiz.TotalScore,
			Questions:  questions,
		},
		Attempt: models.AttemptStub{
			ID:        attempt.ID,
			Status:    attempt.Status,
			StartTime: attempt.StartTime,
		},
	}, nil
}

// Submit grades the responses, persists them and completes the attempt. The
// transition is one-way: once completed, a second submit finds no in_progress
// attempt and fails.
func (t *Tracker) Submit(ctx context.Context, userID, quizID primitive.ObjectID, responses []models.ResponseInput) (models.SubmitResult, error) {
	quiz, err := t.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return models.SubmitResult{}, err
	}

	attempt, err := t.attempts.FindActive(ctx, userID, quizID)
	if err != nil {
		return models.SubmitResult{}, err
	}

	graded, total, err := scoring.Score(quiz.Questions, responses)
	if err != nil {
		return models.SubmitResult{}, err
	}

	if err := t.attempts.CompleteAttempt(ctx, attempt.ID, graded, total, t.now()); err != nil {
		return models.SubmitResult{}, err
	}

	byID := questionIndex(quiz.Questions)
	breakdown := make([]models.ResponseBreakdown, 0, len(graded))
	for _, response := range graded {
		question := byID[response.QuestionID]
		breakdown = append(breakdown, models.ResponseBreakdown{
			Question:       question.QuestionText,
			SelectedOption: response.SelectedOption,
			CorrectOption:  question.CorrectOption,
			IsCorrect:      response.IsCorrect,
			MarksObtained:  response.MarksObtained,
			TotalMarks:     question.Marks,
		})
	}

	percentage := 0.0
	if quiz.TotalScore > 0 {
		percentage = math.Round(float64(total)/float64(quiz.TotalScore)*1000) / 10
	}

	return models.SubmitResult{
		Message:    "Quiz submitted successfully",
		Score:      total,
		TotalScore: quiz.TotalScore,
		Percentage: percentage,
		Responses:  breakdown,
	}, nil
}

// Result returns the caller's completed attempt enriched with full question
// data, including the correct option.
func (t *Tracker) Result(ctx context.Context, userID, quizID primitive.ObjectID) (models.QuizResult, error) {
	attempt, err := t.attempts.FindCompleted(ctx, userID, quizID)
	if err != nil {
		return models.QuizResult{}, err
	}

	quiz, err := t.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return models.QuizResult{}, err
	}

	byID := questionIndex(quiz.Questions)
	responses := make([]models.ResultResponse, 0, len(attempt.Responses))
	for _, response := range attempt.Responses {
		question := byID[response.QuestionID]
		responses = append(responses, models.ResultResponse{
			Question:       question,
			SelectedOption: response.SelectedOption,
			IsCorrect:      response.IsCorrect,
			MarksObtained:  response.MarksObtained,
			TotalMarks:     question.Marks,
		})
	}

	return models.QuizResult{
		Quiz:      quiz,
		UserScore: attempt.Score,
		Responses: responses,
	}, nil
}

// Participants lists every attempt against the quiz with the taker's
// identity. Users deleted since their attempt show up with blank identity
// rather than dropping the row.
func (t *Tracker) Participants(ctx context.Context, quizID primitive.ObjectID) ([]models.Participant, error) {
	attempts, err := t.attempts.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(attempts))
	for _, attempt := range attempts {
		participant := models.Participant{
			ID:             attempt.ID,
			UserID:         attempt.User,
			Score:          attempt.Score,
			Status:         attempt.Status,
			SubmitTime:     attempt.SubmitTime,
			TotalQuestions: len(attempt.Responses),
		}
		if user, err := t.users.FindByID(ctx, attempt.User); err == nil {
			participant.Username = user.Username
			participant.Email = user.Email
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

// ParticipantResult returns one participant's raw attempt for the admin view.
func (t *Tracker) ParticipantResult(ctx context.Context, quizID, userID primitive.ObjectID) (models.Attempt, error) {
	return t.attempts.FindByUserAndQuiz(ctx, userID, quizID)
}

func questionIndex(questions []models.Question) map[primitive.ObjectID]models.Question {
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}
	return byID
}
