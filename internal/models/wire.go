package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wire types shared between the HTTP handlers and the taker client.

// TakeQuestion is a question as shown to a user mid-attempt: the correct
// option is stripped.
type TakeQuestion struct {
	ID           primitive.ObjectID `json:"id"`
	QuestionText string             `json:"questionText"`
	Options      []string           `json:"options"`
	Marks        int                `json:"marks"`
}

type TakeQuiz struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Duration   int                `json:"duration"`
	TotalScore int                `json:"totalScore"`
	Questions  []TakeQuestion     `json:"questions"`
}

type AttemptStub struct {
	ID        primitive.ObjectID `json:"id"`
	Status    string             `json:"status"`
	StartTime time.Time          `json:"startTime"`
}

// StartQuizData is the payload returned by POST /quiz/{id}/start.
type StartQuizData struct {
	Quiz    TakeQuiz    `json:"quiz"`
	Attempt AttemptStub `json:"attempt"`
}

// ResponseInput is one submitted answer. SelectedOption is a pointer so a
// missing field is distinguishable from option zero.
type ResponseInput struct {
	QuestionID     string `json:"questionId" validate:"required"`
	SelectedOption *int   `json:"selectedOption" validate:"required"`
}

type SubmitQuizRequest struct {
	Responses []ResponseInput `json:"responses" validate:"required,dive"`
}

type ResponseBreakdown struct {
	Question       string `json:"question"`
	SelectedOption int    `json:"selectedOption"`
	CorrectOption  int    `json:"correctOption"`
	IsCorrect      bool   `json:"isCorrect"`
	MarksObtained  int    `json:"marksObtained"`
	TotalMarks     int    `json:"totalMarks"`
}

// SubmitResult is the payload returned by POST /quiz/{id}/submit.
type SubmitResult struct {
	Message    string              `json:"message"`
	Score      int                 `json:"score"`
	TotalScore int                 `json:"totalScore"`
	Percentage float64             `json:"percentage"`
	Responses  []ResponseBreakdown `json:"responses"`
}

type ResultResponse struct {
	Question       Question `json:"question"`
	SelectedOption int      `json:"selectedOption"`
	IsCorrect      bool     `json:"isCorrect"`
	MarksObtained  int      `json:"marksObtained"`
	TotalMarks     int      `json:"totalMarks"`
}

// QuizResult is the caller's completed-attempt view.
type QuizResult struct {
	Quiz      Quiz             `json:"quiz"`
	UserScore int              `json:"userScore"`
	Responses []ResultResponse `json:"responses"`
}

type Participant struct {
	ID             primitive.ObjectID `json:"id"`
	UserID         primitive.ObjectID `json:"userId"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	Score          int                `json:"score"`
	Status         string             `json:"status"`
	SubmitTime     *time.Time         `json:"submitTime,omitempty"`
	TotalQuestions int                `json:"totalQuestions"`
}

// QuizSummary is the list-view projection of a quiz.
type QuizSummary struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Duration   int                `json:"duration"`
	TotalScore int                `json:"totalScore"`
	CreatedAt  time.Time          `json:"created_at"`
}

// MyQuiz annotates a summary with the caller's attempt state.
type MyQuiz struct {
	QuizSummary
	Status string `json:"status"`
	Score  int    `json:"score"`
}

type UserInfo struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Role     string             `json:"role"`
}

// AuthData is the payload returned by register and login.
type AuthData struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
