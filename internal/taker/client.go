// Package taker drives a quiz attempt end to end against the HTTP API: it
// starts the attempt, holds in-memory answers behind a bounded question
// cursor, counts down the quiz duration and submits exactly once.
package taker

import (
	"fmt"

	"quizdeck/internal/models"
	httputil "quizdeck/internal/utility/http"
)

// Client is a typed wrapper over the JSON HTTP client for the quiz API.
type Client struct {
	http    *httputil.Client
	baseURL string
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http:    httputil.NewHttpClient(),
		baseURL: baseURL,
	}
}

func (c *Client) url(path string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(path, args...)
}

func (c *Client) auth() httputil.RequestOption {
	return httputil.WithHeader("Authorization", "Bearer "+c.token)
}

// Register creates an account and captures its token for later calls.
func (c *Client) Register(username, email, password string) (models.AuthData, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var data models.AuthData
	if err := c.http.PostJSON(c.url("/auth/register"), body, &data); err != nil {
		return models.AuthData{}, err
	}
	c.token = data.Token
	return data, nil
}

// Login authenticates and captures the token for later calls.
func (c *Client) Login(email, password string) (models.AuthData, error) {
	body := map[string]string{"email": email, "password": password}
	var data models.AuthData
	if err := c.http.PostJSON(c.url("/auth/login"), body, &data); err != nil {
		return models.AuthData{}, err
	}
	c.token = data.Token
	return data, nil
}

func (c *Client) ListQuizzes() ([]models.QuizSummary, error) {
	var quizzes []models.QuizSummary
	err := c.http.GetJSON(c.url("/quiz"), &quizzes, c.auth())
	return quizzes, err
}

func (c *Client) MyQuizzes() ([]models.MyQuiz, error) {
	var quizzes []models.MyQuiz
	err := c.http.GetJSON(c.url("/quiz/my-quizzes"), &quizzes, c.auth())
	return quizzes, err
}

func (c *Client) StartQuiz(quizID string) (models.StartQuizData, error) {
	var data models.StartQuizData
	err := c.http.PostJSON(c.url("/quiz/%s/start", quizID), nil, &data, c.auth())
	return data, err
}

func (c *Client) SubmitQuiz(quizID string, responses []models.ResponseInput) (models.SubmitResult, error) {
	var result models.SubmitResult
	err := c.http.PostJSON(c.url("/quiz/%s/submit", quizID), models.SubmitQuizRequest{Responses: responses}, &result, c.auth())
	return result, err
}

func (c *Client) GetResult(quizID string) (models.QuizResult, error) {
	var result models.QuizResult
	err := c.http.GetJSON(c.url("/quiz/%s/response", quizID), &result, c.auth())
	return result, err
}

// TakeQuiz starts the quiz and returns a session ready to answer.
func (c *Client) TakeQuiz(quizID string) (*Session, error) {
	data, err := c.StartQuiz(quizID)
	if err != nil {
		return nil, err
	}
	return NewSession(c, data), nil
}
