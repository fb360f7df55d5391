package taker

import (
	"context"
	"errors"
	"sync"
	"time"

	"quizdeck/internal/models"
)

var (
	// ErrNoSelection gates Next: the current question must be answered first.
	ErrNoSelection = errors.New("current question has no recorded selection")
	// ErrAlreadySubmitted guards the one-way submit.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	// ErrInvalidOption is returned for a selection outside the option range.
	ErrInvalidOption = errors.New("selected option out of range")
)

const unanswered = -1

// QuizAPI is the slice of the client a session needs.
type QuizAPI interface {
	SubmitQuiz(quizID string, responses []models.ResponseInput) (models.SubmitResult, error)
}

// Session holds one attempt's in-memory state: the countdown, the question
// cursor and the selections. Answers live only here until submit; the
// server never sees partial progress.
type Session struct {
	api    QuizAPI
	quizID string

	mu        sync.Mutex
	questions []models.TakeQuestion
	answers   []int
	cursor    int
	remaining int
	submitted bool
	result    models.SubmitResult
}

func NewSession(api QuizAPI, data models.StartQuizData) *Session {
	answers := make([]int, len(data.Quiz.Questions))
	for i := range answers {
		answers[i] = unanswered
	}
	return &Session{
		api:       api,
		quizID:    data.Quiz.ID.Hex(),
		questions: data.Quiz.Questions,
		answers:   answers,
		remaining: data.Quiz.Duration * 60,
	}
}

// Current returns the cursor position and the question under it.
func (s *Session) Current() (int, models.TakeQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, s.questions[s.cursor]
}

// Select records an answer for the current question, in memory only.
func (s *Session) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if option < 0 || option >= len(s.questions[s.cursor].Options) {
		return ErrInvalidOption
	}
	s.answers[s.cursor] = option
	return nil
}

// Next advances the cursor. It refuses to move past an unanswered question
// and stops at the last one.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answers[s.cursor] == unanswered {
		return ErrNoSelection
	}
	if s.cursor < len(s.questions)-1 {
		s.cursor++
	}
	return nil
}

// Previous moves the cursor back, stopping at the first question.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor > 0 {
		s.cursor--
	}
}

// Remaining reports the seconds left on the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Answered reports how many questions have a recorded selection.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, answer := range s.answers {
		if answer != unanswered {
			count++
		}
	}
	return count
}

// Submitted reports whether a submit has succeeded.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Result returns the submit outcome once Submitted reports true.
func (s *Session) Result() models.SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Tick decrements the countdown by one second and returns what is left.
func (s *Session) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remaining > 0 {
		s.remaining--
	}
	return s.remaining
}

// Submit gathers the recorded answers, converts them to the wire format and
// submits. A failure leaves every answer and the cursor untouched so the
// caller can retry; a success makes the session terminal.
func (s *Session) Submit() (models.SubmitResult, error) {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return s.result, ErrAlreadySubmitted
	}
	responses := make([]models.ResponseInput, 0, len(s.answers))
	for i, answer := range s.answers {
		if answer == unanswered {
			continue
		}
		option := answer
		responses = append(responses, models.ResponseInput{
			QuestionID:     s.questions[i].ID.Hex(),
			SelectedOption: &option,
		})
	}
	s.mu.Unlock()

	result, err := s.api.SubmitQuiz(s.quizID, responses)
	if err != nil {
		return models.SubmitResult{}, err
	}

	s.mu.Lock()
	s.submitted = true
	s.result = result
	s.mu.Unlock()
	return result, nil
}

// RunTimer drives the one-second tick until the countdown reaches zero, then
// auto-submits exactly once. It exits early if a manual Submit already
// completed the attempt.
func (s *Session) RunTimer(ctx context.Context) (models.SubmitResult, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return models.SubmitResult{}, ctx.Err()
		case <-ticker.C:
			if s.Submitted() {
				return s.Result(), nil
			}
			if s.Tick() == 0 {
				return s.Submit()
			}
		}
	}
}
