// Package scoring grades a set of submitted responses against a quiz's
// questions. It is pure: no store access, no clock.
package scoring

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
)

// ValidationError marks a submission the server should reject as malformed
// rather than score.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Score grades each response and returns the graded responses plus the
// aggregate score. Questions left unanswered simply carry no response; they
// neither score nor penalize. An unknown question id fails the whole
// submission.
func Score(questions []models.Question, responses []models.ResponseInput) ([]models.Response, int, error) {
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	graded := make([]models.Response, 0, len(responses))
	total := 0
	for _, response := range responses {
		if response.SelectedOption == nil {
			return nil, 0, &ValidationError{Reason: "Invalid response format"}
		}
		questionID, err := primitive.ObjectIDFromHex(response.QuestionID)
		if err != nil {
			return nil, 0, &ValidationError{Reason: "Invalid response format"}
		}
		question, ok := byID[questionID]
		if !ok {
			return nil, 0, &ValidationError{Reason: fmt.Sprintf("Question not found: %s", response.QuestionID)}
		}

		selected := *response.SelectedOption
		isCorrect := selected == question.CorrectOption
		marksObtained := 0
		if isCorrect {
			marksObtained = question.Marks
			total += marksObtained
		}

		graded = append(graded, models.Response{
			QuestionID:     questionID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
			MarksObtained:  marksObtained,
		})
	}
	return graded, total, nil
}
