package scoring_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/scoring"
)

func twoQuestionQuiz() []models.Question {
	return []models.Question{
		{
			ID:            primitive.NewObjectID(),
			QuestionText:  "First",
			Options:       []string{"a", "b"},
			CorrectOption: 1,
			Marks:         5,
		},
		{
			ID:            primitive.NewObjectID(),
			QuestionText:  "Second",
			Options:       []string{"a", "b", "c"},
			CorrectOption: 0,
			Marks:         10,
		},
	}
}

func answer(id primitive.ObjectID, option int) models.ResponseInput {
	return models.ResponseInput{QuestionID: id.Hex(), SelectedOption: &option}
}

func TestScoreAllCorrect(t *testing.T) {
	questions := twoQuestionQuiz()
	graded, total, err := scoring.Score(questions, []models.ResponseInput{
		answer(questions[0].ID, 1),
		answer(questions[1].ID, 0),
	})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if total != 15 {
		t.Fatalf("expected total 15, got %d", total)
	}
	for i, response := range graded {
		if !response.IsCorrect {
			t.Fatalf("expected response %d to be correct, got %+v", i, response)
		}
	}
	if graded[0].MarksObtained != 5 || graded[1].MarksObtained != 10 {
		t.Fatalf("unexpected marks: %+v", graded)
	}
}

func TestScorePartiallyCorrect(t *testing.T) {
	questions := twoQuestionQuiz()
	graded, total, err := scoring.Score(questions, []models.ResponseInput{
		answer(questions[0].ID, 0), // wrong
		answer(questions[1].ID, 0), // right
	})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
	if graded[0].IsCorrect || graded[0].MarksObtained != 0 {
		t.Fatalf("expected first response incorrect with 0 marks, got %+v", graded[0])
	}
	if !graded[1].IsCorrect {
		t.Fatalf("expected second response correct, got %+v", graded[1])
	}
}

func TestScoreOmittedQuestionsCarryNoPenalty(t *testing.T) {
	questions := twoQuestionQuiz()
	graded, total, err := scoring.Score(questions, []models.ResponseInput{
		answer(questions[1].ID, 0),
	})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
	if len(graded) != 1 {
		t.Fatalf("expected 1 graded response, got %d", len(graded))
	}
}

func TestScoreUnknownQuestion(t *testing.T) {
	questions := twoQuestionQuiz()
	_, _, err := scoring.Score(questions, []models.ResponseInput{
		answer(primitive.NewObjectID(), 0),
	})
	var verr *scoring.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestScoreMissingSelection(t *testing.T) {
	questions := twoQuestionQuiz()
	_, _, err := scoring.Score(questions, []models.ResponseInput{
		{QuestionID: questions[0].ID.Hex(), SelectedOption: nil},
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestScoreMalformedQuestionID(t *testing.T) {
	questions := twoQuestionQuiz()
	option := 0
	_, _, err := scoring.Score(questions, []models.ResponseInput{
		{QuestionID: "not-an-object-id", SelectedOption: &option},
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
}
