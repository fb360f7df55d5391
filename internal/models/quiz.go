package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QuizDraft     = "draft"
	QuizPublished = "published"
)

type Question struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	QuestionText  string             `bson:"question_text" json:"questionText"`
	Options       []string           `bson:"options" json:"options"`
	CorrectOption int                `bson:"correct_option" json:"correctOption"`
	Marks         int                `bson:"marks" json:"marks"`
}

type Quiz struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	// Duration is in minutes.
	Duration   int                `bson:"duration" json:"duration"`
	TotalScore int                `bson:"total_score" json:"totalScore"`
	Questions  []Question         `bson:"questions" json:"questions"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// RecomputeTotalScore overwrites TotalScore with the sum of question marks.
// Called on every write so the stored value can never drift.
func (q *Quiz) RecomputeTotalScore() {
	total := 0
	for _, question := range q.Questions {
		total += question.Marks
	}
	q.TotalScore = total
}
