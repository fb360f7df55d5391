package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Response struct {
	QuestionID     primitive.ObjectID `bson:"question_id" json:"questionId"`
	SelectedOption int                `bson:"selected_option" json:"selectedOption"`
	IsCorrect      bool               `bson:"is_correct" json:"isCorrect"`
	MarksObtained  int                `bson:"marks_obtained" json:"marksObtained"`
}

type Attempt struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Quiz       primitive.ObjectID `bson:"quiz" json:"quiz"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Status     string             `bson:"status" json:"status"`
	Responses  []Response         `bson:"responses" json:"responses"`
	Score      int                `bson:"score" json:"score"`
	StartTime  time.Time          `bson:"start_time" json:"startTime"`
	SubmitTime *time.Time         `bson:"submit_time,omitempty" json:"submitTime,omitempty"`
}
