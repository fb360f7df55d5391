package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	httputil "quizdeck/internal/utility/http"
)

type QuestionInput struct {
	QuestionText  string   `json:"questionText" validate:"required"`
	Options       []string `json:"options" validate:"required,min=1,dive,required"`
	CorrectOption *int     `json:"correctOption" validate:"required,gte=0"`
	Marks         *int     `json:"marks" validate:"required,gte=0"`
}

type CreateQuizRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Duration    int             `json:"duration" validate:"required,min=1,max=180"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft published"`
}

func (h *Handlers) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Validation Error")
		return
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for _, input := range req.Questions {
		// The tag language cannot relate two fields, so the bound check on
		// the correct option lives here.
		if *input.CorrectOption >= len(input.Options) {
			httputil.RespondError(w, http.StatusBadRequest, "Correct option index must be less than the number of options")
			return
		}
		questions = append(questions, models.Question{
			ID:            primitive.NewObjectID(),
			QuestionText:  input.QuestionText,
			Options:       input.Options,
			CorrectOption: *input.CorrectOption,
			Marks:         *input.Marks,
		})
	}

	status := req.Status
	if status == "" {
		status = models.QuizPublished
	}

	quiz := models.Quiz{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Questions:   questions,
		CreatedBy:   user.ID,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	quiz.RecomputeTotalScore()

	if err := h.quizzes.Insert(r.Context(), quiz); err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, quiz)
}

func (h *Handlers) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.FindAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	summaries := make([]models.QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, models.QuizSummary{
			ID:         quiz.ID,
			Title:      quiz.Title,
			Duration:   quiz.Duration,
			TotalScore: quiz.TotalScore,
			CreatedAt:  quiz.CreatedAt,
		})
	}
	httputil.RespondJSON(w, http.StatusOK, summaries)
}

func (h *Handlers) GetMyQuizzes(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	quizzes, err := h.quizzes.FindAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	userAttempts, err := h.attempts.FindByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	byQuiz := make(map[primitive.ObjectID]models.Attempt, len(userAttempts))
	for _, attempt := range userAttempts {
		byQuiz[attempt.Quiz] = attempt
	}

	annotated := make([]models.MyQuiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		entry := models.MyQuiz{
			QuizSummary: models.QuizSummary{
				ID:         quiz.ID,
				Title:      quiz.Title,
				Duration:   quiz.Duration,
				TotalScore: quiz.TotalScore,
				CreatedAt:  quiz.CreatedAt,
			},
			Status: models.StatusNotStarted,
		}
		if attempt, ok := byQuiz[quiz.ID]; ok {
			entry.Status = attempt.Status
			entry.Score = attempt.Score
		}
		annotated = append(annotated, entry)
	}
	httputil.RespondJSON(w, http.StatusOK, annotated)
}

// GetQuizByID returns the full quiz document, correct options included. The
// client must not surface them before submission.
func (h *Handlers) GetQuizByID(w http.ResponseWriter, r *http.Request) {
	quizID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	quiz, err := h.quizzes.FindByID(r.Context(), quizID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, quiz)
}
