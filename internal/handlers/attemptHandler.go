package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/store"
	httputil "quizdeck/internal/utility/http"
)

func (h *Handlers) StartQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	quizID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	data, err := h.tracker.Start(r.Context(), user.ID, quizID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, data)
}

func (h *Handlers) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	quizID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid response format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid response format")
		return
	}

	result, err := h.tracker.Submit(r.Context(), user.ID, quizID, req.Responses)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetQuizResponse(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	quizID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	result, err := h.tracker.Result(r.Context(), user.ID, quizID)
	if err != nil {
		if errors.Is(err, store.ErrAttemptNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "No completed attempt found")
			return
		}
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetParticipants(w http.ResponseWriter, r *http.Request) {
	quizID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	participants, err := h.tracker.Participants(r.Context(), quizID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, participants)
}

func (h *Handlers) GetParticipantResponse(w http.ResponseWriter, r *http.Request) {
	quizID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Attempt not found")
		return
	}

	attempt, err := h.tracker.ParticipantResult(r.Context(), quizID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, attempt)
}
