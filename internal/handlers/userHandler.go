package handlers

import (
	"encoding/json"
	"net/http"

	"quizdeck/internal/models"
	httputil "quizdeck/internal/utility/http"
)

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Validation Error")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}
