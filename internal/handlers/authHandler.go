package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"quizdeck/internal/models"
	httputil "quizdeck/internal/utility/http"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// HashPassword is used to encrypt the password before it is stored in the DB.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks the input password against the hash in the DB.
func VerifyPassword(hashedPassword, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Please provide username, email and password")
		return
	}

	password, err := HashPassword(req.Password)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  password,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := h.users.Insert(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}

	token, err := h.tokens.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, models.AuthData{
		Token: token,
		User: models.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !VerifyPassword(user.Password, req.Password) {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// An optional role in the body gates role-specific login screens.
	if req.Role != "" && user.Role != strings.ToLower(req.Role) {
		httputil.RespondError(w, http.StatusUnauthorized, fmt.Sprintf("Invalid credentials for %s login", req.Role))
		return
	}

	token, err := h.tokens.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.AuthData{
		Token: token,
		User: models.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}
