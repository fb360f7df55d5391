package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizdeck/internal/models"
	"quizdeck/internal/utility"
	httputil "quizdeck/internal/utility/http"
)

// Authentication verifies the bearer token and loads the user document onto
// the request context. A token for a deleted user is rejected.
func (h *Handlers) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			httputil.RespondError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := h.tokens.ValidateToken(tokenString)
		if err != nil {
			if err == utility.ErrExpiredToken {
				httputil.RespondError(w, http.StatusUnauthorized, "Token expired")
				return
			}
			httputil.RespondError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Uid)
		if err != nil {
			httputil.RespondError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		user, err := h.users.FindByID(r.Context(), userID)
		if err != nil {
			httputil.RespondError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), models.ContextUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly must run after Authentication.
func (h *Handlers) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(models.ContextUser).(models.User)
		if !ok || user.Role != models.RoleAdmin {
			httputil.RespondError(w, http.StatusForbidden, "You do not have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}
