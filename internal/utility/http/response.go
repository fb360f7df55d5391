package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes payload as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// RespondError writes the uniform {"message": ...} error body.
func RespondError(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, errorResponse{Message: message})
}
