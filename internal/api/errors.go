package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/scandine/ordering-service/internal/models"
)

// Envelope is the uniform response body for every endpoint
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSON writes a success envelope
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Success: true, Data: data}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Error writes a failure envelope with a status derived from the error kind.
// Internal details never reach the client; the caller sees one message.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case models.KindValidation, models.KindInvariant:
			status = http.StatusBadRequest
			message = appErr.Message
		case models.KindNotFound:
			status = http.StatusNotFound
			message = appErr.Message
		case models.KindConflict:
			status = http.StatusConflict
			message = appErr.Message
		case models.KindUnauthorized:
			status = http.StatusUnauthorized
			message = appErr.Message
		case models.KindForbidden:
			status = http.StatusForbidden
			message = appErr.Message
		case models.KindGateway:
			status = http.StatusBadGateway
			message = appErr.Message
		}
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(Envelope{Success: false, Message: message}); encErr != nil {
		log.Printf("Error encoding error response: %v", encErr)
	}
}
