package util

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	OK      bool        `json:"ok"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func RespondOK(w http.ResponseWriter, data interface{}) {
	respond(w, http.StatusOK, APIResponse{OK: true, Data: data})
}

func RespondMessage(w http.ResponseWriter, message string) {
	respond(w, http.StatusOK, APIResponse{OK: true, Message: message})
}

func RespondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, APIResponse{OK: false, Message: message})
}

func respond(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
