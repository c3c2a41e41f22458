package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/logging"
)

// response is the envelope every endpoint emits, mirroring the upstream
// API's shape so clients only deal with one convention.
type response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, response{Success: true, Data: data})
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

func respondFieldErrors(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, response{Success: false, Message: message, Errors: fields})
}

// respondUpstream maps a failed upstream call onto our own status line.
// Structured upstream errors keep their status and field detail; anything
// else reads as a bad gateway.
func respondUpstream(w http.ResponseWriter, r *http.Request, err error, notFound error) {
	if notFound != nil && errors.Is(err, notFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	if apiErr, ok := api.AsError(err); ok {
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(apiErr.Status)
		}
		respondFieldErrors(w, apiErr.Status, message, apiErr.Fields)
		return
	}

	logger := logging.FromContext(r.Context(), nil)
	if logger != nil {
		logger.Error("upstream request failed", zap.Error(err))
	}
	respondError(w, http.StatusBadGateway, "upstream request failed")
}
