package resp

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/quickbite/oms/pkg/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Error maps a tagged service error to its HTTP status and writes it.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidState:
		status = http.StatusBadRequest
	case apperr.KindValidation:
		status = http.StatusUnprocessableEntity
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		JSON(w, status, errorResponse{Error: "internal server error"})

		return
	}

	JSON(w, status, errorResponse{Error: err.Error()})
}
