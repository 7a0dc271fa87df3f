package middleware

import (
	"encoding/json"
	"net/http"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

// writeErrorEnvelope renders the same failure envelope the handlers use.
// Middleware cannot import the handler package, so it keeps its own writer.
func writeErrorEnvelope(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}

func writeInternalError(w http.ResponseWriter) {
	writeErrorEnvelope(w, http.StatusInternalServerError, apierror.CodeInternal, "Unexpected server error")
}
