package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := classify(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

// classify maps an error to its HTTP status and client-facing body.
// Explicit APIErrors win; bare sentinels fall back to a fixed mapping.
func classify(err error) (int, *model.APIError) {
	if apiErr, ok := apierror.As(err); ok {
		return apiErr.HTTPStatus, &model.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}
	}

	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, &model.APIError{Code: apierror.CodeUnauthorized, Message: "Could not validate credentials"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, &model.APIError{Code: apierror.CodeUnauthorized, Message: "Incorrect username or password"}
	case errors.Is(err, model.ErrUserAlreadyExists):
		return http.StatusConflict, &model.APIError{Code: apierror.CodeConflict, Message: "Username already registered"}
	case errors.Is(err, model.ErrEmailAlreadyExists):
		return http.StatusConflict, &model.APIError{Code: apierror.CodeConflict, Message: "Email already registered"}
	case errors.Is(err, model.ErrFavoriteNotFound):
		return http.StatusNotFound, &model.APIError{Code: apierror.CodeNotFound, Message: "Favorite not found"}
	case errors.Is(err, model.ErrCityNotFound):
		return http.StatusNotFound, &model.APIError{Code: apierror.CodeNotFound, Message: "City not found"}
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusUnprocessableEntity, &model.APIError{Code: apierror.CodeValidation, Message: "Invalid input"}
	}

	slog.Error("unhandled error in writeError", "error", err.Error())
	return http.StatusInternalServerError, &model.APIError{Code: apierror.CodeInternal, Message: "Unexpected server error"}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierror.BadRequest("request body is empty", "")
		}
		return apierror.BadRequest("invalid JSON body", err.Error())
	}
	return nil
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.EqualFold(mediaType, "application/json")
}

func favoriteIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.Validation(model.ErrInvalidInput, fmt.Sprintf("id must be a positive integer, got %q", raw))
	}
	return id, nil
}
