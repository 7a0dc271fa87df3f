package handler

import (
	"net/http"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/service"
	"weather-dashboard/pkg/apierror"
)

type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Public())
}

// Token is the OAuth2 password grant endpoint. It takes a form body like
// standard clients send, and JSON for convenience.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	var payload model.TokenRequest
	if isJSONRequest(r) {
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, err)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			writeError(w, apierror.BadRequest("invalid form body", err.Error()))
			return
		}
		payload.Username = r.PostForm.Get("username")
		payload.Password = r.PostForm.Get("password")
	}

	token, err := h.auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, token)
}
