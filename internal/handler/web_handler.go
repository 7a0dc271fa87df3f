package handler

import (
	"errors"
	"net/http"
	"strings"

	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/model"
	"weather-dashboard/internal/service"
	"weather-dashboard/pkg/apierror"
)

// WebHandler serves the server-rendered pages. Failures re-render the page
// the user came from with an inline message and the mapped status.
type WebHandler struct {
	auth      *service.AuthService
	favorites *service.FavoriteService
	weather   weatherFetcher
	cookies   *CookieHelper
	pages     pages
}

func NewWebHandler(auth *service.AuthService, favorites *service.FavoriteService, weather weatherFetcher, cookies *CookieHelper) (*WebHandler, error) {
	parsed, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		auth:      auth,
		favorites: favorites,
		weather:   weather,
		cookies:   cookies,
		pages:     parsed,
	}, nil
}

func (h *WebHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "login", pageData{})
}

func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.render(w, http.StatusBadRequest, "login", pageData{Error: "Invalid form submission"})
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))

	token, err := h.auth.Login(r.Context(), username, r.PostForm.Get("password"))
	if err != nil {
		status, message := pageError(err)
		if status == http.StatusUnauthorized {
			message = "Invalid username or password"
		}
		h.pages.render(w, status, "login", pageData{Error: message, Form: formValues{Username: username}})
		return
	}

	h.cookies.SetSession(w, token.AccessToken, h.auth.AccessTTL())
	http.Redirect(w, r, "/weather", http.StatusSeeOther)
}

func (h *WebHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "register", pageData{})
}

func (h *WebHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.render(w, http.StatusBadRequest, "register", pageData{Error: "Invalid form submission"})
		return
	}

	req := model.RegisterRequest{
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}

	if _, err := h.auth.Register(r.Context(), req); err != nil {
		status, message := pageError(err)
		h.pages.render(w, status, "register", pageData{
			Error: message,
			Form:  formValues{Username: req.Username, Email: req.Email},
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// WeatherPage renders the search form, and the result when a city is given
// in the query string or the posted form.
func (h *WebHandler) WeatherPage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	data := pageData{Username: user.Username}

	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form submission"
		h.pages.render(w, http.StatusBadRequest, "weather", data)
		return
	}

	data.Form = formValues{
		City:    strings.TrimSpace(r.Form.Get("city")),
		Country: strings.ToUpper(strings.TrimSpace(r.Form.Get("country"))),
	}
	if data.Form.City == "" {
		if r.Method == http.MethodPost {
			data.Error = "City is required"
			h.pages.render(w, http.StatusUnprocessableEntity, "weather", data)
			return
		}
		h.pages.render(w, http.StatusOK, "weather", data)
		return
	}
	if data.Form.Country == "" {
		data.Form.Country = model.DefaultCountry
	}

	curated, err := h.weather.Fetch(r.Context(), data.Form.City, data.Form.Country)
	if err != nil {
		var status int
		status, data.Error = pageError(err)
		h.pages.render(w, status, "weather", data)
		return
	}

	data.Weather = &curated
	h.pages.render(w, http.StatusOK, "weather", data)
}

func (h *WebHandler) FavoritesPage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	h.renderFavorites(w, r, user, http.StatusOK, pageData{})
}

func (h *WebHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderFavorites(w, r, user, http.StatusBadRequest, pageData{Error: "Invalid form submission"})
		return
	}

	req := model.FavoriteRequest{City: r.PostForm.Get("city"), Country: r.PostForm.Get("country")}
	if _, err := h.favorites.Add(r.Context(), user, req); err != nil {
		status, message := pageError(err)
		h.renderFavorites(w, r, user, status, pageData{
			Error: message,
			Form:  formValues{City: req.City, Country: req.Country},
		})
		return
	}

	http.Redirect(w, r, "/favorites", http.StatusSeeOther)
}

func (h *WebHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := favoriteIDParam(r)
	if err == nil {
		err = h.favorites.Delete(r.Context(), user, id)
	}
	if err != nil {
		status, message := pageError(err)
		if errors.Is(err, model.ErrInvalidInput) {
			status, message = http.StatusNotFound, "Favorite not found"
		}
		h.pages.render(w, status, "error", pageData{Username: user.Username, Error: message})
		return
	}

	http.Redirect(w, r, "/favorites", http.StatusSeeOther)
}

func (h *WebHandler) renderFavorites(w http.ResponseWriter, r *http.Request, user model.User, status int, data pageData) {
	data.Username = user.Username

	favs, err := h.favorites.List(r.Context(), user)
	if err != nil {
		status, data.Error = pageError(err)
	}
	data.Favorites = favs

	h.pages.render(w, status, "favorites", data)
}

// pageError turns err into the status and one-line message a page shows.
func pageError(err error) (int, string) {
	status, body := classify(err)
	if body.Details != "" && body.Code == apierror.CodeValidation {
		return status, body.Message + ": " + body.Details
	}
	return status, body.Message
}
