package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"weather-dashboard/internal/model"
)

type weatherFetcher interface {
	Fetch(ctx context.Context, city string, country string) (model.CuratedWeather, error)
}

type WeatherHandler struct {
	weather weatherFetcher
}

func NewWeatherHandler(weather weatherFetcher) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	country := r.URL.Query().Get("country")

	curated, err := h.weather.Fetch(r.Context(), city, country)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, curated)
}
