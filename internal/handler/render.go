package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"weather-dashboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "register", "weather", "favorites", "error"}

// formValues echoes what the user typed back into the page.
type formValues struct {
	Username string
	Email    string
	City     string
	Country  string
}

type pageData struct {
	Username  string
	Error     string
	Form      formValues
	Weather   *model.CuratedWeather
	Favorites []model.FavoriteLocation
}

type pages map[string]*template.Template

func parsePages() (pages, error) {
	out := make(pages, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}

func (p pages) render(w http.ResponseWriter, status int, name string, data pageData) {
	tmpl, ok := p[name]
	if !ok {
		slog.Error("unknown page template", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("render page failed", "page", name, "error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
