package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/handler"
	"weather-dashboard/internal/metrics"
	"weather-dashboard/internal/middleware"
)

type Handlers struct {
	User     *handler.UserHandler
	Favorite *handler.FavoriteHandler
	Weather  *handler.WeatherHandler
	Web      *handler.WebHandler
	Health   *handler.HealthHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.ClientIP(cfg.TrustedProxies))
	r.Use(middleware.Logging)
	r.Use(m.Middleware)
	r.Use(middleware.SecurityHeaders)
	// CORS sits on the root router so preflight requests are answered
	// before chi rejects the OPTIONS method.
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", h.Health.Check)
	r.Handle("/metrics", m.Handler())

	// JSON API
	r.Post("/users/register", h.User.Register)
	r.Post("/users/token", h.User.Token)
	r.Group(func(api chi.Router) {
		api.Use(authMiddleware.RequireAPIUser)

		api.Post("/users/favorites", h.Favorite.Add)
		api.Get("/users/favorites", h.Favorite.List)
		api.Delete("/users/favorites/{id}", h.Favorite.Delete)
		api.Get("/weather/{city}", h.Weather.Get)
	})

	// Browser pages
	r.Group(func(web chi.Router) {
		web.Use(middleware.CSRF(cfg.CSRFTrustedOrigins))

		web.Get("/login", h.Web.LoginPage)
		web.Post("/login", h.Web.Login)
		web.Get("/register", h.Web.RegisterPage)
		web.Post("/register", h.Web.Register)
		web.Get("/logout", h.Web.Logout)

		web.Group(func(session chi.Router) {
			session.Use(authMiddleware.RequireWebUser)

			session.Get("/", h.Web.WeatherPage)
			session.Get("/weather", h.Web.WeatherPage)
			session.Post("/weather", h.Web.WeatherPage)
			session.Get("/favorites", h.Web.FavoritesPage)
			session.Post("/favorites", h.Web.AddFavorite)
			session.Post("/favorites/{id}/delete", h.Web.DeleteFavorite)
		})
	})

	return r
}
