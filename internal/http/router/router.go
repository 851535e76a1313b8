// Package router conecta los controllers a las rutas de la API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	httpx "github.com/leozex777/syncschwab/internal/http"
	"github.com/leozex777/syncschwab/internal/http/controllers"
)

// Deps son todas las dependencias del router.
type Deps struct {
	Clients       *controllers.ClientsController
	MainAccount   *controllers.MainAccountController
	Status        *controllers.StatusController
	Notifications *controllers.NotificationsController
	UIState       *controllers.UIStateController
	Settings      *controllers.SettingsController
	Health        *controllers.HealthController

	MetricsHandler http.Handler
}

// New arma el router completo.
func New(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(httpx.MetricsMiddleware)
	r.Use(httpx.AccessLog)

	// Health + métricas
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", deps.Clients.List)
			r.Post("/", deps.Clients.Add)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.Clients.Get)
				r.Patch("/", deps.Clients.Update)
				r.Delete("/", deps.Clients.Delete)
				r.Post("/toggle", deps.Clients.Toggle)
			})
		})

		r.Route("/main-account", func(r chi.Router) {
			r.Get("/", deps.MainAccount.Get)
			r.Put("/", deps.MainAccount.Put)
		})

		r.Route("/status/tokens", func(r chi.Router) {
			r.Get("/", deps.Status.All)
			r.Get("/main", deps.Status.Main)
			r.Get("/{id}", deps.Status.Client)
		})

		r.Get("/notifications", deps.Notifications.Poll)

		r.Route("/ui-state", func(r chi.Router) {
			r.Get("/", deps.UIState.Get)
			r.Put("/", deps.UIState.Put)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", deps.Settings.Get)
			r.Put("/", deps.Settings.Put)
		})

		r.Get("/worker", deps.Health.Worker)
	})

	return r
}
