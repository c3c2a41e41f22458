package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prize-portal-service/internal/metrics"
)

// RouterConfig wires the router.
type RouterConfig struct {
	Handler  *Handler
	Logger   *zap.Logger
	Recorder *metrics.Recorder

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
}

// NewRouter registers all routes behind the logging middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handler

	r := chi.NewRouter()
	r.Use(requestLogging(cfg.Logger, cfg.Recorder))

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.ListCompetitions)
			r.Get("/featured", h.FeaturedCompetitions)
			r.Get("/{id}", h.GetCompetition)
		})

		r.Route("/draws", func(r chi.Router) {
			r.Get("/", h.ListDraws)
			r.Get("/{id}", h.GetDraw)
		})

		r.Get("/champions", h.ListChampions)
		r.Get("/champions/{id}", h.GetChampion)
		r.Get("/content/{slug}", h.GetContentPage)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{itemID}", h.UpdateCartItem)
			r.Delete("/items/{itemID}", h.RemoveCartItem)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateMe)
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Get("/", h.AdminListUsers)
			r.Patch("/{id}/active", h.AdminSetUserActive)
		})

		r.Route("/browse", func(r chi.Router) {
			r.Get("/", h.BrowseState)
			r.Put("/filters", h.SetBrowseFilters)
			r.Delete("/filters", h.ClearBrowseFilters)
			r.Put("/search", h.SetBrowseSearch)
			r.Put("/selection/{id}", h.SelectCompetition)
			r.Delete("/selection", h.ClearSelection)
		})

		r.Route("/ui", func(r chi.Router) {
			r.Get("/", h.UIState)
			r.Put("/preferences", h.UpdatePreferences)
			r.Put("/notifications", h.UpdateNotifications)
			r.Post("/toasts", h.AddToast)
			r.Delete("/toasts/{id}", h.RemoveToast)
			r.Delete("/toasts", h.ClearToasts)
		})
	})

	return r
}
